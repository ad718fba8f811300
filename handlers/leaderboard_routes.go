// handlers/leaderboard_routes.go
package handlers

import (
	"strconv"

	"pet-community-system/middleware"
	"pet-community-system/services"

	"github.com/gofiber/fiber/v2"
)

func SetupLeaderboardRoutes(app *fiber.App, leaderboard *services.LeaderboardService) {
	// Full ranking, recomputed on every read. A failed load is a 500, never an
	// empty list — zero entries is a valid success state.
	app.Get("/leaderboard", func(c *fiber.Ctx) error {
		entries, err := leaderboard.ComputeLeaderboard()
		if err != nil {
			return c.Status(errStatus(err)).JSON(fiber.Map{
				"error": "failed to compute leaderboard",
				"cause": err.Error(),
			})
		}

		totalUsers := len(entries)

		// Truncation is a caller concern; the aggregator always ranks everyone.
		if limitStr := c.Query("limit"); limitStr != "" {
			limit, err := strconv.Atoi(limitStr)
			if err != nil || limit < 0 {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "invalid limit parameter",
				})
			}
			if limit < len(entries) {
				entries = entries[:limit]
			}
		}

		return c.JSON(fiber.Map{
			"leaderboard": entries,
			"total_users": totalUsers,
		})
	})

	app.Get("/user/progress", middleware.UserContextMiddleware(true), func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		summary, err := leaderboard.UserProgress(userID)
		if err != nil {
			return c.Status(errStatus(err)).JSON(fiber.Map{
				"error": "failed to compute progress",
				"cause": err.Error(),
			})
		}
		return c.JSON(summary)
	})
}
