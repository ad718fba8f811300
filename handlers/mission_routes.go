// handlers/mission_routes.go
package handlers

import (
	"errors"
	"path/filepath"
	"strconv"
	"time"

	"pet-community-system/middleware"
	"pet-community-system/services"
	"pet-community-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// actorFromCtx builds the capability object mutating catalog calls require
// from the gateway-supplied user context.
func actorFromCtx(c *fiber.Ctx) services.Actor {
	userID, _ := c.Locals("user_id").(string)
	roles, _ := c.Locals("user_roles").([]string)
	return services.Actor{UserID: userID, Roles: roles}
}

func errStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrForbidden):
		return fiber.StatusForbidden
	case services.IsValidation(err):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func SetupMissionRoutes(app *fiber.App, catalog *services.MissionCatalogService, ledger *services.CompletionLedgerService) {
	// 🔓 Public routes — *no user context*, but **still require Gateway auth**
	app.Get("/missions", func(c *fiber.Ctx) error {
		missions, err := catalog.ListPublished()
		if err != nil {
			return c.Status(errStatus(err)).JSON(fiber.Map{
				"error": "failed to list missions",
				"cause": err.Error(),
			})
		}
		return c.JSON(missions)
	})

	// With-status view also serves anonymous visitors: without a user context
	// every mission comes back uncompleted and the ledger is never read.
	app.Get("/missions/with-status", middleware.UserContextMiddleware(false), func(c *fiber.Ctx) error {
		userID, _ := c.Locals("user_id").(string)
		missions, err := catalog.MissionsWithStatus(userID)
		if err != nil {
			return c.Status(errStatus(err)).JSON(fiber.Map{
				"error": "failed to build mission status view",
				"cause": err.Error(),
			})
		}
		return c.JSON(missions)
	})

	// 🔐 Secured routes — require user context from the Gateway
	app.Post("/missions/:id/complete", middleware.UserContextMiddleware(true), func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		missionID := c.Params("id")

		if err := ledger.RecordCompletion(userID, missionID); err != nil {
			return c.Status(errStatus(err)).JSON(fiber.Map{
				"error": "failed to record completion",
				"cause": err.Error(),
			})
		}
		// A repeat completion answers exactly like the first one.
		return c.JSON(fiber.Map{
			"message":    "mission completed",
			"mission_id": missionID,
		})
	})

	userGroup := app.Group("/user", middleware.UserContextMiddleware(true))

	userGroup.Get("/missions", func(c *fiber.Ctx) error {
		userID := c.Locals("user_id").(string)
		rows, err := ledger.ListForUser(userID)
		if err != nil {
			return c.Status(errStatus(err)).JSON(fiber.Map{
				"error": "failed to list completions",
				"cause": err.Error(),
			})
		}
		return c.JSON(rows)
	})

	// Admin endpoints — role check happens in the service via the Actor
	adminGroup := app.Group("/admin", middleware.UserContextMiddleware(true))

	adminGroup.Get("/missions", func(c *fiber.Ctx) error {
		missions, err := catalog.List()
		if err != nil {
			return c.Status(errStatus(err)).JSON(fiber.Map{
				"error": "failed to list missions",
				"cause": err.Error(),
			})
		}
		return c.JSON(missions)
	})

	adminGroup.Post("/missions", func(c *fiber.Ctx) error {
		in, err := missionInputFromForm(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid mission fields",
				"cause": err.Error(),
			})
		}

		// Optional icon upload → R2 (small, public asset)
		if iconFile, ferr := c.FormFile("icon"); ferr == nil && iconFile.Size > 0 {
			iconExt := filepath.Ext(iconFile.Filename)
			if iconExt == "" {
				iconExt = ".png"
			}
			iconKey := "mission-icons/" + uuid.NewString() + iconExt
			iconURL, uerr := utils.UploadFileToR2(iconFile, iconKey)
			if uerr != nil {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "failed to upload mission icon",
					"cause": uerr.Error(),
				})
			}
			in.IconURL = iconURL
		}

		mission, err := catalog.Create(actorFromCtx(c), *in)
		if err != nil {
			return c.Status(errStatus(err)).JSON(fiber.Map{
				"error": "failed to create mission",
				"cause": err.Error(),
			})
		}
		return c.Status(fiber.StatusCreated).JSON(mission)
	})

	adminGroup.Put("/missions/:id", func(c *fiber.Ctx) error {
		var in services.MissionInput
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid JSON",
				"cause": err.Error(),
			})
		}

		mission, err := catalog.Update(actorFromCtx(c), c.Params("id"), in)
		if err != nil {
			return c.Status(errStatus(err)).JSON(fiber.Map{
				"error": "failed to update mission",
				"cause": err.Error(),
			})
		}
		return c.JSON(mission)
	})

	adminGroup.Delete("/missions/:id", func(c *fiber.Ctx) error {
		if err := catalog.Delete(actorFromCtx(c), c.Params("id")); err != nil {
			return c.Status(errStatus(err)).JSON(fiber.Map{
				"error": "failed to delete mission",
				"cause": err.Error(),
			})
		}
		return c.JSON(fiber.Map{"message": "mission deleted"})
	})
}

// missionInputFromForm reads mission fields from a multipart form (the admin
// console submits create as multipart so it can attach an icon).
func missionInputFromForm(c *fiber.Ctx) (*services.MissionInput, error) {
	in := &services.MissionInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Type:        c.FormValue("type"),
		ActionLink:  c.FormValue("action_link"),
		Status:      c.FormValue("status"),
	}

	if v := c.FormValue("xp_reward"); v != "" {
		xp, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, errors.New("xp_reward must be an integer")
		}
		in.XPReward = xp
	}
	if v := c.FormValue("coin_reward"); v != "" {
		coins, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, errors.New("coin_reward must be an integer")
		}
		in.CoinReward = coins
	}
	if v := c.FormValue("publish_at"); v != "" {
		publishAt, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, errors.New("publish_at must be RFC3339 (e.g., 2026-01-01T15:04:05Z)")
		}
		in.PublishAt = &publishAt
	}
	return in, nil
}
