// services/scheduler.go
package services

import (
	"log"
	"time"

	"pet-community-system/models"

	"github.com/go-co-op/gocron/v2"
)

// StartPublishScheduler flips scheduled missions to published once their
// publish time has passed. Admins can stage seasonal missions ahead of time;
// users only ever see the published slice of the catalog.
func (s *MissionCatalogService) StartPublishScheduler() {
	sched, _ := gocron.NewScheduler()
	sched.Start()

	// Every minute: publish scheduled missions
	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			var missions []models.Mission
			now := time.Now()
			err := s.DB.Where("status = ? AND publish_at <= ?", models.MissionStatusScheduled, now).
				Find(&missions).Error
			if err != nil {
				log.Printf("[Scheduler] DB error: %v", err)
				return
			}

			for _, m := range missions {
				m.Status = models.MissionStatusPublished
				m.PublishAt = nil
				if err := s.DB.Save(&m).Error; err != nil {
					log.Printf("[Scheduler] Failed to publish mission %s: %v", m.ID, err)
				} else {
					log.Printf("✅ Auto-published mission: %s", m.Title)
				}
			}
		}),
	)
}
