package tasks

import (
	"log"
	"time"

	"calmanage/internal/models"
	"calmanage/internal/storage"

	"github.com/robfig/cron/v3"
)

// retention is how long soft-deleted rows are kept before the purge job
// removes them for good.
const retention = 30 * 24 * time.Hour

// PurgeDeletedRecords permanently removes rows that were soft-deleted longer
// than the retention period ago. Only events are ever soft-deleted; attendee
// and user rows are hard-deleted at delete time because unique indexes must
// not stay occupied by dead rows.
func PurgeDeletedRecords() {
	threshold := time.Now().Add(-retention)
	if err := storage.DB.Unscoped().
		Where("deleted_at IS NOT NULL AND deleted_at < ?", threshold).
		Delete(&models.CalendarEvent{}).Error; err != nil {
		log.Println("purge of soft-deleted events failed:", err)
		return
	}
	log.Println("soft-deleted events past retention purged")
}

// InitScheduler starts the cron scheduler with the housekeeping jobs.
func InitScheduler() *cron.Cron {
	c := cron.New(cron.WithSeconds())

	// Nightly purge at 03:00.
	if _, err := c.AddFunc("0 0 3 * * *", PurgeDeletedRecords); err != nil {
		log.Println("failed to schedule PurgeDeletedRecords:", err)
	}

	c.Start()
	log.Println("cron scheduler started")
	return c
}
