package jobs

import (
	"log"
	"time"

	"github.com/skillshare/skillshare_hub/models"
	"gorm.io/gorm"
)

// CleanupExpiredAuthSessions returns a cron task that deletes login-session
// rows whose expiry has passed.
func CleanupExpiredAuthSessions(db *gorm.DB) func() {
	return func() {
		result := db.Where("expires_at < ?", time.Now()).Delete(&models.AuthSession{})
		if result.Error != nil {
			log.Printf("🔥 Failed to clean up expired auth sessions: %v", result.Error)
			return
		}
		if result.RowsAffected > 0 {
			log.Printf("🧹 Removed %d expired auth sessions", result.RowsAffected)
		}
	}
}
