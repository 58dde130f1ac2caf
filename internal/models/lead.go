package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/openfunnel/mailtriage/internal/utils"
)

// Lead is a prospect tracked for periodic re-engagement. LastFollowup is a
// calendar date; a nil value means the lead has never been followed up and
// is excluded from the reminder sweep.
type Lead struct {
	ID           string     `gorm:"column:id;type:varchar(50);primaryKey"`
	Email        string     `gorm:"column:email;type:varchar(255);uniqueIndex;not null"`
	Source       string     `gorm:"column:source;type:varchar(50)"`
	LastFollowup *time.Time `gorm:"column:last_followup;type:date;index"`
	CreatedAt    time.Time  `gorm:"column:created_at;type:timestamp;default:current_timestamp"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;type:timestamp;default:current_timestamp"`
}

func (Lead) TableName() string {
	return "leads"
}

func (l *Lead) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = utils.GenerateNanoIDWithPrefix("lead", 21)
	}
	l.CreatedAt = utils.Now()
	return nil
}

// NeedsFollowup reports whether the lead's last follow-up is present and
// strictly older than the staleness threshold.
func (l *Lead) NeedsFollowup(now time.Time, staleness time.Duration) bool {
	if l.LastFollowup == nil {
		return false
	}
	return l.LastFollowup.Before(now.Add(-staleness))
}
