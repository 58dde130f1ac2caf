package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/openfunnel/mailtriage/internal/enum"
	"github.com/openfunnel/mailtriage/internal/utils"
)

// TriageAction is one row of the audit log: the decision taken for a single
// inbound message or follow-up reminder.
type TriageAction struct {
	ID             string              `gorm:"column:id;type:varchar(50);primaryKey"`
	MessageID      string              `gorm:"column:message_id;type:varchar(255);index"`
	Sender         string              `gorm:"column:sender;type:varchar(255);index"`
	Subject        string              `gorm:"column:subject;type:varchar(1000)"`
	Classification enum.Classification `gorm:"column:classification;type:varchar(50);index"`
	Action         enum.TriageAction   `gorm:"column:action;type:varchar(50);index;not null"`
	ReplyVariant   enum.ReplyVariant   `gorm:"column:reply_variant;type:varchar(50)"`
	MatchedWords   pq.StringArray      `gorm:"column:matched_words;type:text[]"`
	CreatedAt      time.Time           `gorm:"column:created_at;type:timestamp;default:current_timestamp"`
}

func (TriageAction) TableName() string {
	return "triage_actions"
}

func (a *TriageAction) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = utils.GenerateNanoIDWithPrefix("act", 21)
	}
	a.CreatedAt = utils.Now()
	return nil
}
