package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/openfunnel/mailtriage/internal/utils"
)

// Customer is an existence-only record: triage never creates or mutates
// customers, it only checks whether a sender address is present.
type Customer struct {
	ID        string    `gorm:"column:id;type:varchar(50);primaryKey"`
	Email     string    `gorm:"column:email;type:varchar(255);uniqueIndex;not null"`
	Name      string    `gorm:"column:name;type:varchar(255)"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;default:current_timestamp"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamp;default:current_timestamp"`
}

func (Customer) TableName() string {
	return "customers"
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = utils.GenerateNanoIDWithPrefix("cust", 21)
	}
	c.CreatedAt = utils.Now()
	return nil
}
