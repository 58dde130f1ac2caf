package repository

import (
	"gorm.io/gorm"

	"github.com/openfunnel/mailtriage/interfaces"
	"github.com/openfunnel/mailtriage/internal/models"
)

type Repositories struct {
	CustomerRepository     interfaces.CustomerRepository
	LeadRepository         interfaces.LeadRepository
	TriageActionRepository interfaces.TriageActionRepository
}

func InitRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		CustomerRepository:     NewCustomerRepository(db),
		LeadRepository:         NewLeadRepository(db),
		TriageActionRepository: NewTriageActionRepository(db),
	}
}

func MigrateDB(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Customer{},
		&models.Lead{},
		&models.TriageAction{},
	)
}
