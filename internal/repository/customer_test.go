package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/openfunnel/mailtriage/interfaces"
	"github.com/openfunnel/mailtriage/internal/models"
)

type CustomerRepositoryTestSuite struct {
	suite.Suite
	db   *gorm.DB
	repo interfaces.CustomerRepository
}

func (s *CustomerRepositoryTestSuite) SetupSuite() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(s.T(), err)

	err = db.AutoMigrate(&models.Customer{})
	require.NoError(s.T(), err)

	s.db = db
	s.repo = NewCustomerRepository(db)
}

func (s *CustomerRepositoryTestSuite) TearDownSuite() {
	sqlDB, _ := s.db.DB()
	if sqlDB != nil {
		sqlDB.Close()
	}
}

func (s *CustomerRepositoryTestSuite) SetupTest() {
	s.db.Exec("DELETE FROM customers")
}

func TestCustomerRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(CustomerRepositoryTestSuite))
}

func (s *CustomerRepositoryTestSuite) TestExists_KnownCustomer() {
	require.NoError(s.T(), s.db.Create(&models.Customer{Email: "client@example.com"}).Error)

	exists, err := s.repo.Exists(context.Background(), "client@example.com")

	assert.NoError(s.T(), err)
	assert.True(s.T(), exists)
}

func (s *CustomerRepositoryTestSuite) TestExists_UnknownCustomer() {
	exists, err := s.repo.Exists(context.Background(), "stranger@example.com")

	assert.NoError(s.T(), err)
	assert.False(s.T(), exists)
}
