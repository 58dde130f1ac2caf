package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/openfunnel/mailtriage/interfaces"
	mtErrors "github.com/openfunnel/mailtriage/internal/errors"
	"github.com/openfunnel/mailtriage/internal/models"
)

type LeadRepositoryTestSuite struct {
	suite.Suite
	db   *gorm.DB
	repo interfaces.LeadRepository
}

func (s *LeadRepositoryTestSuite) SetupSuite() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(s.T(), err)

	err = db.AutoMigrate(&models.Lead{})
	require.NoError(s.T(), err)

	s.db = db
	s.repo = NewLeadRepository(db)
}

func (s *LeadRepositoryTestSuite) TearDownSuite() {
	sqlDB, _ := s.db.DB()
	if sqlDB != nil {
		sqlDB.Close()
	}
}

func (s *LeadRepositoryTestSuite) SetupTest() {
	s.db.Exec("DELETE FROM leads")
}

func TestLeadRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(LeadRepositoryTestSuite))
}

func (s *LeadRepositoryTestSuite) TestCreate_GeneratesPrefixedID() {
	lead := &models.Lead{Email: "prospect@example.com"}

	err := s.repo.Create(context.Background(), lead)

	assert.NoError(s.T(), err)
	assert.Contains(s.T(), lead.ID, "lead_")
}

func (s *LeadRepositoryTestSuite) TestCreate_DuplicateEmail_IsNoOp() {
	first := &models.Lead{Email: "prospect@example.com"}
	require.NoError(s.T(), s.repo.Create(context.Background(), first))

	second := &models.Lead{Email: "prospect@example.com"}
	err := s.repo.Create(context.Background(), second)

	assert.NoError(s.T(), err)

	leads, err := s.repo.List(context.Background())
	require.NoError(s.T(), err)
	assert.Len(s.T(), leads, 1)
}

func (s *LeadRepositoryTestSuite) TestGetByEmail_NotFound_ReturnsNil() {
	lead, err := s.repo.GetByEmail(context.Background(), "missing@example.com")

	assert.NoError(s.T(), err)
	assert.Nil(s.T(), lead)
}

func (s *LeadRepositoryTestSuite) TestUpdateLastFollowup_PersistsDate() {
	lead := &models.Lead{Email: "prospect@example.com"}
	require.NoError(s.T(), s.repo.Create(context.Background(), lead))

	today := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	err := s.repo.UpdateLastFollowup(context.Background(), lead.Email, today)
	require.NoError(s.T(), err)

	stored, err := s.repo.GetByEmail(context.Background(), lead.Email)
	require.NoError(s.T(), err)
	require.NotNil(s.T(), stored.LastFollowup)
	assert.Equal(s.T(), today.Format("2006-01-02"), stored.LastFollowup.Format("2006-01-02"))
}

func (s *LeadRepositoryTestSuite) TestUpdateLastFollowup_UnknownLead_ReturnsError() {
	err := s.repo.UpdateLastFollowup(context.Background(), "missing@example.com", time.Now())

	assert.ErrorIs(s.T(), err, mtErrors.ErrLeadNotFound)
}

func (s *LeadRepositoryTestSuite) TestCountStale_ExcludesNilAndFresh() {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	stale := now.AddDate(0, 0, -5)
	fresh := now.AddDate(0, 0, -1)

	require.NoError(s.T(), s.repo.Create(context.Background(), &models.Lead{Email: "stale@example.com", LastFollowup: &stale}))
	require.NoError(s.T(), s.repo.Create(context.Background(), &models.Lead{Email: "fresh@example.com", LastFollowup: &fresh}))
	require.NoError(s.T(), s.repo.Create(context.Background(), &models.Lead{Email: "never@example.com"}))

	count, err := s.repo.CountStale(context.Background(), now.AddDate(0, 0, -3))

	assert.NoError(s.T(), err)
	assert.Equal(s.T(), int64(1), count)
}
