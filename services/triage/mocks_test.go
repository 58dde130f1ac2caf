package triage

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/openfunnel/mailtriage/dto"
	"github.com/openfunnel/mailtriage/interfaces"
	"github.com/openfunnel/mailtriage/internal/models"
)

type mockMailbox struct {
	mock.Mock
}

func (m *mockMailbox) FetchNextUnread(ctx context.Context) (*models.InboundMessage, error) {
	args := m.Called(ctx)
	var msg *models.InboundMessage
	if args.Get(0) != nil {
		msg = args.Get(0).(*models.InboundMessage)
	}
	return msg, args.Error(1)
}

func (m *mockMailbox) SendReply(ctx context.Context, draft *models.ReplyDraft) error {
	args := m.Called(ctx, draft)
	return args.Error(0)
}

func (m *mockMailbox) MarkRead(ctx context.Context, messageID string) error {
	args := m.Called(ctx, messageID)
	return args.Error(0)
}

func (m *mockMailbox) Status() interfaces.MailboxStatus {
	return interfaces.MailboxStatus{}
}

type mockAI struct {
	mock.Mock
}

func (m *mockAI) SummarizeAndRespond(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}

type mockCustomerRepo struct {
	mock.Mock
}

func (m *mockCustomerRepo) Exists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

type mockLeadRepo struct {
	mock.Mock
}

func (m *mockLeadRepo) List(ctx context.Context) ([]*models.Lead, error) {
	args := m.Called(ctx)
	var leads []*models.Lead
	if args.Get(0) != nil {
		leads = args.Get(0).([]*models.Lead)
	}
	return leads, args.Error(1)
}

func (m *mockLeadRepo) GetByEmail(ctx context.Context, email string) (*models.Lead, error) {
	args := m.Called(ctx, email)
	var lead *models.Lead
	if args.Get(0) != nil {
		lead = args.Get(0).(*models.Lead)
	}
	return lead, args.Error(1)
}

func (m *mockLeadRepo) Create(ctx context.Context, lead *models.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *mockLeadRepo) UpdateLastFollowup(ctx context.Context, email string, date time.Time) error {
	args := m.Called(ctx, email, date)
	return args.Error(0)
}

func (m *mockLeadRepo) CountStale(ctx context.Context, olderThan time.Time) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

type mockActionRepo struct {
	mock.Mock
}

func (m *mockActionRepo) Create(ctx context.Context, action *models.TriageAction) error {
	args := m.Called(ctx, action)
	return args.Error(0)
}

func (m *mockActionRepo) List(ctx context.Context, limit, offset int) ([]*models.TriageAction, int64, error) {
	args := m.Called(ctx, limit, offset)
	var actions []*models.TriageAction
	if args.Get(0) != nil {
		actions = args.Get(0).([]*models.TriageAction)
	}
	return actions, args.Get(1).(int64), args.Error(2)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event dto.TriageEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *mockPublisher) Close() error {
	return nil
}
