package triage

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/openfunnel/mailtriage/config"
	"github.com/openfunnel/mailtriage/internal/enum"
	"github.com/openfunnel/mailtriage/internal/logger"
	"github.com/openfunnel/mailtriage/internal/models"
	"github.com/openfunnel/mailtriage/internal/repository"
)

type triageFixture struct {
	mailbox   *mockMailbox
	ai        *mockAI
	customers *mockCustomerRepo
	leads     *mockLeadRepo
	actions   *mockActionRepo
	publisher *mockPublisher
	service   *triageService
}

func newTriageFixture(t *testing.T, variant enum.ReplyVariant) *triageFixture {
	t.Helper()

	log := logger.NewAppLogger(&logger.Config{DevMode: true})
	log.InitLogger()

	f := &triageFixture{
		mailbox:   &mockMailbox{},
		ai:        &mockAI{},
		customers: &mockCustomerRepo{},
		leads:     &mockLeadRepo{},
		actions:   &mockActionRepo{},
		publisher: &mockPublisher{},
	}

	cfg := &config.TriageConfig{
		PollInterval:      time.Second,
		FollowupStaleness: 72 * time.Hour,
		CompanyName:       "Acme Corp",
		SenderName:        "Jordan",
		Industry:          "widgets",
	}

	repos := &repository.Repositories{
		CustomerRepository:     f.customers,
		LeadRepository:         f.leads,
		TriageActionRepository: f.actions,
	}

	f.service = NewTriageService(cfg, log, f.mailbox, f.ai, repos, f.publisher, NewStaticSelector(variant, "")).(*triageService)
	return f
}

func TestRunCycle_CustomerMessageGetsAIReplyAndMarkRead(t *testing.T) {
	f := newTriageFixture(t, enum.ReplyVariantShort)
	ctx := context.Background()

	msg := &models.InboundMessage{
		ID:      "msg-1",
		Sender:  "Jane Doe <jane@client.com>",
		Subject: "Invoice question",
		Body:    "Can you resend last month's invoice?",
	}

	f.mailbox.On("FetchNextUnread", mock.Anything).Return(msg, nil)
	f.customers.On("Exists", mock.Anything, "jane@client.com").Return(true, nil)
	f.ai.On("SummarizeAndRespond", mock.Anything, msg.Body).Return("Here is a summary.", nil)
	f.mailbox.On("SendReply", mock.Anything, mock.MatchedBy(func(d *models.ReplyDraft) bool {
		return d.To == "jane@client.com" && d.Subject == "Invoice question" && d.Body == shortReplyBody
	})).Return(nil)
	f.mailbox.On("MarkRead", mock.Anything, "msg-1").Return(nil)
	f.actions.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	f.leads.On("List", mock.Anything).Return([]*models.Lead{}, nil)

	require.NoError(t, f.service.RunCycle(ctx))

	f.ai.AssertNumberOfCalls(t, "SummarizeAndRespond", 1)
	f.mailbox.AssertCalled(t, "MarkRead", mock.Anything, "msg-1")
	f.actions.AssertCalled(t, "Create", mock.Anything, mock.MatchedBy(func(a *models.TriageAction) bool {
		return a.Action == enum.TriageActionAIReply && a.Classification == enum.ClassificationExistingCustomer
	}))
}

func TestRunCycle_EnquiryGetsIntroReplyWithoutAI(t *testing.T) {
	f := newTriageFixture(t, enum.ReplyVariantShort)
	ctx := context.Background()

	msg := &models.InboundMessage{
		ID:      "msg-2",
		Sender:  "prospect@example.com",
		Subject: "Pricing enquiry",
		Body:    "Could you share more information about your services?",
	}

	f.mailbox.On("FetchNextUnread", mock.Anything).Return(msg, nil)
	f.customers.On("Exists", mock.Anything, "prospect@example.com").Return(false, nil)
	f.mailbox.On("SendReply", mock.Anything, mock.MatchedBy(func(d *models.ReplyDraft) bool {
		return d.To == "prospect@example.com" && d.Body == f.service.templates.IntroBody()
	})).Return(nil)
	f.mailbox.On("MarkRead", mock.Anything, "msg-2").Return(nil)
	f.leads.On("Create", mock.Anything, mock.MatchedBy(func(l *models.Lead) bool {
		return l.Email == "prospect@example.com" && l.Source == "enquiry" && l.LastFollowup == nil
	})).Return(nil)
	f.actions.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	f.leads.On("List", mock.Anything).Return([]*models.Lead{}, nil)

	require.NoError(t, f.service.RunCycle(ctx))

	f.ai.AssertNotCalled(t, "SummarizeAndRespond", mock.Anything, mock.Anything)
	f.mailbox.AssertCalled(t, "MarkRead", mock.Anything, "msg-2")
	f.leads.AssertCalled(t, "Create", mock.Anything, mock.Anything)
	f.actions.AssertCalled(t, "Create", mock.Anything, mock.MatchedBy(func(a *models.TriageAction) bool {
		return a.Action == enum.TriageActionIntroReply && len(a.MatchedWords) > 0
	}))
}

func TestRunCycle_UnmatchedSenderLeftUnread(t *testing.T) {
	f := newTriageFixture(t, enum.ReplyVariantShort)
	ctx := context.Background()

	msg := &models.InboundMessage{
		ID:      "msg-3",
		Sender:  "newsletter@random.com",
		Subject: "Weekly digest",
		Body:    "Here is what happened this week.",
	}

	f.mailbox.On("FetchNextUnread", mock.Anything).Return(msg, nil)
	f.customers.On("Exists", mock.Anything, "newsletter@random.com").Return(false, nil)
	f.leads.On("List", mock.Anything).Return([]*models.Lead{}, nil)

	require.NoError(t, f.service.RunCycle(ctx))

	f.mailbox.AssertNotCalled(t, "SendReply", mock.Anything, mock.Anything)
	f.mailbox.AssertNotCalled(t, "MarkRead", mock.Anything, mock.Anything)
	f.ai.AssertNotCalled(t, "SummarizeAndRespond", mock.Anything, mock.Anything)
}

func TestRunCycle_SweepSelectsOnlyStaleLeads(t *testing.T) {
	f := newTriageFixture(t, enum.ReplyVariantShort)
	ctx := context.Background()

	stale := time.Now().UTC().Add(-5 * 24 * time.Hour)
	fresh := time.Now().UTC().Add(-24 * time.Hour)

	leads := []*models.Lead{
		{Email: "stale@example.com", LastFollowup: &stale},
		{Email: "fresh@example.com", LastFollowup: &fresh},
		{Email: "new@example.com", LastFollowup: nil},
	}

	f.mailbox.On("FetchNextUnread", mock.Anything).Return(nil, nil)
	f.leads.On("List", mock.Anything).Return(leads, nil)
	f.mailbox.On("SendReply", mock.Anything, mock.MatchedBy(func(d *models.ReplyDraft) bool {
		return d.To == "stale@example.com" && d.Subject == followupSubject && d.Body == followupBody
	})).Return(nil)
	f.leads.On("UpdateLastFollowup", mock.Anything, "stale@example.com", mock.MatchedBy(func(d time.Time) bool {
		return time.Since(d) < 25*time.Hour
	})).Return(nil)
	f.actions.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	require.NoError(t, f.service.RunCycle(ctx))

	f.mailbox.AssertNumberOfCalls(t, "SendReply", 1)
	f.leads.AssertNumberOfCalls(t, "UpdateLastFollowup", 1)
}

func TestRunCycle_FetchErrorStillRunsSweep(t *testing.T) {
	f := newTriageFixture(t, enum.ReplyVariantShort)
	ctx := context.Background()

	f.mailbox.On("FetchNextUnread", mock.Anything).Return(nil, errors.New("connection reset"))
	f.leads.On("List", mock.Anything).Return([]*models.Lead{}, nil)

	require.NoError(t, f.service.RunCycle(ctx))

	f.leads.AssertCalled(t, "List", mock.Anything)
}

func TestHandleCustomerMessage_SendFailureSkipsMarkRead(t *testing.T) {
	f := newTriageFixture(t, enum.ReplyVariantShort)
	ctx := context.Background()

	msg := &models.InboundMessage{
		ID:      "msg-4",
		Sender:  "jane@client.com",
		Subject: "Hello",
		Body:    "Quick question.",
	}

	f.ai.On("SummarizeAndRespond", mock.Anything, msg.Body).Return("Summary.", nil)
	f.mailbox.On("SendReply", mock.Anything, mock.Anything).Return(errors.New("smtp unavailable"))

	f.service.handleCustomerMessage(ctx, msg, "jane@client.com")

	f.mailbox.AssertNotCalled(t, "MarkRead", mock.Anything, mock.Anything)
	f.actions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestHandleCustomerMessage_AIFailureFallsBackToCannedText(t *testing.T) {
	f := newTriageFixture(t, enum.ReplyVariantDetailed)
	ctx := context.Background()

	msg := &models.InboundMessage{
		ID:      "msg-5",
		Sender:  "jane@client.com",
		Subject: "Hello",
		Body:    "Quick question.",
	}

	f.ai.On("SummarizeAndRespond", mock.Anything, msg.Body).Return("", errors.New("model overloaded"))
	f.mailbox.On("SendReply", mock.Anything, mock.MatchedBy(func(d *models.ReplyDraft) bool {
		return d.Body == (Templates{CompanyName: "Acme Corp", SenderName: "Jordan", Industry: "widgets"}).DetailedBody(fallbackResponse)
	})).Return(nil)
	f.mailbox.On("MarkRead", mock.Anything, "msg-5").Return(nil)
	f.actions.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	f.service.handleCustomerMessage(ctx, msg, "jane@client.com")

	f.mailbox.AssertCalled(t, "SendReply", mock.Anything, mock.Anything)
	f.mailbox.AssertCalled(t, "MarkRead", mock.Anything, "msg-5")
}

func TestFollowupSweep_UpdateFailureDoesNotRecordAction(t *testing.T) {
	f := newTriageFixture(t, enum.ReplyVariantShort)
	ctx := context.Background()

	stale := time.Now().UTC().Add(-5 * 24 * time.Hour)
	f.leads.On("List", mock.Anything).Return([]*models.Lead{{Email: "stale@example.com", LastFollowup: &stale}}, nil)
	f.mailbox.On("SendReply", mock.Anything, mock.Anything).Return(nil)
	f.leads.On("UpdateLastFollowup", mock.Anything, "stale@example.com", mock.Anything).Return(errors.New("db down"))

	f.service.followupSweep(ctx)

	f.actions.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}
