package triage

import (
	"context"
	"sync"
	"time"

	"github.com/lib/pq"
	"github.com/opentracing/opentracing-go"

	"github.com/openfunnel/mailtriage/config"
	"github.com/openfunnel/mailtriage/dto"
	"github.com/openfunnel/mailtriage/interfaces"
	"github.com/openfunnel/mailtriage/internal/enum"
	"github.com/openfunnel/mailtriage/internal/logger"
	"github.com/openfunnel/mailtriage/internal/models"
	"github.com/openfunnel/mailtriage/internal/repository"
	"github.com/openfunnel/mailtriage/internal/tracing"
	"github.com/openfunnel/mailtriage/internal/utils"
)

// fallbackResponse replaces the generated summary when the generation
// service fails.
const fallbackResponse = "I'm sorry, but I couldn't process your request."

type triageService struct {
	cfg       *config.TriageConfig
	log       logger.Logger
	mailbox   interfaces.MailboxService
	ai        interfaces.AIService
	repos     *repository.Repositories
	publisher interfaces.EventPublisher
	selector  interfaces.ReplySelector
	templates Templates

	statusMutex sync.RWMutex
	status      interfaces.TriageStatus
}

func NewTriageService(
	cfg *config.TriageConfig,
	log logger.Logger,
	mailbox interfaces.MailboxService,
	ai interfaces.AIService,
	repos *repository.Repositories,
	publisher interfaces.EventPublisher,
	selector interfaces.ReplySelector,
) interfaces.TriageService {
	return &triageService{
		cfg:       cfg,
		log:       log,
		mailbox:   mailbox,
		ai:        ai,
		repos:     repos,
		publisher: publisher,
		selector:  selector,
		templates: Templates{
			CompanyName: cfg.CompanyName,
			SenderName:  cfg.SenderName,
			Industry:    cfg.Industry,
		},
	}
}

// Run executes cycles at the configured interval until the context is
// cancelled. Errors inside a cycle are logged and absorbed; the loop has no
// fatal error path.
func (s *triageService) Run(ctx context.Context) error {
	s.setRunning(true)
	defer s.setRunning(false)

	s.log.Infof("Triage loop starting, polling every %s", s.cfg.PollInterval)

	ticker := time.NewTicker(s.cfg.PollInterval)
	defer ticker.Stop()

	for {
		if err := s.RunCycle(ctx); err != nil {
			s.log.Errorf("Triage cycle error: %v", err)
		}

		select {
		case <-ctx.Done():
			s.log.Info("Triage loop stopping")
			return nil
		case <-ticker.C:
		}
	}
}

// RunCycle executes one pass of poll → classify → act → mark-read followed
// by the lead follow-up sweep.
func (s *triageService) RunCycle(ctx context.Context) error {
	span, ctx := tracing.StartTracerSpan(ctx, "triageService.RunCycle")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	msg, err := s.mailbox.FetchNextUnread(ctx)
	if err != nil {
		// A degraded mailbox never stops the cadence; the sweep still runs.
		tracing.TraceErr(span, err)
		s.log.Errorf("Error fetching latest email: %v", err)
		s.recordError(err)
	} else if msg == nil {
		s.log.Debug("No unread emails found")
	} else {
		s.processMessage(ctx, msg)
	}

	s.followupSweep(ctx)

	s.recordCycle()
	return nil
}

func (s *triageService) processMessage(ctx context.Context, msg *models.InboundMessage) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "triageService.processMessage")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.SetTag(tracing.SpanTagMessageID, msg.ID)
	span.SetTag(tracing.SpanTagSender, msg.Sender)

	email := utils.ExtractAddress(msg.Sender)
	s.log.Infof("New email from %s - %s", msg.Sender, msg.Subject)

	isCustomer, err := s.repos.CustomerRepository.Exists(ctx, email)
	if err != nil {
		// Fail-safe default: a transient store error must never trigger an
		// AI-generated customer reply to an unknown party.
		tracing.TraceErr(span, err)
		s.log.Errorf("Customer lookup failed for %s, treating as unknown: %v", email, err)
		isCustomer = false
	}

	classification, matched := Classify(isCustomer, msg.Subject, msg.Body)
	span.SetTag("classification", classification.String())

	switch classification {
	case enum.ClassificationExistingCustomer:
		s.handleCustomerMessage(ctx, msg, email)
	case enum.ClassificationEnquiryLead:
		s.handleEnquiry(ctx, msg, email, matched)
	default:
		// No send, no mark-read: the message stays unread and is naturally
		// retried next cycle.
		s.log.Infof("Sender %s is not a customer and no enquiry keywords matched, skipping", email)
	}
}

func (s *triageService) handleCustomerMessage(ctx context.Context, msg *models.InboundMessage, email string) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "triageService.handleCustomerMessage")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	summary, err := s.ai.SummarizeAndRespond(ctx, msg.Body)
	if err != nil {
		tracing.TraceErr(span, err)
		s.log.Errorf("Error generating response: %v", err)
		summary = fallbackResponse
	}

	choice := s.selector.Select(ctx, msg, summary)
	draft := BuildReply(s.templates, msg, summary, choice)

	if err := s.mailbox.SendReply(ctx, draft); err != nil {
		// Mark-read only after a confirmed send, so a failed reply stays
		// unread and is retried next cycle.
		tracing.TraceErr(span, err)
		s.log.Errorf("Error sending reply to %s: %v", draft.To, err)
		return
	}
	s.log.Infof("Reply sent to %s", draft.To)

	if err := s.mailbox.MarkRead(ctx, msg.ID); err != nil {
		tracing.TraceErr(span, err)
		s.log.Errorf("Error marking message %s as read: %v", msg.ID, err)
	}

	s.recordAction(ctx, &models.TriageAction{
		MessageID:      msg.ID,
		Sender:         email,
		Subject:        msg.Subject,
		Classification: enum.ClassificationExistingCustomer,
		Action:         enum.TriageActionAIReply,
		ReplyVariant:   choice.Variant,
	})
	s.publishEvent(ctx, dto.TriageEvent{
		Type:           dto.EventTypeReplySent,
		Recipient:      email,
		Subject:        draft.Subject,
		Classification: enum.ClassificationExistingCustomer,
		Action:         enum.TriageActionAIReply,
	})
}

func (s *triageService) handleEnquiry(ctx context.Context, msg *models.InboundMessage, email string, matched []string) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "triageService.handleEnquiry")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	draft := &models.ReplyDraft{
		To:      email,
		Subject: msg.Subject,
		Body:    s.templates.IntroBody(),
	}

	if err := s.mailbox.SendReply(ctx, draft); err != nil {
		tracing.TraceErr(span, err)
		s.log.Errorf("Error sending introductory email to %s: %v", email, err)
		return
	}
	s.log.Infof("Enquiry detected, introductory message sent to %s", email)

	if err := s.mailbox.MarkRead(ctx, msg.ID); err != nil {
		tracing.TraceErr(span, err)
		s.log.Errorf("Error marking message %s as read: %v", msg.ID, err)
	}

	// Track the sender as a lead with no follow-up date yet; the sweep only
	// picks it up once a follow-up has actually been sent.
	if err := s.repos.LeadRepository.Create(ctx, &models.Lead{Email: email, Source: "enquiry"}); err != nil {
		tracing.TraceErr(span, err)
		s.log.Errorf("Error recording lead %s: %v", email, err)
	}

	s.recordAction(ctx, &models.TriageAction{
		MessageID:      msg.ID,
		Sender:         email,
		Subject:        msg.Subject,
		Classification: enum.ClassificationEnquiryLead,
		Action:         enum.TriageActionIntroReply,
		MatchedWords:   pq.StringArray(matched),
	})
	s.publishEvent(ctx, dto.TriageEvent{
		Type:           dto.EventTypeReplySent,
		Recipient:      email,
		Subject:        draft.Subject,
		Classification: enum.ClassificationEnquiryLead,
		Action:         enum.TriageActionIntroReply,
	})
}

// followupSweep sends a reminder to every lead whose last follow-up is
// present and older than the staleness threshold. Each lead's timestamp is
// persisted immediately after its send so a sweep can never remind the same
// lead twice.
func (s *triageService) followupSweep(ctx context.Context) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "triageService.followupSweep")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	leads, err := s.repos.LeadRepository.List(ctx)
	if err != nil {
		tracing.TraceErr(span, err)
		s.log.Errorf("Error in follow-up process: %v", err)
		return
	}

	now := utils.Now()
	for _, lead := range leads {
		if !lead.NeedsFollowup(now, s.cfg.FollowupStaleness) {
			continue
		}

		draft := &models.ReplyDraft{
			To:      lead.Email,
			Subject: followupSubject,
			Body:    followupBody,
		}
		if err := s.mailbox.SendReply(ctx, draft); err != nil {
			tracing.TraceErr(span, err)
			s.log.Errorf("Error sending follow-up to %s: %v", lead.Email, err)
			continue
		}

		if err := s.repos.LeadRepository.UpdateLastFollowup(ctx, lead.Email, utils.Today()); err != nil {
			tracing.TraceErr(span, err)
			s.log.Errorf("Error updating follow-up date for %s: %v", lead.Email, err)
			continue
		}
		s.log.Infof("Follow-up reminder sent to %s", lead.Email)

		s.recordAction(ctx, &models.TriageAction{
			Sender: lead.Email,
			Action: enum.TriageActionFollowupReminder,
		})
		s.publishEvent(ctx, dto.TriageEvent{
			Type:      dto.EventTypeLeadFollowup,
			Recipient: lead.Email,
			Subject:   followupSubject,
			Action:    enum.TriageActionFollowupReminder,
		})
	}
}

func (s *triageService) recordAction(ctx context.Context, action *models.TriageAction) {
	if err := s.repos.TriageActionRepository.Create(ctx, action); err != nil {
		s.log.Errorf("Error recording triage action: %v", err)
	}
}

func (s *triageService) publishEvent(ctx context.Context, event dto.TriageEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Errorf("Error publishing triage event: %v", err)
	}
}

func (s *triageService) Status() interfaces.TriageStatus {
	s.statusMutex.RLock()
	defer s.statusMutex.RUnlock()
	return s.status
}

func (s *triageService) setRunning(running bool) {
	s.statusMutex.Lock()
	defer s.statusMutex.Unlock()
	s.status.Running = running
}

func (s *triageService) recordError(err error) {
	s.statusMutex.Lock()
	defer s.statusMutex.Unlock()
	s.status.LastError = err.Error()
}

func (s *triageService) recordCycle() {
	s.statusMutex.Lock()
	defer s.statusMutex.Unlock()
	s.status.CyclesCompleted++
	s.status.LastCycleAt = time.Now().UTC()
}
