package errors

import "github.com/pkg/errors"

var (
	// mailbox errors
	ErrNoUnreadMessages = errors.New("no unread messages")
	ErrMessageNotFound  = errors.New("message not found")

	// record store errors
	ErrLeadExists   = errors.New("lead already exists")
	ErrLeadNotFound = errors.New("lead not found")

	// triage errors
	ErrTriageLoopRunning = errors.New("triage loop already running")
)
