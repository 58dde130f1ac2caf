package triage

import (
	"strings"

	"github.com/openfunnel/mailtriage/internal/enum"
)

// enquiryKeywords is the fixed vocabulary used to flag a message as a sales
// enquiry when the sender is not a known customer.
var enquiryKeywords = []string{
	"enquiry",
	"information",
	"pricing",
	"quote",
	"partnership",
	"collaboration",
	"services",
}

// Classify decides what a message is. Customer status always wins over
// keyword matching: a known customer's message is never treated as a cold
// enquiry. Keyword matching is case-insensitive and either the subject or
// the body alone is sufficient. The matched keywords are returned for the
// audit log.
func Classify(isCustomer bool, subject, body string) (enum.Classification, []string) {
	if isCustomer {
		return enum.ClassificationExistingCustomer, nil
	}

	subjectLower := strings.ToLower(subject)
	bodyLower := strings.ToLower(body)

	var matched []string
	for _, keyword := range enquiryKeywords {
		if strings.Contains(subjectLower, keyword) || strings.Contains(bodyLower, keyword) {
			matched = append(matched, keyword)
		}
	}

	if len(matched) > 0 {
		return enum.ClassificationEnquiryLead, matched
	}

	return enum.ClassificationIgnore, nil
}
