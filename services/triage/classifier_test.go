package triage

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openfunnel/mailtriage/internal/enum"
)

func TestClassify_CustomerWinsOverKeywords(t *testing.T) {
	classification, matched := Classify(true, "Pricing enquiry", "I need a quote for your services")
	require.Equal(t, enum.ClassificationExistingCustomer, classification)
	require.Nil(t, matched)
}

func TestClassify_KeywordInSubjectOnly(t *testing.T) {
	classification, matched := Classify(false, "Partnership opportunity", "Hi there")
	require.Equal(t, enum.ClassificationEnquiryLead, classification)
	require.Equal(t, []string{"partnership"}, matched)
}

func TestClassify_KeywordInBodyOnly(t *testing.T) {
	classification, matched := Classify(false, "Hello", "Could you send me PRICING details?")
	require.Equal(t, enum.ClassificationEnquiryLead, classification)
	require.Equal(t, []string{"pricing"}, matched)
}

func TestClassify_MultipleKeywordsAllReported(t *testing.T) {
	classification, matched := Classify(false, "Quote request", "Looking for information about your services")
	require.Equal(t, enum.ClassificationEnquiryLead, classification)
	require.ElementsMatch(t, []string{"quote", "information", "services"}, matched)
}

func TestClassify_NoMatchIgnored(t *testing.T) {
	classification, matched := Classify(false, "Weekly digest", "Here is what happened this week")
	require.Equal(t, enum.ClassificationIgnore, classification)
	require.Nil(t, matched)
}
