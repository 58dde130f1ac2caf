package enum

type Classification string

const (
	ClassificationExistingCustomer Classification = "existing_customer"
	ClassificationEnquiryLead      Classification = "enquiry_lead"
	ClassificationIgnore           Classification = "ignore"
)

func (t Classification) String() string {
	return string(t)
}

type TriageAction string

const (
	TriageActionAIReply          TriageAction = "ai_reply"
	TriageActionIntroReply       TriageAction = "intro_reply"
	TriageActionFollowupReminder TriageAction = "followup_reminder"
	TriageActionNone             TriageAction = "none"
)

func (t TriageAction) String() string {
	return string(t)
}
