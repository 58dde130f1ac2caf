package enum

type ReplyVariant string

const (
	ReplyVariantShort    ReplyVariant = "short"
	ReplyVariantDetailed ReplyVariant = "detailed"
	ReplyVariantMeeting  ReplyVariant = "meeting_request"
	ReplyVariantCustom   ReplyVariant = "custom"
)

func (t ReplyVariant) String() string {
	return string(t)
}

// DecodeReplyVariant maps a configured/operator-supplied value onto a known
// variant, defaulting to the short acknowledgement.
func DecodeReplyVariant(s string) ReplyVariant {
	switch ReplyVariant(s) {
	case ReplyVariantShort, ReplyVariantDetailed, ReplyVariantMeeting, ReplyVariantCustom:
		return ReplyVariant(s)
	default:
		return ReplyVariantShort
	}
}
