package utils

import (
	"regexp"
	"strings"
)

// ExtractAddress pulls the bare address out of a "Display Name <addr>"
// header value. When no angle brackets are present the trimmed input is
// returned as is.
func ExtractAddress(sender string) string {
	sender = strings.TrimSpace(sender)

	if strings.Contains(sender, "<") && strings.Contains(sender, ">") {
		startIdx := strings.LastIndex(sender, "<") + 1
		endIdx := strings.LastIndex(sender, ">")
		if startIdx > 0 && endIdx > startIdx {
			return strings.TrimSpace(sender[startIdx:endIdx])
		}
	}

	return sender
}

func ExtractDomainFromEmail(email string) string {
	if email == "" {
		return ""
	}

	email = ExtractAddress(email)

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return ""
	}

	return strings.ToLower(strings.TrimSpace(parts[1]))
}

func NormalizeSubject(subject string) string {
	// Remove common reply/forward prefixes, case insensitive
	re := regexp.MustCompile(`(?i)^(re|fwd|fw|aw|sv)(\s*:|\s*\[\d+\]\s*:)*\s*`)
	normalized := re.ReplaceAllString(subject, "")

	return strings.TrimSpace(normalized)
}

// ReplySubject threads a reply onto the original subject.
func ReplySubject(subject string) string {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(subject)), "re:") {
		return subject
	}
	return "Re: " + subject
}
