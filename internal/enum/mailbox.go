package enum

type MailboxProvider string

const (
	MailboxProviderGmail MailboxProvider = "gmail"
	MailboxProviderIMAP  MailboxProvider = "imap"
)

func (t MailboxProvider) String() string {
	return string(t)
}

type MailboxSecurity string

const (
	MailboxSecurityNone     MailboxSecurity = "none"
	MailboxSecuritySSL      MailboxSecurity = "ssl"
	MailboxSecurityStartTLS MailboxSecurity = "startTLS"
)

func (t MailboxSecurity) String() string {
	return string(t)
}
