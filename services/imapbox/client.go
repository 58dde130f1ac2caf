package imapbox

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"time"

	"github.com/emersion/go-imap/client"
	"github.com/opentracing/opentracing-go"

	"github.com/openfunnel/mailtriage/internal/tracing"
)

// connect establishes a fresh IMAP session. The gateway opens one session
// per operation and logs out when the operation completes.
func (s *imapService) connect(ctx context.Context) (*client.Client, error) {
	span, _ := opentracing.StartSpanFromContext(ctx, "imapService.connect")
	defer span.Finish()
	tracing.TagComponentMailboxGateway(span)
	span.SetTag("server", s.cfg.ImapServer)
	span.SetTag("port", s.cfg.ImapPort)

	serverAddr := fmt.Sprintf("%s:%d", s.cfg.ImapServer, s.cfg.ImapPort)

	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	var c *client.Client
	var err error

	if s.cfg.ImapTLS {
		tlsConfig := &tls.Config{
			ServerName: s.cfg.ImapServer,
		}
		c, err = client.DialWithDialerTLS(dialer, serverAddr, tlsConfig)
	} else {
		c, err = client.DialWithDialer(dialer, serverAddr)
	}
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, fmt.Errorf("failed to connect to %s: %w", serverAddr, err)
	}

	c.Timeout = 30 * time.Second

	if err := c.Login(s.cfg.ImapUsername, s.cfg.ImapPassword); err != nil {
		c.Logout()
		tracing.TraceErr(span, err)
		return nil, fmt.Errorf("failed to login as %s: %w", s.cfg.ImapUsername, err)
	}

	c.Timeout = 0

	return c, nil
}
