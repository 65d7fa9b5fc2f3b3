package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

const (
	gmailHost     = "smtp.gmail.com"
	gmailPort     = 465
	brevoSMTPHost = "smtp-relay.brevo.com"
	brevoSMTPPort = 587
)

// DefaultSMTPTimeout bounds one SMTP session from dial to QUIT.
const DefaultSMTPTimeout = 30 * time.Second

// SMTPTransport builds messages with gomail and delivers them over its own
// connection so every phase of the session runs under a deadline. Port 465
// uses implicit TLS, other ports upgrade with STARTTLS when offered.
type SMTPTransport struct {
	name        string
	kind        Kind
	host        string
	port        int
	user        string
	pass        string
	ssl         bool
	timeout     time.Duration
	fromName    string
	fromAddress string
}

func NewSMTPTransport(name string, kind Kind, host string, port int, user, pass, fromName, fromAddress string) *SMTPTransport {
	return &SMTPTransport{
		name:        name,
		kind:        kind,
		host:        host,
		port:        port,
		user:        user,
		pass:        pass,
		ssl:         port == 465,
		timeout:     DefaultSMTPTimeout,
		fromName:    fromName,
		fromAddress: fromAddress,
	}
}

// NewGmailTransport sends as the authenticated Gmail account.
func NewGmailTransport(user, pass, fromName string) *SMTPTransport {
	return NewSMTPTransport("gmail", KindSMTPSecure, gmailHost, gmailPort, user, pass, fromName, user)
}

func NewBrevoSMTPTransport(user, pass, fromName, fromAddress string) *SMTPTransport {
	return NewSMTPTransport("brevo-smtp", KindSMTPRelay, brevoSMTPHost, brevoSMTPPort, user, pass, fromName, fromAddress)
}

func (t *SMTPTransport) Name() string { return t.name }
func (t *SMTPTransport) Kind() Kind   { return t.kind }

// Verify dials, authenticates and hangs up.
func (t *SMTPTransport) Verify(ctx context.Context) error {
	return t.session(ctx, func(*smtp.Client) error { return nil })
}

func (t *SMTPTransport) Send(ctx context.Context, msg *Message) (*Receipt, error) {
	m, id := t.build(msg)
	err := t.session(ctx, func(c *smtp.Client) error {
		return gomail.Send(gomail.SendFunc(func(from string, to []string, wt io.WriterTo) error {
			if err := c.Mail(from); err != nil {
				return err
			}
			for _, rcpt := range to {
				if err := c.Rcpt(rcpt); err != nil {
					return err
				}
			}
			w, err := c.Data()
			if err != nil {
				return err
			}
			if _, err := wt.WriteTo(w); err != nil {
				w.Close()
				return err
			}
			return w.Close()
		}), m)
	})
	if err != nil {
		return nil, err
	}
	return &Receipt{Provider: t.name, MessageID: id, To: msg.To, SentAt: time.Now()}, nil
}

// session opens an authenticated connection, runs fn and quits. The
// connection deadline is the earlier of ctx's deadline and t.timeout, and
// the connection is closed as soon as ctx ends.
func (t *SMTPTransport) session(ctx context.Context, fn func(*smtp.Client) error) error {
	deadline := time.Now().Add(t.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	addr := net.JoinHostPort(t.host, strconv.Itoa(t.port))
	dialer := &net.Dialer{Deadline: deadline}
	tlsConfig := &tls.Config{ServerName: t.host, MinVersion: tls.VersionTLS12}

	var (
		conn net.Conn
		err  error
	)
	if t.ssl {
		conn, err = (&tls.Dialer{NetDialer: dialer, Config: tlsConfig}).DialContext(ctx, "tcp", addr)
	} else {
		conn, err = dialer.DialContext(ctx, "tcp", addr)
	}
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := conn.SetDeadline(deadline); err != nil {
		return err
	}
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	err = t.converse(conn, tlsConfig, fn)
	if ctxErr := ctx.Err(); err != nil && ctxErr != nil {
		return ctxErr
	}
	return err
}

func (t *SMTPTransport) converse(conn net.Conn, tlsConfig *tls.Config, fn func(*smtp.Client) error) error {
	c, err := smtp.NewClient(conn, t.host)
	if err != nil {
		return err
	}
	defer c.Close()

	if !t.ssl {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err := c.StartTLS(tlsConfig); err != nil {
				return err
			}
		}
	}
	if t.user != "" {
		if ok, _ := c.Extension("AUTH"); ok {
			if err := c.Auth(smtp.PlainAuth("", t.user, t.pass, t.host)); err != nil {
				return err
			}
		}
	}

	if err := fn(c); err != nil {
		return err
	}
	return c.Quit()
}

func (t *SMTPTransport) build(msg *Message) (*gomail.Message, string) {
	id := fmt.Sprintf("<%s@%s>", uuid.NewString(), domainOf(t.fromAddress))

	m := gomail.NewMessage()
	m.SetAddressHeader("From", t.fromAddress, t.fromName)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetHeader("Message-ID", id)
	m.SetDateHeader("Date", time.Now())
	m.SetBody("text/html", msg.BodyFor(true))

	for _, asset := range msg.Inline {
		data := asset.Data
		header := map[string][]string{"Content-ID": {"<" + asset.ContentID + ">"}}
		if asset.ContentType != "" {
			header["Content-Type"] = []string{asset.ContentType}
		}
		m.Embed(asset.Name,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
			gomail.SetHeader(header),
		)
	}
	return m, id
}

func domainOf(addr string) string {
	if i := strings.LastIndex(addr, "@"); i >= 0 && i < len(addr)-1 {
		return addr[i+1:]
	}
	return "localhost"
}
