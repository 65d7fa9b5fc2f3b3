// Package mailer delivers HTML email through a chain of transports with a
// single fallback attempt.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Kind classifies a transport by how it reaches the provider.
type Kind string

const (
	KindSMTPSecure Kind = "direct-smtp-secure"
	KindSMTPRelay  Kind = "direct-smtp-relay"
	KindHTTPAPI    Kind = "http-api-relay"
	KindHTTPBridge Kind = "http-bridge"
)

// IsHTTP reports whether the transport talks HTTP rather than SMTP.
func (k Kind) IsHTTP() bool {
	return k == KindHTTPAPI || k == KindHTTPBridge
}

var (
	// ErrNoTransport means no provider had usable credentials.
	ErrNoTransport = errors.New("no email transport configured")
	// ErrVerifyUnsupported is returned by transports without a handshake.
	ErrVerifyUnsupported = errors.New("transport does not support verification")
)

// InlineAsset is an image referenced from the HTML body as cid:ContentID.
type InlineAsset struct {
	Name        string
	ContentID   string
	ContentType string
	Data        []byte
}

type Message struct {
	To      string
	Subject string
	HTML    string
	// AltHTML is used by transports that cannot embed Inline assets.
	// Empty means HTML is sent unchanged.
	AltHTML string
	Inline  []InlineAsset
}

// BodyFor picks the HTML body for a transport.
func (m *Message) BodyFor(supportsInline bool) string {
	if !supportsInline && len(m.Inline) > 0 && m.AltHTML != "" {
		return m.AltHTML
	}
	return m.HTML
}

// Receipt describes an accepted message.
type Receipt struct {
	Provider  string    `json:"provider"`
	MessageID string    `json:"messageId"`
	To        string    `json:"to"`
	SentAt    time.Time `json:"sentAt"`
}

// Transport is one outbound provider.
type Transport interface {
	Name() string
	Kind() Kind
	// Verify performs a connectivity handshake. Transports without one
	// return ErrVerifyUnsupported.
	Verify(ctx context.Context) error
	Send(ctx context.Context, msg *Message) (*Receipt, error)
}

// AttemptError is one failed delivery attempt.
type AttemptError struct {
	Provider string
	Err      error
}

func (e AttemptError) Error() string {
	return e.Provider + ": " + e.Err.Error()
}

func (e AttemptError) Unwrap() error { return e.Err }

// DeliveryError is returned when every attempted transport failed.
type DeliveryError struct {
	To       string
	Attempts []AttemptError
}

func (e *DeliveryError) Error() string {
	if len(e.Attempts) == 0 {
		return fmt.Sprintf("email delivery to %s failed: %v", e.To, ErrNoTransport)
	}
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, a.Error())
	}
	return fmt.Sprintf("email delivery to %s failed: %s", e.To, strings.Join(parts, "; "))
}

func (e *DeliveryError) Unwrap() []error {
	if len(e.Attempts) == 0 {
		return []error{ErrNoTransport}
	}
	errs := make([]error, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		errs = append(errs, a)
	}
	return errs
}
