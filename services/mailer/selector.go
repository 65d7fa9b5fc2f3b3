package mailer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jvoverseas/intake_backend/config"
	"github.com/labstack/gommon/log"
)

// Readiness is the verification state of a transport.
type Readiness string

const (
	ReadinessPending     Readiness = "pending"
	ReadinessReady       Readiness = "ready"
	ReadinessFailed      Readiness = "failed"
	ReadinessUnsupported Readiness = "unsupported"
)

// usable reports whether a transport may lead the chain.
func (r Readiness) usable() bool {
	return r == ReadinessReady || r == ReadinessUnsupported
}

// DefaultFallbackOrder is used when EMAIL_FALLBACK_PROVIDERS is empty.
var DefaultFallbackOrder = []string{
	config.ProviderBrevoAPI,
	config.ProviderBridge,
	config.ProviderBrevoSMTP,
	config.ProviderGmail,
}

const (
	DefaultSendTimeout = 30 * time.Second
	maxAttempts        = 2
)

// Selector picks transports for each message and falls back once.
type Selector struct {
	primary    string
	fallbacks  []string
	transports map[string]Transport

	mu    sync.RWMutex
	state map[string]Readiness

	deliveryLog DeliveryLog
	logo        *InlineAsset
	timeout     time.Duration
	logger      *log.Logger
}

type Option func(*Selector)

func WithDeliveryLog(l DeliveryLog) Option {
	return func(s *Selector) {
		if l != nil {
			s.deliveryLog = l
		}
	}
}

// WithLogo attaches the asset inline to every message.
func WithLogo(a *InlineAsset) Option {
	return func(s *Selector) { s.logo = a }
}

// WithTimeout bounds each individual attempt.
func WithTimeout(d time.Duration) Option {
	return func(s *Selector) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(s *Selector) {
		if l != nil {
			s.logger = l
		}
	}
}

// New builds a selector over already constructed transports. A nil
// fallbacks slice means DefaultFallbackOrder.
func New(primary string, fallbacks []string, transports []Transport, opts ...Option) *Selector {
	s := &Selector{
		primary:     primary,
		transports:  make(map[string]Transport, len(transports)),
		state:       make(map[string]Readiness, len(transports)),
		deliveryLog: NopDeliveryLog{},
		timeout:     DefaultSendTimeout,
		logger:      log.New("mailer"),
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, t := range transports {
		s.add(t)
	}

	if fallbacks == nil {
		fallbacks = DefaultFallbackOrder
	}
	seen := map[string]bool{primary: true}
	for _, name := range fallbacks {
		if seen[name] {
			continue
		}
		seen[name] = true
		s.fallbacks = append(s.fallbacks, name)
	}
	return s
}

// NewFromConfig constructs every transport whose credentials are present.
// Missing credentials are logged and the provider is skipped.
func NewFromConfig(cfg config.EmailConfig, opts ...Option) *Selector {
	if cfg.SendTimeout > 0 {
		opts = append(opts, WithTimeout(cfg.SendTimeout))
	}
	s := New(cfg.Provider, cfg.FallbackProviders, nil, opts...)

	if cfg.User != "" && cfg.Pass != "" {
		s.add(NewGmailTransport(cfg.User, cfg.Pass, cfg.FromName))
	} else {
		s.logger.Warn("gmail transport disabled: EMAIL_USER/EMAIL_PASS not set")
	}
	if cfg.BrevoSMTPUser != "" && cfg.BrevoSMTPPass != "" {
		s.add(NewBrevoSMTPTransport(cfg.BrevoSMTPUser, cfg.BrevoSMTPPass, cfg.FromName, cfg.FromAddress))
	} else {
		s.logger.Warn("brevo-smtp transport disabled: BREVO_SMTP_USER/BREVO_SMTP_PASS not set")
	}
	if cfg.BrevoAPIKey != "" {
		s.add(NewBrevoAPITransport(cfg.BrevoAPIKey, cfg.FromName, cfg.FromAddress))
	} else {
		s.logger.Warn("brevo-api transport disabled: BREVO_API_KEY not set")
	}
	if cfg.BridgeURL != "" {
		s.add(NewBridgeTransport(cfg.BridgeURL, cfg.BridgeSecret, cfg.FromName, cfg.FromAddress))
	}
	return s
}

// add registers t before the selector is shared.
func (s *Selector) add(t Transport) {
	s.transports[t.Name()] = t
	s.state[t.Name()] = ReadinessPending
}

// HasLogo reports whether messages carry the inline logo.
func (s *Selector) HasLogo() bool { return s.logo != nil }

// Initialize verifies every transport in the background. Startup never
// waits on it.
func (s *Selector) Initialize(ctx context.Context) {
	if _, ok := s.transports[s.primary]; !ok {
		s.logger.Warnf("primary email provider %q is not configured", s.primary)
	}
	if len(s.transports) == 0 {
		s.logger.Error("no email transport configured, notifications will not be delivered")
		return
	}
	go s.Verify(ctx)
}

// Verify runs every handshake concurrently and returns the resulting states.
func (s *Selector) Verify(ctx context.Context) map[string]Readiness {
	var wg sync.WaitGroup
	for name, t := range s.transports {
		wg.Add(1)
		go func(name string, t Transport) {
			defer wg.Done()

			vctx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()

			err := t.Verify(vctx)
			state := ReadinessReady
			switch {
			case errors.Is(err, ErrVerifyUnsupported):
				state = ReadinessUnsupported
				s.logger.Infof("%s: ready (no handshake)", name)
			case err != nil:
				state = ReadinessFailed
				s.logger.Warnf("%s: verification failed: %v", name, err)
			default:
				s.logger.Infof("%s: verified and ready", name)
			}

			s.mu.Lock()
			s.state[name] = state
			s.mu.Unlock()
		}(name, t)
	}
	wg.Wait()
	return s.Readiness()
}

// Readiness returns a snapshot of transport states.
func (s *Selector) Readiness() map[string]Readiness {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]Readiness, len(s.state))
	for k, v := range s.state {
		out[k] = v
	}
	return out
}

// chain returns the transports to try, in order, at most two.
func (s *Selector) chain() []Transport {
	states := s.Readiness()

	var alts []Transport
	for _, name := range s.fallbacks {
		t, ok := s.transports[name]
		if !ok || states[name] == ReadinessFailed {
			continue
		}
		alts = append(alts, t)
	}

	primary, hasPrimary := s.transports[s.primary]
	if !hasPrimary {
		return limit(alts)
	}
	if states[s.primary].usable() {
		return limit(append([]Transport{primary}, alts...))
	}

	// Unverified primary: an HTTP alternative leads and the primary is skipped.
	for i, t := range alts {
		if !t.Kind().IsHTTP() {
			continue
		}
		rest := append([]Transport{t}, alts[:i]...)
		rest = append(rest, alts[i+1:]...)
		return limit(rest)
	}
	return limit(append([]Transport{primary}, alts...))
}

func limit(ts []Transport) []Transport {
	if len(ts) > maxAttempts {
		return ts[:maxAttempts]
	}
	return ts
}

// Send delivers an HTML message to one recipient.
func (s *Selector) Send(ctx context.Context, to, subject, html string) (*Receipt, error) {
	return s.Deliver(ctx, &Message{To: to, Subject: subject, HTML: html})
}

// Deliver tries the chain in order and returns the first receipt. When every
// attempt fails the error is a *DeliveryError.
func (s *Selector) Deliver(ctx context.Context, msg *Message) (*Receipt, error) {
	if s.logo != nil && len(msg.Inline) == 0 {
		withLogo := *msg
		withLogo.Inline = []InlineAsset{*s.logo}
		msg = &withLogo
	}

	chain := s.chain()
	derr := &DeliveryError{To: msg.To}
	if len(chain) == 0 {
		s.logger.Errorf("email to %s not sent: %v", msg.To, ErrNoTransport)
		return nil, derr
	}

	for i, t := range chain {
		if i > 0 {
			s.logger.Warnf("falling back to %s for %s", t.Name(), msg.To)
		}
		receipt, err := s.attempt(ctx, t, msg)
		if err == nil {
			return receipt, nil
		}
		derr.Attempts = append(derr.Attempts, AttemptError{Provider: t.Name(), Err: err})
	}

	s.logger.Errorf("all email delivery methods failed: %v", derr)
	return nil, derr
}

func (s *Selector) attempt(ctx context.Context, t Transport, msg *Message) (*Receipt, error) {
	actx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	s.logger.Infof("[%s] sending email to %s", t.Name(), msg.To)
	receipt, err := t.Send(actx, msg)
	if err == nil && receipt == nil {
		receipt = &Receipt{Provider: t.Name(), To: msg.To, SentAt: time.Now()}
	}

	entry := Attempt{
		Provider: t.Name(),
		Kind:     t.Kind(),
		To:       msg.To,
		Subject:  msg.Subject,
		Success:  err == nil,
		Duration: time.Since(start),
		At:       start,
	}
	if err != nil {
		entry.Error = err.Error()
		s.logger.Warnf("[%s] send to %s failed: %v", t.Name(), msg.To, err)
	} else {
		entry.MessageID = receipt.MessageID
		s.logger.Infof("[%s] email sent to %s: id=%s", t.Name(), msg.To, receipt.MessageID)
	}

	// recorded outside the attempt deadline
	lctx, lcancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer lcancel()
	if lerr := s.deliveryLog.Record(lctx, entry); lerr != nil {
		s.logger.Warnf("delivery log write failed: %v", lerr)
	}

	return receipt, err
}

// RecentAttempts exposes the delivery log.
func (s *Selector) RecentAttempts(ctx context.Context, limit int) ([]Attempt, error) {
	return s.deliveryLog.Recent(ctx, limit)
}
