package mailer

import (
	"bytes"
	"context"
	"errors"
	"net"
	"runtime"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMTPTransport_Constructors(t *testing.T) {
	g := NewGmailTransport("jv@gmail.com", "app-pass", "JV Overseas")
	assert.Equal(t, "gmail", g.Name())
	assert.Equal(t, KindSMTPSecure, g.Kind())
	assert.Equal(t, "smtp.gmail.com", g.host)
	assert.Equal(t, 465, g.port)
	assert.True(t, g.ssl)
	assert.Equal(t, DefaultSMTPTimeout, g.timeout)
	assert.Equal(t, "jv@gmail.com", g.fromAddress)

	b := NewBrevoSMTPTransport("login", "pass", "JV Overseas", "noreply@jvoverseas.com")
	assert.Equal(t, "brevo-smtp", b.Name())
	assert.Equal(t, KindSMTPRelay, b.Kind())
	assert.Equal(t, 587, b.port)
	assert.False(t, b.ssl)
	assert.False(t, b.Kind().IsHTTP())
}

func TestSMTPTransport_Build(t *testing.T) {
	tr := NewBrevoSMTPTransport("login", "pass", "JV Overseas", "noreply@jvoverseas.com")
	m, id := tr.build(&Message{
		To:      "student@example.com",
		Subject: "Your Admin Login OTP",
		HTML:    `<img src="cid:jv-logo"><p>123456</p>`,
		AltHTML: "<h2>JV Overseas</h2>",
		Inline:  []InlineAsset{{Name: "logo.png", ContentID: LogoContentID, ContentType: "image/png", Data: []byte("PNGDATA")}},
	})

	assert.Regexp(t, `^<[0-9a-f-]{36}@jvoverseas\.com>$`, id)
	assert.Equal(t, []string{"student@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{id}, m.GetHeader("Message-ID"))

	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	raw := buf.String()

	assert.Contains(t, raw, "Subject: Your Admin Login OTP")
	assert.Contains(t, raw, "Content-ID: <jv-logo>")
	assert.Contains(t, raw, "cid:jv-logo")
	assert.NotContains(t, raw, "<h2>JV Overseas</h2>")
}

func TestSMTPTransport_VerifyHonorsContext(t *testing.T) {
	// 192.0.2.0/24 is reserved for documentation and never answers.
	tr := NewSMTPTransport("test", KindSMTPRelay, "192.0.2.1", 2525, "u", "p", "n", "a@example.com")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := tr.Verify(ctx)
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second)
}

// silentServer accepts connections and never sends the SMTP greeting.
func silentServer(t *testing.T) (string, int) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	var (
		mu    sync.Mutex
		conns []net.Conn
	)
	go func() {
		for {
			c, err := ln.Accept()
			if err != nil {
				return
			}
			mu.Lock()
			conns = append(conns, c)
			mu.Unlock()
		}
	}()
	t.Cleanup(func() {
		ln.Close()
		mu.Lock()
		defer mu.Unlock()
		for _, c := range conns {
			c.Close()
		}
	})

	host, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	p, err := strconv.Atoi(port)
	require.NoError(t, err)
	return host, p
}

func TestSMTPTransport_SilentServerDoesNotLeak(t *testing.T) {
	host, port := silentServer(t)
	tr := NewSMTPTransport("silent", KindSMTPRelay, host, port, "", "", "JV Overseas", "noreply@jvoverseas.com")
	msg := &Message{To: "student@example.com", Subject: "Hi", HTML: "<p>hi</p>"}

	before := runtime.NumGoroutine()
	for i := 0; i < 5; i++ {
		ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		start := time.Now()
		_, err := tr.Send(ctx, msg)
		cancel()
		require.Error(t, err)
		assert.Less(t, time.Since(start), 2*time.Second)
	}

	assert.Eventually(t, func() bool { return runtime.NumGoroutine() <= before }, 2*time.Second, 20*time.Millisecond)
}

func TestSMTPTransport_TimeoutBoundsSession(t *testing.T) {
	host, port := silentServer(t)
	tr := NewSMTPTransport("silent", KindSMTPRelay, host, port, "", "", "JV Overseas", "noreply@jvoverseas.com")
	tr.timeout = 200 * time.Millisecond

	start := time.Now()
	err := tr.Verify(context.Background())
	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestDomainOf(t *testing.T) {
	assert.Equal(t, "jvoverseas.com", domainOf("noreply@jvoverseas.com"))
	assert.Equal(t, "localhost", domainOf("no-at-sign"))
	assert.Equal(t, "localhost", domainOf("trailing@"))
}

func TestDeliveryError(t *testing.T) {
	down := errors.New("down")
	err := &DeliveryError{To: "a@example.com", Attempts: []AttemptError{{Provider: "gmail", Err: down}}}

	assert.ErrorIs(t, err, down)
	assert.NotErrorIs(t, err, ErrNoTransport)
	assert.Equal(t, "email delivery to a@example.com failed: gmail: down", err.Error())

	empty := &DeliveryError{To: "a@example.com"}
	assert.ErrorIs(t, empty, ErrNoTransport)
	assert.Contains(t, empty.Error(), ErrNoTransport.Error())
}
