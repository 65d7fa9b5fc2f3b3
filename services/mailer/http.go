package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BrevoAPIEndpoint is the transactional email endpoint.
const BrevoAPIEndpoint = "https://api.brevo.com/v3/smtp/email"

const httpTimeout = 15 * time.Second

type brevoAddress struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type brevoPayload struct {
	Sender      brevoAddress   `json:"sender"`
	To          []brevoAddress `json:"to"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
}

// BrevoAPITransport posts to the Brevo transactional API. It has no
// handshake and cannot embed inline images.
type BrevoAPITransport struct {
	apiKey      string
	endpoint    string
	fromName    string
	fromAddress string
	client      *http.Client
}

func NewBrevoAPITransport(apiKey, fromName, fromAddress string) *BrevoAPITransport {
	return &BrevoAPITransport{
		apiKey:      apiKey,
		endpoint:    BrevoAPIEndpoint,
		fromName:    fromName,
		fromAddress: fromAddress,
		client:      &http.Client{Timeout: httpTimeout},
	}
}

// WithEndpoint overrides the API URL.
func (t *BrevoAPITransport) WithEndpoint(url string) *BrevoAPITransport {
	t.endpoint = url
	return t
}

func (t *BrevoAPITransport) Name() string { return "brevo-api" }
func (t *BrevoAPITransport) Kind() Kind   { return KindHTTPAPI }

func (t *BrevoAPITransport) Verify(context.Context) error { return ErrVerifyUnsupported }

func (t *BrevoAPITransport) Send(ctx context.Context, msg *Message) (*Receipt, error) {
	payload := brevoPayload{
		Sender:      brevoAddress{Name: t.fromName, Email: t.fromAddress},
		To:          []brevoAddress{{Email: msg.To}},
		Subject:     msg.Subject,
		HTMLContent: msg.BodyFor(false),
	}

	var out struct {
		MessageID string `json:"messageId"`
	}
	headers := map[string]string{
		"accept":  "application/json",
		"api-key": t.apiKey,
	}
	if err := postJSON(ctx, t.client, t.endpoint, headers, payload, &out); err != nil {
		return nil, err
	}
	return &Receipt{Provider: t.Name(), MessageID: out.MessageID, To: msg.To, SentAt: time.Now()}, nil
}

type bridgePayload struct {
	To          string `json:"to"`
	Subject     string `json:"subject"`
	HTML        string `json:"html"`
	FromName    string `json:"fromName"`
	FromAddress string `json:"fromAddress"`
}

// BridgeTransport forwards the message to a relay service that owns the
// actual SMTP connection. Useful where outbound SMTP ports are blocked.
type BridgeTransport struct {
	url         string
	secret      string
	fromName    string
	fromAddress string
	client      *http.Client
}

func NewBridgeTransport(url, secret, fromName, fromAddress string) *BridgeTransport {
	return &BridgeTransport{
		url:         url,
		secret:      secret,
		fromName:    fromName,
		fromAddress: fromAddress,
		client:      &http.Client{Timeout: httpTimeout},
	}
}

func (t *BridgeTransport) Name() string { return "bridge" }
func (t *BridgeTransport) Kind() Kind   { return KindHTTPBridge }

func (t *BridgeTransport) Verify(context.Context) error { return ErrVerifyUnsupported }

func (t *BridgeTransport) Send(ctx context.Context, msg *Message) (*Receipt, error) {
	payload := bridgePayload{
		To:          msg.To,
		Subject:     msg.Subject,
		HTML:        msg.BodyFor(false),
		FromName:    t.fromName,
		FromAddress: t.fromAddress,
	}

	headers := map[string]string{}
	if t.secret != "" {
		headers["Authorization"] = "Bearer " + t.secret
	}

	var out struct {
		MessageID string `json:"messageId"`
	}
	if err := postJSON(ctx, t.client, t.url, headers, payload, &out); err != nil {
		return nil, err
	}
	if out.MessageID == "" {
		out.MessageID = uuid.NewString()
	}
	return &Receipt{Provider: t.Name(), MessageID: out.MessageID, To: msg.To, SentAt: time.Now()}, nil
}

// postJSON sends body as JSON and decodes a 2xx response into out. An
// empty or non-JSON success body is not an error.
func postJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, body, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode >= 300 {
		return fmt.Errorf("http send failed: %s body=%s", resp.Status, strings.TrimSpace(string(respBody)))
	}
	if out != nil && len(bytes.TrimSpace(respBody)) > 0 {
		_ = json.Unmarshal(respBody, out)
	}
	return nil
}
