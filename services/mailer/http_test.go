package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrevoAPITransport_Send(t *testing.T) {
	var got brevoPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "secret-key", r.Header.Get("api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"messageId":"<202410.abc@smtp-relay.mailin.fr>"}`))
	}))
	defer srv.Close()

	tr := NewBrevoAPITransport("secret-key", "JV Overseas", "noreply@jvoverseas.com").WithEndpoint(srv.URL)
	receipt, err := tr.Send(context.Background(), &Message{
		To:      "student@example.com",
		Subject: "Hello",
		HTML:    `<img src="cid:jv-logo">`,
		AltHTML: "<h2>JV Overseas</h2>",
		Inline:  []InlineAsset{{Name: "logo.png", ContentID: LogoContentID}},
	})
	require.NoError(t, err)

	assert.Equal(t, "brevo-api", receipt.Provider)
	assert.Equal(t, "<202410.abc@smtp-relay.mailin.fr>", receipt.MessageID)
	assert.Equal(t, "JV Overseas", got.Sender.Name)
	assert.Equal(t, "noreply@jvoverseas.com", got.Sender.Email)
	require.Len(t, got.To, 1)
	assert.Equal(t, "student@example.com", got.To[0].Email)
	assert.Equal(t, "Hello", got.Subject)
	assert.Equal(t, "<h2>JV Overseas</h2>", got.HTMLContent)
}

func TestBrevoAPITransport_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code":"unauthorized","message":"Key not found"}`))
	}))
	defer srv.Close()

	tr := NewBrevoAPITransport("bad", "JV Overseas", "noreply@jvoverseas.com").WithEndpoint(srv.URL)
	_, err := tr.Send(context.Background(), &Message{To: "a@example.com", Subject: "s", HTML: "h"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "Key not found")
}

func TestBrevoAPITransport_VerifyUnsupported(t *testing.T) {
	tr := NewBrevoAPITransport("k", "n", "a@example.com")
	assert.ErrorIs(t, tr.Verify(context.Background()), ErrVerifyUnsupported)
	assert.Equal(t, KindHTTPAPI, tr.Kind())
	assert.True(t, tr.Kind().IsHTTP())
}

func TestBridgeTransport_Send(t *testing.T) {
	var got bridgePayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer bridge-secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	tr := NewBridgeTransport(srv.URL, "bridge-secret", "JV Overseas", "noreply@jvoverseas.com")
	receipt, err := tr.Send(context.Background(), &Message{To: "student@example.com", Subject: "Hi", HTML: "<p>x</p>"})
	require.NoError(t, err)

	assert.Equal(t, "bridge", receipt.Provider)
	assert.NotEmpty(t, receipt.MessageID)
	assert.Equal(t, "student@example.com", got.To)
	assert.Equal(t, "<p>x</p>", got.HTML)
	assert.Equal(t, "JV Overseas", got.FromName)
}

func TestBridgeTransport_NoSecretHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"messageId":"bridge-42"}`))
	}))
	defer srv.Close()

	tr := NewBridgeTransport(srv.URL, "", "JV Overseas", "noreply@jvoverseas.com")
	receipt, err := tr.Send(context.Background(), &Message{To: "a@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "bridge-42", receipt.MessageID)
}

func TestBridgeTransport_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "smtp upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	tr := NewBridgeTransport(srv.URL, "", "n", "a@example.com")
	_, err := tr.Send(context.Background(), &Message{To: "a@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp upstream down")
}

func TestBridgeTransport_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tr := NewBridgeTransport(srv.URL, "", "n", "a@example.com")
	_, err := tr.Send(ctx, &Message{To: "a@example.com"})
	assert.ErrorIs(t, err, context.Canceled)
}
