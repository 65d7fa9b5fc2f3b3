package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/jvoverseas/intake_backend/models"
	"github.com/jvoverseas/intake_backend/services/adminauth"
	"github.com/jvoverseas/intake_backend/services/chatbot"
	"github.com/jvoverseas/intake_backend/services/mailer"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// leadStoreMock is function-backed; nil funcs succeed and assign an id.
type leadStoreMock struct {
	CreateFn       func(ctx context.Context, lead *models.Lead) error
	FindOrCreateFn func(ctx context.Context, candidate *models.Lead) (*models.Lead, bool, error)
	ListFn         func(ctx context.Context) ([]models.Lead, error)

	created []*models.Lead
}

func (m *leadStoreMock) Create(ctx context.Context, lead *models.Lead) error {
	if m.CreateFn != nil {
		if err := m.CreateFn(ctx, lead); err != nil {
			return err
		}
	}
	lead.ID = primitive.NewObjectID()
	m.created = append(m.created, lead)
	return nil
}

func (m *leadStoreMock) FindOrCreateByEmail(ctx context.Context, candidate *models.Lead) (*models.Lead, bool, error) {
	if m.FindOrCreateFn != nil {
		return m.FindOrCreateFn(ctx, candidate)
	}
	candidate.ID = primitive.NewObjectID()
	return candidate, true, nil
}

func (m *leadStoreMock) List(ctx context.Context) ([]models.Lead, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return []models.Lead{}, nil
}

type recordStoreMock struct {
	CreateFn func(ctx context.Context, record *models.EligibilityRecord) error
	records  []*models.EligibilityRecord
}

func (m *recordStoreMock) Create(ctx context.Context, record *models.EligibilityRecord) error {
	if m.CreateFn != nil {
		if err := m.CreateFn(ctx, record); err != nil {
			return err
		}
	}
	m.records = append(m.records, record)
	return nil
}

type eligibilityMail struct {
	to, name     string
	eligible     bool
	displayRange string
}

type enquiryMail struct {
	to, name, enquiryType string
	details               map[string]string
}

type notifierMock struct {
	mu          sync.Mutex
	eligibility []eligibilityMail
	enquiries   []enquiryMail
}

func (m *notifierMock) SendEligibilityResult(to, name string, isEligible bool, estimatedRange string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eligibility = append(m.eligibility, eligibilityMail{to, name, isEligible, estimatedRange})
}

func (m *notifierMock) SendEnquiryConfirmation(to, name, enquiryType string, details map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enquiries = append(m.enquiries, enquiryMail{to, name, enquiryType, details})
}

type feedMock struct {
	leads []*models.Lead
}

func (m *feedMock) BroadcastLead(lead *models.Lead) { m.leads = append(m.leads, lead) }

type responderFunc func(message string) chatbot.Reply

func (f responderFunc) Respond(message string) chatbot.Reply { return f(message) }

type authMock struct {
	LoginFn     func(ctx context.Context, email, password string) error
	VerifyOTPFn func(ctx context.Context, email, code string) (*adminauth.Session, error)
}

func (m *authMock) Login(ctx context.Context, email, password string) error {
	if m.LoginFn != nil {
		return m.LoginFn(ctx, email, password)
	}
	return nil
}

func (m *authMock) VerifyOTP(ctx context.Context, email, code string) (*adminauth.Session, error) {
	if m.VerifyOTPFn != nil {
		return m.VerifyOTPFn(ctx, email, code)
	}
	return &adminauth.Session{Token: "token"}, nil
}

type historyFunc func(ctx context.Context, limit int) ([]mailer.Attempt, error)

func (f historyFunc) RecentAttempts(ctx context.Context, limit int) ([]mailer.Attempt, error) {
	return f(ctx, limit)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func call(t *testing.T, h echo.HandlerFunc, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := newTestEcho()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h(c))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func fieldMessages(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body models.ValidationErrorResponse
	decode(t, rec, &body)
	out := make(map[string]string, len(body.Errors))
	for _, e := range body.Errors {
		out[e.Field] = e.Message
	}
	return out
}
