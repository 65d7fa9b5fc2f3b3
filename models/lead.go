package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lead sources
const (
	LeadSourceWebsite     = "website"
	LeadSourceChat        = "chat"
	LeadSourceEligibility = "eligibility"
)

// Lead statuses, in lifecycle order. LeadStatusNew is the legacy
// received value still present on older documents.
const (
	LeadStatusReceived  = "ENQUIRY_RECEIVED"
	LeadStatusContacted = "contacted"
	LeadStatusQualified = "qualified"
	LeadStatusClosed    = "closed"
	LeadStatusNew       = "new"
)

type Lead struct {
	ID               primitive.ObjectID     `json:"_id,omitempty" bson:"_id,omitempty"`
	Name             string                 `json:"name" bson:"name"`
	Phone            string                 `json:"phone" bson:"phone"`
	Email            string                 `json:"email" bson:"email"`
	ServiceType      string                 `json:"serviceType" bson:"serviceType"`
	Source           string                 `json:"source" bson:"source"`
	Status           string                 `json:"status" bson:"status"`
	Details          map[string]interface{} `json:"details,omitempty" bson:"details,omitempty"`
	University       string                 `json:"university,omitempty" bson:"university,omitempty"`
	PreferredCountry string                 `json:"preferredCountry,omitempty" bson:"preferredCountry,omitempty"`
	CreatedAt        time.Time              `json:"createdAt" bson:"createdAt"`
}

// IsReceived treats the legacy "new" status as received.
func (l *Lead) IsReceived() bool {
	return l.Status == LeadStatusReceived || l.Status == LeadStatusNew
}

// IntakeRequest is the website enquiry form.
type IntakeRequest struct {
	Name        string                 `json:"name" validate:"required"`
	Phone       string                 `json:"phone" validate:"required"`
	Email       string                 `json:"email" validate:"required,email"`
	ServiceType string                 `json:"serviceType" validate:"required"`
	Details     map[string]interface{} `json:"details"`
}

// IntakeResponse is returned after an enquiry has been stored.
type IntakeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	LeadID  string `json:"leadId"`
	Data    *Lead  `json:"data"`
}

// ChatMessageRequest captures a chat widget contact as a lead.
type ChatMessageRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message"`
}

type ChatConversationRequest struct {
	Message string `json:"message"`
}

type ChatConversationResponse struct {
	Reply       string   `json:"reply"`
	MatchFound  bool     `json:"matchFound"`
	Score       int      `json:"score"`
	Suggestions []string `json:"suggestions"`
}

type ContentResponse struct {
	HeroTitle string        `json:"heroTitle"`
	News      []interface{} `json:"news"`
}
