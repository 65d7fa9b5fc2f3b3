package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/jvoverseas/intake_backend/models"
	"github.com/jvoverseas/intake_backend/services/chatbot"
	"github.com/jvoverseas/intake_backend/services/eligibility"
	"github.com/jvoverseas/intake_backend/utils"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// LeadStore is the lead persistence used by the public endpoints.
type LeadStore interface {
	Create(ctx context.Context, lead *models.Lead) error
	FindOrCreateByEmail(ctx context.Context, candidate *models.Lead) (*models.Lead, bool, error)
}

type EligibilityStore interface {
	Create(ctx context.Context, record *models.EligibilityRecord) error
}

// Notifier queues customer emails. Calls return immediately.
type Notifier interface {
	SendEligibilityResult(to, name string, isEligible bool, estimatedRange string)
	SendEnquiryConfirmation(to, name, enquiryType string, details map[string]string)
}

// LeadFeed receives every newly created lead.
type LeadFeed interface {
	BroadcastLead(lead *models.Lead)
}

type ChatResponder interface {
	Respond(message string) chatbot.Reply
}

const (
	msgEnquirySaved     = "Enquiry submitted successfully"
	msgEnquiryFailed    = "Failed to save enquiry. Please try again or contact support."
	msgStudentRequired  = "Student details (name, email, phone) are required"
	msgChatReceived     = "Message received. Agent will contact you."
	msgComprehensiveYes = "Based on your profile and submitted details, you are eligible for an education loan ranging between " + eligibility.ComprehensiveRange + "."
	msgComprehensiveNo  = "We have received your details. Our senior loan advisor will contact you to discuss special cases for your eligibility."
	msgSimpleYes        = "Based on your profile, you may be eligible for an education loan of " + eligibility.SimpleRange + ", with a maximum possibility up to ₹50 Lakhs, subject to bank approval."
	msgSimpleNo         = "Based on preliminary checks, we need more info to determine your exact eligibility. Our counselors will contact you to discuss options."
	heroTitle           = "Welcome to Our Services"
)

type PublicController struct {
	leads    LeadStore
	records  EligibilityStore
	notifier Notifier
	feed     LeadFeed
	chat     ChatResponder
	devMode  bool
	logger   *log.Logger
}

// NewPublicController wires the public endpoints. feed may be nil.
func NewPublicController(leads LeadStore, records EligibilityStore, notifier Notifier, feed LeadFeed, chat ChatResponder, devMode bool) *PublicController {
	return &PublicController{
		leads:    leads,
		records:  records,
		notifier: notifier,
		feed:     feed,
		chat:     chat,
		devMode:  devMode,
		logger:   log.New("public"),
	}
}

func (pc *PublicController) announce(lead *models.Lead) {
	if pc.feed != nil {
		pc.feed.BroadcastLead(lead)
	}
}

func (pc *PublicController) serverError(c echo.Context, message string, err error) error {
	pc.logger.Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
	resp := models.ErrorResponse{Success: false, Message: message, Error: "Server error"}
	if pc.devMode {
		resp.Error = err.Error()
	}
	return c.JSON(http.StatusInternalServerError, resp)
}

// Intake stores a website enquiry as a new lead and queues the confirmation email.
func (pc *PublicController) Intake(c echo.Context) error {
	var req models.IntakeRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	email := utils.NormalizeEmail(req.Email)
	university := utils.StringValue(req.Details, "university")
	country := utils.StringValue(req.Details, "preferredCountry")
	if country == "" {
		country = utils.StringValue(req.Details, "country")
	}

	pc.logger.Infof("Processing new enquiry from %s - Type: %s", email, req.ServiceType)

	lead := &models.Lead{
		Name:             utils.SanitizeInput(req.Name),
		Phone:            utils.SanitizeInput(req.Phone),
		Email:            email,
		ServiceType:      utils.SanitizeInput(req.ServiceType),
		Source:           models.LeadSourceWebsite,
		Status:           models.LeadStatusReceived,
		Details:          req.Details,
		University:       university,
		PreferredCountry: country,
	}

	if err := pc.leads.Create(c.Request().Context(), lead); err != nil {
		return pc.serverError(c, msgEnquiryFailed, err)
	}
	pc.logger.Infof("Lead saved - ID: %s, Email: %s", lead.ID.Hex(), email)
	pc.announce(lead)

	enquiryType := lead.ServiceType
	if enquiryType == "" {
		enquiryType = "General Enquiry"
	}
	pc.notifier.SendEnquiryConfirmation(email, lead.Name, enquiryType, enquiryEmailDetails(req.Details, university, country))

	return c.JSON(http.StatusOK, models.IntakeResponse{
		Success: true,
		Message: msgEnquirySaved,
		LeadID:  lead.ID.Hex(),
		Data:    lead,
	})
}

func enquiryEmailDetails(details map[string]interface{}, university, country string) map[string]string {
	out := map[string]string{}
	if university != "" {
		out["university"] = university
	}
	if country != "" {
		out["preferredCountry"] = country
	}
	if course := utils.StringValue(details, "course"); course != "" {
		out["course"] = course
	}
	month := utils.StringValue(details, "intakeMonth")
	year := utils.StringValue(details, "intakeYear")
	if month != "" && year != "" {
		out["intake"] = month + " " + year
	}
	return out
}

// findOrCreateLead dedupes eligibility submissions by email.
func (pc *PublicController) findOrCreateLead(ctx context.Context, candidate *models.Lead) (*models.Lead, error) {
	lead, created, err := pc.leads.FindOrCreateByEmail(ctx, candidate)
	if err != nil {
		return nil, err
	}
	if created {
		pc.announce(lead)
	}
	return lead, nil
}

// CheckEligibility runs the quick income and credit score check.
func (pc *PublicController) CheckEligibility(c echo.Context) error {
	var req models.EligibilityCheckRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	income, _ := req.Income.Float64()
	score, _ := req.CibilScore.Float64()
	email := utils.NormalizeEmail(req.Email)
	name := utils.SanitizeInput(req.Name)
	phone := utils.SanitizeInput(req.Phone)

	serviceType := utils.SanitizeInput(req.ServiceType)
	if serviceType == "" {
		serviceType = "Loan"
	}

	ctx := c.Request().Context()
	lead, err := pc.findOrCreateLead(ctx, &models.Lead{
		Name:        name,
		Phone:       phone,
		Email:       email,
		ServiceType: serviceType,
		Source:      models.LeadSourceEligibility,
		Status:      models.LeadStatusReceived,
	})
	if err != nil {
		return pc.serverError(c, "Server Error", err)
	}

	res := eligibility.Simple(income, score)

	record := &models.EligibilityRecord{
		LeadID:         lead.ID,
		StudentDetails: models.StudentDetails{FullName: name, MobileNumber: phone, EmailID: email},
		Analysis: models.Analysis{
			IsEligible:        res.IsEligible,
			MaxEligibleAmount: res.MaxEligibleAmount,
			SuggestedBanks:    res.SuggestedBanks,
			Status:            models.AnalysisPending,
		},
	}
	if err := pc.records.Create(ctx, record); err != nil {
		return pc.serverError(c, "Server Error", err)
	}

	pc.notifier.SendEligibilityResult(email, name, res.IsEligible, res.DisplayRange)

	if res.IsEligible {
		return c.JSON(http.StatusOK, models.EligibilityCheckResponse{Eligible: true, Message: msgSimpleYes})
	}
	return c.JSON(http.StatusOK, models.EligibilityCheckResponse{Eligible: false, Message: msgSimpleNo})
}

// ComprehensiveEligibility evaluates the multi-step form and stores a
// masked copy of the application.
func (pc *PublicController) ComprehensiveEligibility(c echo.Context) error {
	var req models.ComprehensiveEligibilityRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	sd := req.StudentDetails
	sd.FullName = utils.SanitizeInput(sd.FullName)
	sd.MobileNumber = utils.SanitizeInput(sd.MobileNumber)
	sd.EmailID = utils.NormalizeEmail(sd.EmailID)
	if sd.FullName == "" || sd.EmailID == "" || sd.MobileNumber == "" {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Success: false, Message: msgStudentRequired})
	}

	ctx := c.Request().Context()
	lead, err := pc.findOrCreateLead(ctx, &models.Lead{
		Name:        sd.FullName,
		Phone:       sd.MobileNumber,
		Email:       sd.EmailID,
		ServiceType: "Loan",
		Source:      models.LeadSourceEligibility,
		Status:      models.LeadStatusReceived,
	})
	if err != nil {
		return pc.serverError(c, "Server Error", err)
	}

	res := eligibility.Comprehensive(eligibility.Input{
		MonthlyIncome:   req.CoApplicant.MonthlyIncome.Float(),
		CollateralValue: req.Collateral.MarketValue.Float(),
		RequestedAmount: req.LoanRequirement.RequiredAmount.Float(),
		PreferredType:   req.LoanRequirement.PreferredType,
	})

	sd.AadhaarNumber = eligibility.MaskID(sd.AadhaarNumber)
	sd.PanNumber = eligibility.MaskID(sd.PanNumber)

	record := &models.EligibilityRecord{
		LeadID:          lead.ID,
		StudentDetails:  sd,
		Academics:       &req.Academics,
		CourseDetails:   &req.CourseDetails,
		TestScores:      &req.TestScores,
		LoanRequirement: &req.LoanRequirement,
		CoApplicant:     &req.CoApplicant,
		Collateral:      &req.Collateral,
		AdditionalInfo:  &req.AdditionalInfo,
		Analysis: models.Analysis{
			IsEligible:          res.IsEligible,
			MaxEligibleAmount:   res.MaxEligibleAmount,
			RecommendedLoanType: res.RecommendedLoanType,
			SuggestedBanks:      res.SuggestedBanks,
			Status:              models.AnalysisPending,
		},
	}
	if err := pc.records.Create(ctx, record); err != nil {
		return pc.serverError(c, "Server Error", err)
	}

	pc.notifier.SendEligibilityResult(sd.EmailID, sd.FullName, res.IsEligible, res.DisplayRange)

	msg := msgComprehensiveNo
	if res.IsEligible {
		msg = msgComprehensiveYes
	}
	return c.JSON(http.StatusOK, models.ComprehensiveEligibilityResponse{
		Success:             true,
		IsEligible:          res.IsEligible,
		MaxEligibleAmount:   res.MaxEligibleAmount,
		RecommendedLoanType: res.RecommendedLoanType,
		SuggestedBanks:      res.SuggestedBanks,
		Message:             msg,
	})
}

// ChatMessage saves a chat widget contact as a warm lead.
func (pc *PublicController) ChatMessage(c echo.Context) error {
	var req models.ChatMessageRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}

	lead := &models.Lead{
		Name:        utils.SanitizeInput(req.Name),
		Phone:       utils.SanitizeInput(req.Phone),
		Email:       utils.NormalizeEmail(req.Email),
		ServiceType: "General Inquiry",
		Source:      models.LeadSourceChat,
		Status:      models.LeadStatusReceived,
		Details:     map[string]interface{}{"initialMessage": utils.SanitizeInput(req.Message)},
	}
	if err := pc.leads.Create(c.Request().Context(), lead); err != nil {
		return pc.serverError(c, "Server Error", err)
	}
	pc.announce(lead)

	return c.JSON(http.StatusOK, models.MessageResponse{Msg: msgChatReceived})
}

// ChatConversation answers the site chatbot.
func (pc *PublicController) ChatConversation(c echo.Context) error {
	var req models.ChatConversationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ChatConversationResponse{
			Reply:       chatbot.ErrorReply,
			Suggestions: chatbot.ErrorSuggestions,
		})
	}

	if strings.TrimSpace(req.Message) == "" {
		return c.JSON(http.StatusBadRequest, models.ChatConversationResponse{
			Reply:       chatbot.EmptyPrompt,
			Suggestions: []string{},
		})
	}

	r := pc.chat.Respond(req.Message)
	return c.JSON(http.StatusOK, models.ChatConversationResponse{
		Reply:       r.Reply,
		MatchFound:  r.MatchFound,
		Score:       r.Score,
		Suggestions: r.Suggestions,
	})
}

// GetContent serves the landing page placeholder.
func (pc *PublicController) GetContent(c echo.Context) error {
	return c.JSON(http.StatusOK, models.ContentResponse{HeroTitle: heroTitle, News: []interface{}{}})
}
