package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Analysis review states
const (
	AnalysisPending  = "PENDING"
	AnalysisReviewed = "REVIEWED"
	AnalysisApproved = "APPROVED"
	AnalysisRejected = "REJECTED"
)

// Amount is a lenient numeric field. Forms post numbers, numeric strings or
// empty strings; anything that is not a finite number decodes to 0.
type Amount float64

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*a = 0
		return nil
	}

	raw := string(b)
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*a = 0
			return nil
		}
		raw = strings.TrimSpace(s)
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		*a = 0
		return nil
	}
	*a = Amount(f)
	return nil
}

func (a Amount) Float() float64 { return float64(a) }

type StudentDetails struct {
	FullName       string `json:"fullName" bson:"fullName"`
	DOB            string `json:"dob,omitempty" bson:"dob,omitempty"`
	MobileNumber   string `json:"mobileNumber,omitempty" bson:"mobileNumber,omitempty"`
	EmailID        string `json:"emailId,omitempty" bson:"emailId,omitempty" validate:"omitempty,email"`
	CurrentAddress string `json:"currentAddress,omitempty" bson:"currentAddress,omitempty"`
	AadhaarNumber  string `json:"aadhaarNumber,omitempty" bson:"aadhaarNumber,omitempty"`
	PanNumber      string `json:"panNumber,omitempty" bson:"panNumber,omitempty"`
	PassportNumber string `json:"passportNumber,omitempty" bson:"passportNumber,omitempty"`
}

type AcademicScore struct {
	Board       string `json:"board,omitempty" bson:"board,omitempty"`
	University  string `json:"university,omitempty" bson:"university,omitempty"`
	PassingYear string `json:"passingYear,omitempty" bson:"passingYear,omitempty"`
	Percentage  string `json:"percentage,omitempty" bson:"percentage,omitempty"`
}

type Academics struct {
	Tenth      AcademicScore `json:"tenth" bson:"tenth"`
	Twelfth    AcademicScore `json:"twelfth" bson:"twelfth"`
	Graduation AcademicScore `json:"graduation" bson:"graduation"`
	Backlogs   string        `json:"backlogs,omitempty" bson:"backlogs,omitempty" validate:"omitempty,oneof=Yes No"`
	GapYears   string        `json:"gapYears,omitempty" bson:"gapYears,omitempty"`
}

type CourseDetails struct {
	Country        string `json:"country,omitempty" bson:"country,omitempty"`
	UniversityName string `json:"universityName,omitempty" bson:"universityName,omitempty"`
	CourseName     string `json:"courseName,omitempty" bson:"courseName,omitempty"`
	Duration       string `json:"duration,omitempty" bson:"duration,omitempty"`
	IntakeMonth    string `json:"intakeMonth,omitempty" bson:"intakeMonth,omitempty" validate:"omitempty,oneof=Jan May Sep"`
	IntakeYear     string `json:"intakeYear,omitempty" bson:"intakeYear,omitempty"`
	OfferLetter    string `json:"offerLetter,omitempty" bson:"offerLetter,omitempty" validate:"omitempty,oneof=Yes No"`
}

type TestScores struct {
	EnglishTest   string `json:"englishTest,omitempty" bson:"englishTest,omitempty"`
	EnglishScore  string `json:"englishScore,omitempty" bson:"englishScore,omitempty"`
	EntranceTest  string `json:"entranceTest,omitempty" bson:"entranceTest,omitempty"`
	EntranceScore string `json:"entranceScore,omitempty" bson:"entranceScore,omitempty"`
	TestWaiver    string `json:"testWaiver,omitempty" bson:"testWaiver,omitempty" validate:"omitempty,oneof=Yes No"`
}

type LoanRequirement struct {
	TotalCost        Amount `json:"totalCost" bson:"totalCost"`
	RequiredAmount   Amount `json:"requiredAmount" bson:"requiredAmount"`
	SelfContribution Amount `json:"selfContribution" bson:"selfContribution"`
	PreferredType    string `json:"preferredType,omitempty" bson:"preferredType,omitempty" validate:"omitempty,oneof=Secured Unsecured"`
}

type CoApplicant struct {
	FullName             string `json:"fullName,omitempty" bson:"fullName,omitempty"`
	Relationship         string `json:"relationship,omitempty" bson:"relationship,omitempty"`
	Occupation           string `json:"occupation,omitempty" bson:"occupation,omitempty" validate:"omitempty,oneof=Salaried Business Self-Employed"`
	MonthlyIncome        Amount `json:"monthlyIncome" bson:"monthlyIncome"`
	MobileNumber         string `json:"mobileNumber,omitempty" bson:"mobileNumber,omitempty"`
	PanAadhaarAvailable  string `json:"panAadhaarAvailable,omitempty" bson:"panAadhaarAvailable,omitempty" validate:"omitempty,oneof=Yes No"`
	BankAccountAvailable string `json:"bankAccountAvailable,omitempty" bson:"bankAccountAvailable,omitempty" validate:"omitempty,oneof=Yes No"`
	ExistingLoans        string `json:"existingLoans,omitempty" bson:"existingLoans,omitempty"`
}

// Collateral is only meaningful for secured loans. Type is House, Flat, Plot or FD.
type Collateral struct {
	Type        string `json:"type,omitempty" bson:"type,omitempty"`
	Location    string `json:"location,omitempty" bson:"location,omitempty"`
	MarketValue Amount `json:"marketValue" bson:"marketValue"`
	Ownership   string `json:"ownership,omitempty" bson:"ownership,omitempty"`
}

type AdditionalInfo struct {
	VisaApplied       string `json:"visaApplied,omitempty" bson:"visaApplied,omitempty" validate:"omitempty,oneof=Yes No"`
	PreviousRejection string `json:"previousRejection,omitempty" bson:"previousRejection,omitempty" validate:"omitempty,oneof=Yes No"`
	PreferredBank     string `json:"preferredBank,omitempty" bson:"preferredBank,omitempty"`
}

type Analysis struct {
	IsEligible          bool     `json:"isEligible" bson:"isEligible"`
	MaxEligibleAmount   float64  `json:"maxEligibleAmount" bson:"maxEligibleAmount"`
	RecommendedLoanType string   `json:"recommendedLoanType,omitempty" bson:"recommendedLoanType,omitempty"`
	SuggestedBanks      []string `json:"suggestedBanks" bson:"suggestedBanks"`
	Status              string   `json:"status" bson:"status"`
}

// EligibilityRecord is a detailed application snapshot. LeadID references
// a Lead without owning it.
type EligibilityRecord struct {
	ID              primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	LeadID          primitive.ObjectID `json:"leadId" bson:"leadId"`
	StudentDetails  StudentDetails     `json:"studentDetails" bson:"studentDetails"`
	Academics       *Academics         `json:"academics,omitempty" bson:"academics,omitempty"`
	CourseDetails   *CourseDetails     `json:"courseDetails,omitempty" bson:"courseDetails,omitempty"`
	TestScores      *TestScores        `json:"testScores,omitempty" bson:"testScores,omitempty"`
	LoanRequirement *LoanRequirement   `json:"loanRequirement,omitempty" bson:"loanRequirement,omitempty"`
	CoApplicant     *CoApplicant       `json:"coApplicant,omitempty" bson:"coApplicant,omitempty"`
	Collateral      *Collateral        `json:"collateral,omitempty" bson:"collateral,omitempty"`
	AdditionalInfo  *AdditionalInfo    `json:"additionalInfo,omitempty" bson:"additionalInfo,omitempty"`
	Analysis        Analysis           `json:"analysis" bson:"analysis"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
}

// ComprehensiveEligibilityRequest is the multi-step eligibility form.
type ComprehensiveEligibilityRequest struct {
	StudentDetails  StudentDetails  `json:"studentDetails"`
	Academics       Academics       `json:"academics"`
	CourseDetails   CourseDetails   `json:"courseDetails"`
	TestScores      TestScores      `json:"testScores"`
	LoanRequirement LoanRequirement `json:"loanRequirement"`
	CoApplicant     CoApplicant     `json:"coApplicant"`
	Collateral      Collateral      `json:"collateral"`
	AdditionalInfo  AdditionalInfo  `json:"additionalInfo"`
}

type ComprehensiveEligibilityResponse struct {
	Success             bool     `json:"success"`
	IsEligible          bool     `json:"isEligible"`
	MaxEligibleAmount   float64  `json:"maxEligibleAmount"`
	RecommendedLoanType string   `json:"recommendedLoanType"`
	SuggestedBanks      []string `json:"suggestedBanks"`
	Message             string   `json:"message"`
}

// EligibilityCheckRequest is the lightweight eligibility form. Income and
// CibilScore must be numeric; strings holding numbers are accepted.
type EligibilityCheckRequest struct {
	Name        string      `json:"name" validate:"required"`
	Phone       string      `json:"phone" validate:"required"`
	Email       string      `json:"email" validate:"required,email"`
	Income      json.Number `json:"income" validate:"required,numeric"`
	CibilScore  json.Number `json:"cibilScore" validate:"required,numeric"`
	ServiceType string      `json:"serviceType"`
}

type EligibilityCheckResponse struct {
	Eligible bool   `json:"eligible"`
	Message  string `json:"message"`
}
