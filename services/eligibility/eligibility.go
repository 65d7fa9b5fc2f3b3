// Package eligibility holds the two loan-eligibility rule sets. Both are
// pure functions of their input.
package eligibility

import (
	"strings"
)

// Strategy names a rule set.
type Strategy string

const (
	StrategyComprehensive Strategy = "comprehensive"
	StrategySimple        Strategy = "simple"
)

const (
	// MinAmount and MaxAmount bound every eligible comprehensive estimate.
	MinAmount = 3_000_000
	MaxAmount = 5_000_000

	IncomeThreshold = 300_000
	CreditThreshold = 650

	securedLTV       = 0.7
	incomeMultiplier = 4
	simpleMaxAmount  = 5_000_000

	LoanSecured   = "Secured"
	LoanUnsecured = "Unsecured"

	ComprehensiveRange = "₹30 Lakhs – ₹50 Lakhs"
	SimpleRange        = "₹30–40 Lakhs"
	UndeterminedRange  = "Undetermined"
)

// SuggestedBanks is returned for every eligible comprehensive applicant.
var SuggestedBanks = []string{
	"Punjab National Bank (PNB)",
	"Avanse",
	"Credila",
	"Auxilo",
	"InCred",
	"Tata Capital",
	"Prodigy Finance",
	"Axis Bank",
	"ICICI Bank",
}

// Input is the part of a comprehensive application the rules look at.
type Input struct {
	MonthlyIncome   float64
	CollateralValue float64
	RequestedAmount float64
	PreferredType   string
}

// Result is shared by both strategies.
type Result struct {
	Strategy            Strategy
	IsEligible          bool
	MaxEligibleAmount   float64
	RecommendedLoanType string
	SuggestedBanks      []string
	DisplayRange        string
}

// Comprehensive applies the full rule: eligible when annual income reaches
// the threshold or any collateral is offered. The estimate is 70% of the
// collateral for secured requests with collateral, otherwise four times the
// annual income, clamped into [MinAmount, MaxAmount].
func Comprehensive(in Input) Result {
	annual := in.MonthlyIncome * 12
	res := Result{
		Strategy:            StrategyComprehensive,
		RecommendedLoanType: LoanUnsecured,
		SuggestedBanks:      []string{},
		DisplayRange:        ComprehensiveRange,
	}

	if annual < IncomeThreshold && in.CollateralValue <= 0 {
		return res
	}

	preferred := strings.TrimSpace(in.PreferredType)

	var raw float64
	if preferred == LoanSecured && in.CollateralValue > 0 {
		raw = in.CollateralValue * securedLTV
	} else {
		raw = annual * incomeMultiplier
	}

	res.IsEligible = true
	res.MaxEligibleAmount = Clamp(raw)
	if preferred != "" {
		res.RecommendedLoanType = preferred
	}
	res.SuggestedBanks = append([]string(nil), SuggestedBanks...)
	return res
}

// Simple is the lightweight intake rule: income and credit score must both
// clear their thresholds.
func Simple(income, creditScore float64) Result {
	if income >= IncomeThreshold && creditScore >= CreditThreshold {
		return Result{
			Strategy:          StrategySimple,
			IsEligible:        true,
			MaxEligibleAmount: simpleMaxAmount,
			SuggestedBanks:    []string{},
			DisplayRange:      SimpleRange,
		}
	}
	return Result{
		Strategy:       StrategySimple,
		SuggestedBanks: []string{},
		DisplayRange:   UndeterminedRange,
	}
}

// Clamp bounds v into [MinAmount, MaxAmount].
func Clamp(v float64) float64 {
	switch {
	case v < MinAmount:
		return MinAmount
	case v > MaxAmount:
		return MaxAmount
	default:
		return v
	}
}

// MaskID replaces every character except the trailing four with '*'.
func MaskID(s string) string {
	r := []rune(s)
	if len(r) <= 4 {
		return s
	}
	for i := 0; i < len(r)-4; i++ {
		r[i] = '*'
	}
	return string(r)
}
