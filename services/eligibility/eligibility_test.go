package eligibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComprehensive(t *testing.T) {
	tests := []struct {
		name         string
		in           Input
		wantEligible bool
		wantAmount   float64
		wantType     string
	}{
		{
			name:         "income below threshold without collateral",
			in:           Input{MonthlyIncome: 20000, PreferredType: LoanUnsecured},
			wantEligible: false,
			wantAmount:   0,
			wantType:     LoanUnsecured,
		},
		{
			name:         "unsecured estimate clamped up to floor",
			in:           Input{MonthlyIncome: 50000, PreferredType: LoanUnsecured},
			wantEligible: true,
			wantAmount:   3_000_000,
			wantType:     LoanUnsecured,
		},
		{
			name:         "unsecured estimate inside band",
			in:           Input{MonthlyIncome: 80000},
			wantEligible: true,
			wantAmount:   3_840_000,
			wantType:     LoanUnsecured,
		},
		{
			name:         "unsecured estimate clamped down to ceiling",
			in:           Input{MonthlyIncome: 500000},
			wantEligible: true,
			wantAmount:   5_000_000,
			wantType:     LoanUnsecured,
		},
		{
			name:         "secured uses collateral",
			in:           Input{CollateralValue: 6_000_000, PreferredType: LoanSecured},
			wantEligible: true,
			wantAmount:   4_200_000,
			wantType:     LoanSecured,
		},
		{
			name:         "collateral alone makes applicant eligible",
			in:           Input{CollateralValue: 100, PreferredType: LoanUnsecured},
			wantEligible: true,
			wantAmount:   3_000_000,
			wantType:     LoanUnsecured,
		},
		{
			name:         "secured without collateral falls back to income",
			in:           Input{MonthlyIncome: 100000, PreferredType: LoanSecured},
			wantEligible: true,
			wantAmount:   4_800_000,
			wantType:     LoanSecured,
		},
		{
			name:         "exact income threshold",
			in:           Input{MonthlyIncome: 25000},
			wantEligible: true,
			wantAmount:   3_000_000,
			wantType:     LoanUnsecured,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Comprehensive(tt.in)
			assert.Equal(t, StrategyComprehensive, res.Strategy)
			assert.Equal(t, tt.wantEligible, res.IsEligible)
			assert.InDelta(t, tt.wantAmount, res.MaxEligibleAmount, 0.01)
			assert.Equal(t, tt.wantType, res.RecommendedLoanType)
			assert.Equal(t, ComprehensiveRange, res.DisplayRange)
			if tt.wantEligible {
				assert.Equal(t, SuggestedBanks, res.SuggestedBanks)
				assert.GreaterOrEqual(t, res.MaxEligibleAmount, float64(MinAmount))
				assert.LessOrEqual(t, res.MaxEligibleAmount, float64(MaxAmount))
			} else {
				assert.Empty(t, res.SuggestedBanks)
				assert.NotNil(t, res.SuggestedBanks)
			}
		})
	}
}

func TestComprehensive_IneligibleAcrossIncomes(t *testing.T) {
	for monthly := 0.0; monthly*12 < IncomeThreshold; monthly += 1000 {
		res := Comprehensive(Input{MonthlyIncome: monthly})
		assert.False(t, res.IsEligible, "monthly=%v", monthly)
		assert.Zero(t, res.MaxEligibleAmount, "monthly=%v", monthly)
	}
}

func TestComprehensive_SuggestedBanksAreCopied(t *testing.T) {
	res := Comprehensive(Input{MonthlyIncome: 50000})
	res.SuggestedBanks[0] = "changed"
	assert.Equal(t, "Punjab National Bank (PNB)", SuggestedBanks[0])
}

func TestSimple(t *testing.T) {
	tests := []struct {
		name     string
		income   float64
		score    float64
		eligible bool
		amount   float64
		display  string
	}{
		{"both thresholds met", 300000, 650, true, 5_000_000, SimpleRange},
		{"income short", 299999, 800, false, 0, UndeterminedRange},
		{"score short", 900000, 649, false, 0, UndeterminedRange},
		{"nothing", 0, 0, false, 0, UndeterminedRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Simple(tt.income, tt.score)
			assert.Equal(t, StrategySimple, res.Strategy)
			assert.Equal(t, tt.eligible, res.IsEligible)
			assert.Equal(t, tt.amount, res.MaxEligibleAmount)
			assert.Equal(t, tt.display, res.DisplayRange)
		})
	}
}

func TestClamp(t *testing.T) {
	for _, v := range []float64{-1, 0, 2_999_999, 3_000_000, 4_123_456, 5_000_000, 9e9} {
		once := Clamp(v)
		assert.GreaterOrEqual(t, once, float64(MinAmount))
		assert.LessOrEqual(t, once, float64(MaxAmount))
		assert.Equal(t, once, Clamp(once), "clamp must be idempotent for %v", v)
	}
}

func TestMaskID(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"123", "123"},
		{"1234", "1234"},
		{"12345", "*2345"},
		{"123412341234", "********1234"},
		{"ABCDE1234F", "******234F"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MaskID(tt.in), tt.in)
	}
}

func TestMaskID_Idempotent(t *testing.T) {
	once := MaskID("123412341234")
	assert.Equal(t, once, MaskID(once))
}
