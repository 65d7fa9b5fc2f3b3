package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateNumericOTP(t *testing.T) {
	for _, length := range []int{1, 4, 6, 10} {
		otp, err := GenerateNumericOTP(length)
		require.NoError(t, err)
		assert.Len(t, otp, length)
		for _, r := range otp {
			assert.True(t, r >= '0' && r <= '9', "non-digit %q in %q", r, otp)
		}
	}
}

func TestGenerateNumericOTP_DefaultLength(t *testing.T) {
	otp, err := GenerateNumericOTP(0)
	require.NoError(t, err)
	assert.Len(t, otp, DefaultOTPLength)

	otp, err = GenerateNumericOTP(-3)
	require.NoError(t, err)
	assert.Len(t, otp, DefaultOTPLength)
}

func TestGenerateNumericOTP_UsesAllDigits(t *testing.T) {
	seen := map[rune]bool{}
	for i := 0; i < 200 && len(seen) < 10; i++ {
		otp, err := GenerateNumericOTP(6)
		require.NoError(t, err)
		for _, r := range otp {
			seen[r] = true
		}
	}
	assert.Len(t, seen, 10)
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "Asha Rao", SanitizeInput("  Asha\x00 Rao\n"))
	assert.Equal(t, "", SanitizeInput("   "))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "asha@example.com", NormalizeEmail("  Asha@Example.COM "))
}

func TestStringValue(t *testing.T) {
	m := map[string]interface{}{"university": " MIT ", "year": 2025, "intakeYear": float64(2025), "flag": true}
	assert.Equal(t, "MIT", StringValue(m, "university"))
	assert.Equal(t, "", StringValue(m, "year"))
	assert.Equal(t, "2025", StringValue(m, "intakeYear"))
	assert.Equal(t, "", StringValue(m, "flag"))
	assert.Equal(t, "", StringValue(m, "missing"))
	assert.Equal(t, "", StringValue(nil, "university"))
}
