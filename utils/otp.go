// utils/otp.go
package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// DefaultOTPLength is the length of admin login codes.
const DefaultOTPLength = 6

// GenerateNumericOTP returns a string of decimal digits drawn uniformly
// from crypto/rand. A non-positive length falls back to DefaultOTPLength.
func GenerateNumericOTP(length int) (string, error) {
	if length <= 0 {
		length = DefaultOTPLength
	}

	var b strings.Builder
	b.Grow(length)
	ten := big.NewInt(10)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + n.Int64()))
	}
	return b.String(), nil
}
