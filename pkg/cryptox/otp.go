package cryptox

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// OTP code bounds. Codes are always six digits so they survive being read
// aloud or typed from an email without leading-zero confusion.
const (
	otpMin = 100000
	otpMax = 999999
)

// GenerateOTP returns a uniformly random six-digit verification code in
// [100000, 999999].
func GenerateOTP() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(otpMax-otpMin+1))
	if err != nil {
		return 0, fmt.Errorf("failed to generate otp: %w", err)
	}
	return otpMin + int(n.Int64()), nil
}
