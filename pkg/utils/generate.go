package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
)

// ==================== VERIFICATION CODE ====================

// GenerateVerificationCode creates a numeric code of the given length.
// Codes are single-use: the auth service clears them on consumption.
func GenerateVerificationCode(length int) string {
	if length <= 0 {
		length = 6
	}

	code := ""
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			// crypto/rand only fails if the OS entropy source is broken
			return ""
		}
		code += fmt.Sprintf("%d", n.Int64())
	}

	return code
}

// ==================== RESET TOKEN ====================

// GenerateResetToken creates an opaque hex token for password resets
func GenerateResetToken() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
