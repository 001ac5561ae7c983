package utils

import (
	"crypto/rand"
	"math/big"
)

const tokenCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateRandomToken returns a cryptographically random string, used
// for password reset codes.
func GenerateRandomToken(length int) string {
	token := make([]byte, length)
	for i := range token {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(tokenCharset))))
		if err != nil {
			panic(err) // crypto/rand failure means no safe fallback
		}
		token[i] = tokenCharset[n.Int64()]
	}
	return string(token)
}

// GenerateNumericCode returns a random digit string, used for email
// MFA codes.
func GenerateNumericCode(digits int) string {
	code := make([]byte, digits)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			panic(err)
		}
		code[i] = byte('0' + n.Int64())
	}
	return string(code)
}
