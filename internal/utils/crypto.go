package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// URLSafeCharset is the base64url alphabet, used for tokens that travel
// in links and cookies.
const URLSafeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// GenerateRandomString generates a cryptographically secure random string
// using the provided charset and length
func GenerateRandomString(length int, charset string) string {
	b := make([]byte, length)
	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			panic(fmt.Sprintf("failed to generate random string: %v", err))
		}
		b[i] = charset[n.Int64()]
	}
	return string(b)
}

// GenerateOpaqueToken returns a 43-char URL-safe token with 32 bytes of
// entropy. Used for refresh tokens, verification tokens and password
// reset tickets.
func GenerateOpaqueToken() string {
	return GenerateRandomString(43, URLSafeCharset)
}
