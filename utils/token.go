package utils

import (
	"crypto/rand"
	"math/big"
)

const tokenCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateRandomToken returns a short code suitable for email confirmation.
func GenerateRandomToken(length int) string {
	token := make([]byte, length)
	max := big.NewInt(int64(len(tokenCharset)))
	for i := range token {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err)
		}
		token[i] = tokenCharset[n.Int64()]
	}
	return string(token)
}
