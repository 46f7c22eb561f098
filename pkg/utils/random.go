package utils

import (
	"crypto/rand"
	"math/big"
)

const secretAlphabet = "abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateRandomString returns n characters drawn from crypto/rand.
func GenerateRandomString(n int) (string, error) {
	result := make([]byte, n)
	max := big.NewInt(int64(len(secretAlphabet)))
	for i := 0; i < n; i++ {
		num, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		result[i] = secretAlphabet[num.Int64()]
	}
	return string(result), nil
}
