package utils

import (
	"crypto/rand"
	"math/big"
)

var letterRunes = []rune("0123456789abcdefghijklmnopqrstuvwxyz")
var numberRunes = []rune("0123456789")

func randRunes(n int, source []rune) string {
	b := make([]rune, n)
	max := big.NewInt(int64(len(source)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			b[i] = source[i%len(source)]
			continue
		}
		b[i] = source[idx.Int64()]
	}
	return string(b)
}

// RandText returns n random lower-case alphanumeric characters.
func RandText(n int) string {
	return randRunes(n, letterRunes)
}

// RandNumberText returns n random digits.
func RandNumberText(n int) string {
	return randRunes(n, numberRunes)
}
