package service

import (
	"crypto/rand"
	"math/big"
)

const (
	groupCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	GroupCodeLength   = 6

	DefaultCodeAttempts = 32
)

// CodeGenerator returns a candidate group code.
type CodeGenerator func() (string, error)

// RandomGroupCode draws GroupCodeLength characters from A-Z0-9.
func RandomGroupCode() (string, error) {
	max := big.NewInt(int64(len(groupCodeAlphabet)))
	code := make([]byte, GroupCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = groupCodeAlphabet[n.Int64()]
	}
	return string(code), nil
}
