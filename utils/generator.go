package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// codeBytes gives 128 bits of entropy per anonymous code.
const codeBytes = 16

func GenerateCodeValue() (string, error) {
	b := make([]byte, codeBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
