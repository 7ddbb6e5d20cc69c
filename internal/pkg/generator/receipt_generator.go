package generator

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

type ReceiptGenerator struct{}

func NewReceiptGenerator() *ReceiptGenerator {
	return &ReceiptGenerator{}
}

func (g *ReceiptGenerator) GenerateReceiptID() (string, error) {
	randomBytes := make([]byte, 8)
	_, err := rand.Read(randomBytes)
	if err != nil {
		return "", err
	}

	randomHex := hex.EncodeToString(randomBytes)

	return fmt.Sprintf("TX-%s", randomHex), nil
}

func (g *ReceiptGenerator) GenerateCollectionID() string {
	randomBytes := make([]byte, 5) // 5 bytes will give us 10 hex chars
	if _, err := rand.Read(randomBytes); err != nil {
		return ""
	}
	randomID := hex.EncodeToString(randomBytes)
	return fmt.Sprintf("COL-%s", randomID)
}
