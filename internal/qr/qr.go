package qr

import (
	"github.com/skip2/go-qrcode"
)

// Encoder renders payloads as PNG QR codes.
type Encoder struct {
	Level qrcode.RecoveryLevel
	Size  int
}

func NewEncoder(size int) *Encoder {
	if size <= 0 {
		size = 256
	}
	return &Encoder{Level: qrcode.Medium, Size: size}
}

func (e *Encoder) Encode(payload string) ([]byte, error) {
	return qrcode.Encode(payload, e.Level, e.Size)
}
