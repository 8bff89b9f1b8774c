package qr

import (
	"strings"

	"github.com/skip2/go-qrcode"

	pkgerrors "github.com/big-riz/HandcashIntegration/pkg/errors"
)

const defaultSize = 256

// Generator renders QR PNGs for payment request URLs so the frontend can
// show a scannable code without round-tripping to the vendor's hosted image.
type Generator struct {
	size int
}

func NewGenerator(size int) *Generator {
	if size <= 0 {
		size = defaultSize
	}
	return &Generator{size: size}
}

// EncodePNG renders the payload as a PNG at the configured size.
func (g *Generator) EncodePNG(payload string) ([]byte, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "qr payload is required")
	}
	png, err := qrcode.Encode(payload, qrcode.Medium, g.size)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode qr code")
	}
	return png, nil
}
