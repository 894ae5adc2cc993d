package autocert

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// Size 50 is enough for a verification link in the corner of a certificate
const DefaultQRCodeSize = 50

func GenerateQRCode(link, outputPath string, size int) error {
	if size <= 0 {
		size = DefaultQRCodeSize
	}
	err := qrcode.WriteFile(link, qrcode.Medium, size, outputPath)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}
	return nil
}
