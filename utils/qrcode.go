package utils

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// QRCodeDataURL renders the complaint confirmation code as a PNG QR and
// returns it as a base64 data URL, ready to embed in an <img> tag. The
// resident shows this code on screen; the worker scans it to prove
// physical resolution.
func QRCodeDataURL(code string) (string, error) {
	png, err := qrcode.Encode(code, qrcode.Medium, 256)
	if err != nil {
		return "", fmt.Errorf("failed to encode QR code: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
