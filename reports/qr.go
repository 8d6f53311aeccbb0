package reports

import (
	"encoding/base64"
	"fmt"
	"html/template"

	qrcode "github.com/skip2/go-qrcode"
)

const qrImageSize = 256

func QRCodePNG(value string) ([]byte, error) {
	png, err := qrcode.Encode(value, qrcode.Medium, qrImageSize)
	if err != nil {
		return nil, fmt.Errorf("encode QR code: %w", err)
	}
	return png, nil
}

func qrDataURI(value string) (template.URL, error) {
	png, err := QRCodePNG(value)
	if err != nil {
		return "", err
	}
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png)), nil
}
