package qr

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"
	"strings"

	"github.com/skip2/go-qrcode"
)

const dataURIPrefix = "data:image/png;base64,"

// EncodePNG renders content as a size x size PNG QR code.
func EncodePNG(content string, size int) ([]byte, error) {
	code, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("failed to build qrcode: %w", err)
	}

	buf := new(bytes.Buffer)
	if err := png.Encode(buf, code.Image(size)); err != nil {
		return nil, fmt.Errorf("failed to encode qrcode png: %w", err)
	}
	return buf.Bytes(), nil
}

// DataURI renders content as a PNG QR code embedded in a data: URI.
func DataURI(content string, size int) (string, error) {
	img, err := EncodePNG(content, size)
	if err != nil {
		return "", err
	}
	return dataURIPrefix + base64.StdEncoding.EncodeToString(img), nil
}

// ParkingURL is the link a parking's QR code points at.
func ParkingURL(publicURL string, id int64) string {
	return fmt.Sprintf("%s/parking/%d", strings.TrimRight(publicURL, "/"), id)
}
