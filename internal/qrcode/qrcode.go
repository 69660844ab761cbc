package qrcode

import (
	"fmt"

	qr "github.com/skip2/go-qrcode"
)

// Size is the edge length in pixels of generated images.
const Size = 256

// Generate creates a QR code PNG image for the given URL.
func Generate(url string) ([]byte, error) {
	return qr.Encode(url, qr.Medium, Size)
}

// SpectateURL is the page a QR code sends spectators to.
func SpectateURL(host, gameID string) string {
	return fmt.Sprintf("http://%s/?game=%s", host, gameID)
}
