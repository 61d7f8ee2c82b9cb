package qrcode

import qr "github.com/skip2/go-qrcode"

// JoinCode renders a room join URL as a QR code PNG.
func JoinCode(url string) ([]byte, error) {
	return qr.Encode(url, qr.Medium, 256)
}
