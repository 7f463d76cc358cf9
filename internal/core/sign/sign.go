// Package sign holds the keyed-hash primitives used to authenticate gateway
// payloads. Providers disagree only on the canonical byte string and on the
// signature encoding, so adapters build the message and pick hex or base64
// here. All comparisons are constant-time.
package sign

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
)

func mac(message, secret []byte) []byte {
	h := hmac.New(sha256.New, secret)
	h.Write(message)
	return h.Sum(nil)
}

// HMACHex returns the hex-encoded HMAC-SHA256 of message under secret.
func HMACHex(message, secret []byte) string {
	return hex.EncodeToString(mac(message, secret))
}

// HMACBase64 returns the base64-encoded HMAC-SHA256 of message under secret.
func HMACBase64(message, secret []byte) string {
	return base64.StdEncoding.EncodeToString(mac(message, secret))
}

// ValidHex reports whether signature is the hex HMAC-SHA256 of message.
// Malformed or empty input yields false, never an error.
func ValidHex(message []byte, signature string, secret []byte) bool {
	provided, err := hex.DecodeString(signature)
	if err != nil || len(provided) == 0 {
		return false
	}
	return hmac.Equal(provided, mac(message, secret))
}

// ValidBase64 reports whether signature is the base64 HMAC-SHA256 of message.
func ValidBase64(message []byte, signature string, secret []byte) bool {
	provided, err := base64.StdEncoding.DecodeString(signature)
	if err != nil || len(provided) == 0 {
		return false
	}
	return hmac.Equal(provided, mac(message, secret))
}
