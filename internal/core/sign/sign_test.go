package sign_test

import (
	"testing"

	"github.com/parulcreation/projectshop/internal/core/sign"
	"github.com/stretchr/testify/assert"
)

// Reference digest from RFC 4231 test case 2.
const (
	rfcKey     = "Jefe"
	rfcMessage = "what do ya want for nothing?"
	rfcHex     = "5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843"
	rfcBase64  = "W9zBRr9gdU5qBCQmCJV1x1oAPwidJzmDnexYuWTsOEM="
)

func TestHMACKnownVectors(t *testing.T) {
	assert.Equal(t, rfcHex, sign.HMACHex([]byte(rfcMessage), []byte(rfcKey)))
	assert.Equal(t, rfcBase64, sign.HMACBase64([]byte(rfcMessage), []byte(rfcKey)))
}

func TestValidHex(t *testing.T) {
	tests := []struct {
		name      string
		message   string
		signature string
		secret    string
		want      bool
	}{
		{
			name:      "good signature",
			message:   rfcMessage,
			signature: rfcHex,
			secret:    rfcKey,
			want:      true,
		},
		{
			name:      "single byte of message altered",
			message:   "What do ya want for nothing?",
			signature: rfcHex,
			secret:    rfcKey,
			want:      false,
		},
		{
			name:      "single byte of signature altered",
			message:   rfcMessage,
			signature: "4bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843",
			secret:    rfcKey,
			want:      false,
		},
		{
			name:      "wrong secret",
			message:   rfcMessage,
			signature: rfcHex,
			secret:    "jefe",
			want:      false,
		},
		{
			name:      "truncated signature",
			message:   rfcMessage,
			signature: rfcHex[:32],
			secret:    rfcKey,
			want:      false,
		},
		{
			name:      "signature is not hex",
			message:   rfcMessage,
			signature: "not-a-signature",
			secret:    rfcKey,
			want:      false,
		},
		{
			name:      "empty signature",
			message:   rfcMessage,
			signature: "",
			secret:    rfcKey,
			want:      false,
		},
		{
			name:      "empty message",
			message:   "",
			signature: rfcHex,
			secret:    rfcKey,
			want:      false,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := sign.ValidHex([]byte(test.message), test.signature, []byte(test.secret))
			assert.Equal(t, test.want, got)
		})
	}
}

func TestValidBase64(t *testing.T) {
	assert.True(t, sign.ValidBase64([]byte(rfcMessage), rfcBase64, []byte(rfcKey)))
	assert.False(t, sign.ValidBase64([]byte(rfcMessage), "V9zBRr9gdU5qBCQmCJV1x1oAPwidJzmDnexYuWTsOEM=", []byte(rfcKey)))
	assert.False(t, sign.ValidBase64([]byte(rfcMessage), "%%%", []byte(rfcKey)))
	assert.False(t, sign.ValidBase64([]byte(rfcMessage), "", []byte(rfcKey)))
}
