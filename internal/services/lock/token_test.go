package lock

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/founder-srm/foundathon/internal/model"
)

var testSecret = []byte("token-test-secret")

func testClaims() Claims {
	issued := time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)
	return Claims{
		StatementID: "ps-01",
		SubjectID:   "u_alice",
		IssuedAt:    issued.Unix(),
		ExpiresAt:   issued.Add(5 * time.Minute).Unix(),
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	claims := testClaims()

	token, err := Encode(claims, testSecret)
	require.NoError(t, err)

	decoded, err := Decode(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, claims, decoded)
}

func TestDecodeRejectsWrongSecret(t *testing.T) {
	token, err := Encode(testClaims(), testSecret)
	require.NoError(t, err)

	_, err = Decode(token, []byte("a-different-secret"))
	assert.ErrorIs(t, err, model.ErrInvalidSignature)
}

func TestDecodeRejectsTamperedFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Claims)
	}{
		{"statement id", func(c *Claims) { c.StatementID = "ps-02" }},
		{"subject id", func(c *Claims) { c.SubjectID = "u_mallory" }},
		{"issued at", func(c *Claims) { c.IssuedAt++ }},
		{"expires at", func(c *Claims) { c.ExpiresAt += 3600 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := Encode(testClaims(), testSecret)
			require.NoError(t, err)

			// Rewrite the payload while keeping the original signature
			encoded, sig, ok := strings.Cut(token, ".")
			require.True(t, ok)
			payload, err := base64.RawURLEncoding.DecodeString(encoded)
			require.NoError(t, err)

			var claims Claims
			require.NoError(t, json.Unmarshal(payload, &claims))
			tt.mutate(&claims)
			forged, err := json.Marshal(claims)
			require.NoError(t, err)

			tampered := base64.RawURLEncoding.EncodeToString(forged) + "." + sig
			_, err = Decode(tampered, testSecret)
			assert.ErrorIs(t, err, model.ErrInvalidSignature)
		})
	}
}

func TestDecodeRejectsSingleBitFlip(t *testing.T) {
	token, err := Encode(testClaims(), testSecret)
	require.NoError(t, err)

	encoded, sig, ok := strings.Cut(token, ".")
	require.True(t, ok)
	payload, err := base64.RawURLEncoding.DecodeString(encoded)
	require.NoError(t, err)

	for i := range payload {
		flipped := make([]byte, len(payload))
		copy(flipped, payload)
		flipped[i] ^= 0x01

		tampered := base64.RawURLEncoding.EncodeToString(flipped) + "." + sig
		_, err := Decode(tampered, testSecret)
		assert.ErrorIs(t, err, model.ErrInvalidSignature, "flipped payload byte %d", i)
	}
}

func TestDecodeRejectsMalformedTokens(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"no separator", "abcdef"},
		{"bad payload base64", "!!!.c2ln"},
		{"bad signature base64", "cGF5bG9hZA.!!!"},
		{"empty signature", "cGF5bG9hZA."},
		{"payload not json", base64.RawURLEncoding.EncodeToString([]byte("nope")) + "." +
			base64.RawURLEncoding.EncodeToString(sign([]byte("nope"), testSecret))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.token, testSecret)
			assert.ErrorIs(t, err, model.ErrInvalidSignature)
		})
	}
}
