package lock

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"

	"github.com/founder-srm/foundathon/internal/model"
)

// Claims are the signed fields carried by a lock token. The token is the
// only record of the lock; nothing is stored server-side.
type Claims struct {
	StatementID model.StatementID `json:"psid"`
	SubjectID   model.UserID      `json:"sub"`
	IssuedAt    int64             `json:"iat"`
	ExpiresAt   int64             `json:"exp"`
}

// Encode serialises claims into the wire form carried by the client:
// base64url(JSON claims) + "." + base64url(HMAC-SHA256 over the claims)
func Encode(claims Claims, secret []byte) (string, error) {
	payload, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}

	encoded := base64.RawURLEncoding.EncodeToString(payload)
	sig := base64.RawURLEncoding.EncodeToString(sign(payload, secret))
	return encoded + "." + sig, nil
}

// Decode verifies a token's signature and returns its claims.
// Malformed tokens and MAC mismatches both report ErrInvalidSignature;
// the caller cannot distinguish tampering from corruption, and need not.
func Decode(token string, secret []byte) (Claims, error) {
	encoded, encodedSig, ok := strings.Cut(token, ".")
	if !ok {
		return Claims{}, model.ErrInvalidSignature
	}

	payload, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return Claims{}, model.ErrInvalidSignature
	}
	sig, err := base64.RawURLEncoding.DecodeString(encodedSig)
	if err != nil {
		return Claims{}, model.ErrInvalidSignature
	}

	if !hmac.Equal(sig, sign(payload, secret)) {
		return Claims{}, model.ErrInvalidSignature
	}

	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return Claims{}, model.ErrInvalidSignature
	}
	return claims, nil
}

func sign(payload, secret []byte) []byte {
	h := hmac.New(sha256.New, secret)
	h.Write(payload)
	return h.Sum(nil)
}
