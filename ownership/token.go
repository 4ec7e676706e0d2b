package ownership

import (
	"crypto/sha256"
	"fmt"
	"io"
	"noping/domain"
	"noping/errors"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/hkdf"
)

const (
	issuer  = "noping"
	keySize = 32
)

// Token locates the message an open modal will act on. It travels through
// the modal's private metadata and comes back on submission.
type Token struct {
	Action    Action `json:"act"`
	MessageTS string `json:"ts"`
	ChannelID string `json:"ch"`
	ThreadTS  string `json:"th,omitempty"`
}

func (t Token) Location() domain.Location {
	return domain.Location{ChannelID: t.ChannelID, Timestamp: t.MessageTS}
}

type tokenClaims struct {
	Token
	jwt.RegisteredClaims
}

// Issuer serializes tokens into signed, opaque strings.
// Tokens carry no expiry and can be redeemed any number of times; the modal
// session is the only thing bounding their lifetime.
type Issuer struct {
	key []byte
}

func NewIssuer(key []byte) *Issuer {
	return &Issuer{key: key}
}

// DeriveKey stretches a shared secret into a token signing key, so the key
// stays stable across restarts without being configured separately.
func DeriveKey(secret []byte) ([]byte, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("empty secret")
	}
	key := make([]byte, keySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secret, nil, []byte(issuer+" ownership token")), key); err != nil {
		return nil, fmt.Errorf("key derivation failed: %w", err)
	}
	return key, nil
}

// Issue creates the opaque metadata for one modal session.
// A token without a message location would never be redeemable and is refused.
func (i *Issuer) Issue(token Token) (string, error) {
	if token.MessageTS == "" || token.ChannelID == "" {
		return "", fmt.Errorf("%w: missing message location", errors.ErrInvalidToken)
	}
	claims := tokenClaims{
		Token:            token,
		RegisteredClaims: jwt.RegisteredClaims{Issuer: issuer},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.key)
	if err != nil {
		return "", fmt.Errorf("token signing failed: %w", err)
	}
	return signed, nil
}

// Redeem recovers the token issued for this modal session.
func (i *Issuer) Redeem(metadata string) (Token, error) {
	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(metadata, claims, func(token *jwt.Token) (interface{}, error) {
		return i.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(issuer))
	if err != nil {
		return Token{}, fmt.Errorf("%w: %v", errors.ErrInvalidToken, err)
	}
	if claims.MessageTS == "" || claims.ChannelID == "" {
		return Token{}, fmt.Errorf("%w: missing message location", errors.ErrInvalidToken)
	}
	return claims.Token, nil
}
