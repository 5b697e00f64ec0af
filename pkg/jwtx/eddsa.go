package jwtx

import (
	"crypto/ed25519"
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Signer signs session claims into compact JWTs.
type Signer interface {
	Sign(Claims) (string, error)
}

// Verifier validates a JWT and returns the claims if it checks out.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// EdDSASigner signs session tokens with a single Ed25519 key.
type EdDSASigner struct {
	key ed25519.PrivateKey
}

func NewSignerEdDSA(key ed25519.PrivateKey) *EdDSASigner {
	return &EdDSASigner{key: key}
}

func (s *EdDSASigner) Sign(c Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, c)
	return token.SignedString(s.key)
}

// EdDSAVerifier verifies session tokens against the signer's public key and
// an expected issuer.
type EdDSAVerifier struct {
	pub    ed25519.PublicKey
	issuer string
}

func NewVerifierEdDSA(key ed25519.PrivateKey, issuer string) *EdDSAVerifier {
	return &EdDSAVerifier{
		pub:    key.Public().(ed25519.PublicKey),
		issuer: issuer,
	}
}

func (v *EdDSAVerifier) Verify(raw string) (Claims, error) {
	var claims Claims

	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodEd25519); !ok {
			return nil, ErrAlgMismatch
		}
		return v.pub, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrAlgMismatch):
			return Claims{}, ErrAlgMismatch
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrInvalidSig
		default:
			return Claims{}, ErrMalformed
		}
	}
	if !token.Valid {
		return Claims{}, ErrInvalidSig
	}

	if err := claims.ValidateIssuer(v.issuer); err != nil {
		return Claims{}, err
	}

	return claims, nil
}
