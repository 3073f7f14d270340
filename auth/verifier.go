// Package auth verifies Supabase access tokens and signs users out.
package auth

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/garvitgrapefruitcornSSSSS/ai-wealth-managment-system/models"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken  = errors.New("missing or invalid token")
	ErrInvalidToken  = errors.New("invalid token")
	ErrInvalidIssuer = errors.New("invalid token issuer")
	ErrTokenRevoked  = errors.New("token has been revoked")
)

// Verifier checks HS256 Supabase tokens against the project secret and issuer.
type Verifier struct {
	secret  []byte
	issuer  string
	revoked *Revocations
}

func NewVerifier(secret, issuer string, revoked *Revocations) *Verifier {
	if revoked == nil {
		revoked = NewRevocations(nil)
	}
	return &Verifier{secret: []byte(secret), issuer: issuer, revoked: revoked}
}

func (v *Verifier) Revocations() *Revocations { return v.revoked }

func (v *Verifier) Verify(tokenString string) (*models.Session, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}
	if v.revoked.Revoked(tokenString) {
		return nil, ErrTokenRevoked
	}

	claims := &models.SupabaseClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		if len(v.secret) == 0 {
			return nil, errors.New("SUPABASE_JWT_SECRET not set")
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Issuer != v.issuer {
		return nil, ErrInvalidIssuer
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return models.NewSession(tokenString, claims), nil
}

// Revocations remembers signed-out tokens until they would have expired.
type Revocations struct {
	mu     sync.Mutex
	tokens map[string]time.Time
	now    func() time.Time
}

func NewRevocations(now func() time.Time) *Revocations {
	if now == nil {
		now = time.Now
	}
	return &Revocations{tokens: make(map[string]time.Time), now: now}
}

func (r *Revocations) Revoke(token string, expiresAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prune()
	r.tokens[token] = expiresAt
}

func (r *Revocations) Revoked(token string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	exp, ok := r.tokens[token]
	if !ok {
		return false
	}
	if !exp.After(r.now()) {
		delete(r.tokens, token)
		return false
	}
	return true
}

func (r *Revocations) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prune()
	return len(r.tokens)
}

func (r *Revocations) prune() {
	now := r.now()
	for token, exp := range r.tokens {
		if !exp.After(now) {
			delete(r.tokens, token)
		}
	}
}
