package models

import "github.com/golang-jwt/jwt/v5"

// SupabaseClaims represents the claims in a Supabase access token
type SupabaseClaims struct {
	jwt.RegisteredClaims
	Email       string `json:"email"`
	Role        string `json:"role"`
	SessionID   string `json:"session_id"`
	AppMetadata struct {
		Provider string `json:"provider"`
	} `json:"app_metadata"`
}

// Session is the authenticated identity views are allowed to read.
type Session struct {
	UserID string          `json:"uid"`
	Email  string          `json:"email"`
	Token  string          `json:"-"`
	Claims *SupabaseClaims `json:"-"`
}

func NewSession(token string, claims *SupabaseClaims) *Session {
	return &Session{
		UserID: claims.Subject,
		Email:  claims.Email,
		Token:  token,
		Claims: claims,
	}
}
