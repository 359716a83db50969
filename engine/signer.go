package engine

import (
	"time"

	"github.com/golang-jwt/jwt"
)

// DefaultTokenTTL is used when a source doesn't configure its own expiry.
const DefaultTokenTTL = 300 * time.Second

// SignToken mints the short-lived HS256 token for sources with the jwt_hs256
// auth type. Expiry is computed from the caller supplied now, not the wall
// clock, so callers and tests control it.
func SignToken(cfg SourceConfig, now time.Time) (string, error) {
	if cfg.JWTSecret == "" {
		return "", &AuthSigningError{Reason: "jwt secret is not configured"}
	}
	if cfg.JWTSubject == "" {
		return "", &AuthSigningError{Reason: "jwt subject is not configured"}
	}
	if cfg.JWTAudience == "" {
		return "", &AuthSigningError{Reason: "jwt audience is not configured"}
	}
	ttl := DefaultTokenTTL
	if cfg.JWTTTLSeconds > 0 {
		ttl = time.Duration(cfg.JWTTTLSeconds) * time.Second
	}
	claims := jwt.MapClaims{
		"sub": cfg.JWTSubject,
		"aud": cfg.JWTAudience,
		"exp": now.Add(ttl).Unix(),
	}
	if cfg.JWTIssuer != "" {
		claims["iss"] = cfg.JWTIssuer
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		return "", &AuthSigningError{Reason: err.Error()}
	}
	return signed, nil
}
