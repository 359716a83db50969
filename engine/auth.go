package engine

import (
	"fmt"
	"time"
)

// AuthType enumerates the upstream authentication strategies. Every value
// must be handled explicitly in ResolveAuth; an unknown value is an error,
// never a silent pass-through.
type AuthType string

const (
	AuthNone         AuthType = "none"
	AuthAPIKeyHeader AuthType = "api_key_header"
	AuthAPIKeyQuery  AuthType = "api_key_query"
	AuthBearer       AuthType = "bearer"
	AuthJWTHS256     AuthType = "jwt_hs256"
)

var AuthTypes = []AuthType{AuthNone, AuthAPIKeyHeader, AuthAPIKeyQuery, AuthBearer, AuthJWTHS256}

// SourceConfig is the snapshot of a data source a single run operates on.
// Secret fields are read-only during the run and must never reach logs or
// error messages unredacted.
type SourceConfig struct {
	BaseURL       string
	AuthType      AuthType
	APIKey        string
	APIKeyName    string
	BearerToken   string
	JWTSecret     string
	JWTSubject    string
	JWTAudience   string
	JWTIssuer     string
	JWTTTLSeconds int
}

// ResolveAuth produces the headers and extra query parameters needed to
// authenticate against the source. now is passed through to the token signer
// so expiry is deterministic under test.
func ResolveAuth(cfg SourceConfig, now time.Time) (map[string]string, map[string]string, error) {
	headers := map[string]string{}
	params := map[string]string{}
	switch cfg.AuthType {
	case AuthNone, "":
	case AuthAPIKeyHeader:
		// an empty key is a pass-through, not an error: some endpoints
		// are genuinely public.
		if cfg.APIKey != "" {
			headers[headerKeyName(cfg)] = cfg.APIKey
		}
	case AuthAPIKeyQuery:
		if cfg.APIKey != "" {
			params[queryKeyName(cfg)] = cfg.APIKey
		}
	case AuthBearer:
		headers["Authorization"] = "Bearer " + cfg.BearerToken
	case AuthJWTHS256:
		token, err := SignToken(cfg, now)
		if err != nil {
			return nil, nil, err
		}
		headers["Authorization"] = "Bearer " + token
	default:
		return nil, nil, &ValidationError{Msg: fmt.Sprintf("unsupported auth type %q", cfg.AuthType)}
	}
	return headers, params, nil
}

// credential returns the secret the configured auth type consumes. Callers
// must redact it before it reaches a log line.
func credential(cfg SourceConfig) string {
	switch cfg.AuthType {
	case AuthAPIKeyHeader, AuthAPIKeyQuery:
		return cfg.APIKey
	case AuthBearer:
		return cfg.BearerToken
	case AuthJWTHS256:
		return cfg.JWTSecret
	}
	return ""
}

func headerKeyName(cfg SourceConfig) string {
	if cfg.APIKeyName == "" {
		return "Authorization"
	}
	return cfg.APIKeyName
}

func queryKeyName(cfg SourceConfig) string {
	if cfg.APIKeyName == "" {
		return "api_key"
	}
	return cfg.APIKeyName
}
