package engine

import (
	"testing"
	"time"
)

func TestResolveAuthAPIKeyHeader(t *testing.T) {
	headers, params, err := ResolveAuth(SourceConfig{
		AuthType:   AuthAPIKeyHeader,
		APIKey:     "secret-key",
		APIKeyName: "X-Api-Key",
	}, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if len(headers) != 1 {
		t.Fatalf("expected exactly one header, got %d", len(headers))
	}
	if headers["X-Api-Key"] != "secret-key" {
		t.Fatalf("unexpected header value %q", headers["X-Api-Key"])
	}
	if len(params) != 0 {
		t.Fatalf("expected no extra params, got %v", params)
	}
}

func TestResolveAuthAPIKeyHeaderEmptyKeyPassesThrough(t *testing.T) {
	headers, _, err := ResolveAuth(SourceConfig{
		AuthType:   AuthAPIKeyHeader,
		APIKeyName: "X-Api-Key",
	}, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if len(headers) != 0 {
		t.Fatalf("empty api key must not add a header, got %v", headers)
	}
}

func TestResolveAuthAPIKeyQuery(t *testing.T) {
	_, params, err := ResolveAuth(SourceConfig{
		AuthType: AuthAPIKeyQuery,
		APIKey:   "secret-key",
	}, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if params["api_key"] != "secret-key" {
		t.Fatalf("expected default api_key param, got %v", params)
	}
	_, params, err = ResolveAuth(SourceConfig{
		AuthType:   AuthAPIKeyQuery,
		APIKey:     "secret-key",
		APIKeyName: "token",
	}, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if params["token"] != "secret-key" {
		t.Fatalf("expected configured param name, got %v", params)
	}
}

func TestResolveAuthBearer(t *testing.T) {
	headers, _, err := ResolveAuth(SourceConfig{
		AuthType:    AuthBearer,
		BearerToken: "tok",
	}, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if headers["Authorization"] != "Bearer tok" {
		t.Fatalf("unexpected authorization header %q", headers["Authorization"])
	}
}

func TestResolveAuthNone(t *testing.T) {
	headers, params, err := ResolveAuth(SourceConfig{AuthType: AuthNone}, time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if len(headers) != 0 || len(params) != 0 {
		t.Fatalf("none auth must add nothing, got %v %v", headers, params)
	}
}

func TestResolveAuthJWT(t *testing.T) {
	headers, _, err := ResolveAuth(SourceConfig{
		AuthType:    AuthJWTHS256,
		JWTSecret:   "s",
		JWTSubject:  "u",
		JWTAudience: "a",
	}, time.Unix(4102444800, 0))
	if err != nil {
		t.Fatal(err)
	}
	auth := headers["Authorization"]
	if len(auth) < 8 || auth[:7] != "Bearer " {
		t.Fatalf("expected bearer credential, got %q", auth)
	}
}

func TestResolveAuthJWTSigningFailure(t *testing.T) {
	_, _, err := ResolveAuth(SourceConfig{
		AuthType: AuthJWTHS256,
	}, time.Now())
	if err == nil {
		t.Fatal("expected signing error")
	}
	if _, ok := err.(*AuthSigningError); !ok {
		t.Fatalf("expected *AuthSigningError, got %T", err)
	}
}

func TestResolveAuthUnknownType(t *testing.T) {
	_, _, err := ResolveAuth(SourceConfig{AuthType: "oauth_dance"}, time.Now())
	if err == nil {
		t.Fatal("expected validation error for unknown auth type")
	}
	if _, ok := err.(*ValidationError); !ok {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
}
