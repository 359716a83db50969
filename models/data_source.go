package models

import (
	"dashkit/engine"
	"time"

	"gorm.io/gorm"
)

// DataSource is a configured external HTTP API plus its authentication
// strategy. Secret columns are write-only over the API.
type DataSource struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	TenantID  uint           `gorm:"index" json:"-"`
	Name      string         `json:"name"`
	BaseURL   string         `json:"baseUrl"`
	AuthType  string         `json:"authType"`

	APIKey        string `json:"-"`
	APIKeyName    string `json:"apiKeyName"`
	BearerToken   string `json:"-"`
	JWTSecret     string `json:"-"`
	JWTSubject    string `json:"jwtSubject"`
	JWTAudience   string `json:"jwtAudience"`
	JWTIssuer     string `json:"jwtIssuer"`
	JWTTTLSeconds int    `json:"jwtTtlSeconds"`
}

// Config snapshots the source for one engine run.
func (d *DataSource) Config() engine.SourceConfig {
	return engine.SourceConfig{
		BaseURL:       d.BaseURL,
		AuthType:      engine.AuthType(d.AuthType),
		APIKey:        d.APIKey,
		APIKeyName:    d.APIKeyName,
		BearerToken:   d.BearerToken,
		JWTSecret:     d.JWTSecret,
		JWTSubject:    d.JWTSubject,
		JWTAudience:   d.JWTAudience,
		JWTIssuer:     d.JWTIssuer,
		JWTTTLSeconds: d.JWTTTLSeconds,
	}
}
