package models

import "gorm.io/gorm"

// Tenant is an isolated customer organization. Every durable entity carries
// an explicit TenantID column; there is no ambient current-tenant state
// anywhere in the codebase.
type Tenant struct {
	gorm.Model
	Name      string `json:"name"`
	Subdomain string `gorm:"unique" json:"subdomain"`
}
