package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Dashboard struct {
	ID        uint              `gorm:"primarykey" json:"id"`
	CreatedAt time.Time         `json:"-"`
	UpdatedAt time.Time         `json:"-"`
	DeletedAt gorm.DeletedAt    `gorm:"index" json:"-"`
	TenantID  uint              `gorm:"index" json:"-"`
	Name      string            `json:"name"`
	Charts    []*DashboardChart `json:"charts,omitempty"`
}

// DashboardChart places a chart on a dashboard with its grid layout blob.
type DashboardChart struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	DashboardID uint           `gorm:"index:idx_dashboard_chart,unique" json:"-"`
	ChartID     uint           `gorm:"index:idx_dashboard_chart,unique" json:"chartId"`
	Layout      datatypes.JSON `json:"layout"`
	Order       int            `json:"order"`
}
