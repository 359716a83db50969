package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Chart struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time      `json:"-"`
	UpdatedAt   time.Time      `json:"-"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	TenantID    uint           `gorm:"index" json:"-"`
	Name        string         `json:"name"`
	ChartType   string         `json:"chartType"`
	DatasetID   *uint          `json:"datasetId"`
	Dataset     *Dataset       `json:"dataset,omitempty"`
	XField      string         `json:"xField"`
	YField      string         `json:"yField"`
	Aggregation string         `json:"aggregation"`
	// InlineData holds uploaded rows (spreadsheet imports) served verbatim
	// by chart runs, bypassing the engine.
	InlineData datatypes.JSON `json:"inlineData,omitempty"`
	Joins      []ChartJoin    `gorm:"constraint:OnDelete:CASCADE" json:"joins"`
}

// ChartJoin is owned by its chart and cascade-deleted with it. Only the
// first join of a chart participates in execution; the rest are stored but
// not chained.
type ChartJoin struct {
	ID             uint   `gorm:"primarykey" json:"id"`
	ChartID        uint   `gorm:"index" json:"-"`
	LeftDatasetID  uint   `json:"leftDatasetId"`
	LeftField      string `json:"leftField"`
	RightDatasetID uint   `json:"rightDatasetId"`
	RightField     string `json:"rightField"`
	JoinType       string `gorm:"default:inner" json:"joinType"`
	// OnCondition is stored for forward compatibility; execution ignores it.
	OnCondition string `json:"onCondition"`
}
