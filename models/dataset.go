package models

import (
	"dashkit/engine"
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Dataset is a named, parameterized request against one data source's
// endpoint. Ad-hoc runs build a transient Dataset that is never persisted.
type Dataset struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time      `json:"-"`
	UpdatedAt    time.Time      `json:"-"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	TenantID     uint           `gorm:"index" json:"-"`
	Name         string         `json:"name"`
	DataSourceID uint           `json:"dataSourceId"`
	DataSource   *DataSource    `json:"dataSource,omitempty"`
	Endpoint     string         `json:"endpoint"`
	QueryParams  datatypes.JSON `json:"queryParams"`
}

// Params decodes the stored query parameters. A malformed blob yields an
// empty map rather than failing the run.
func (d *Dataset) Params() map[string]string {
	params := map[string]string{}
	if len(d.QueryParams) != 0 {
		json.Unmarshal(d.QueryParams, &params)
	}
	return params
}

// Spec builds the engine run input. DataSource must be loaded.
func (d *Dataset) Spec() engine.DatasetSpec {
	spec := engine.DatasetSpec{
		Name:     d.Name,
		TenantID: d.TenantID,
		Endpoint: d.Endpoint,
		Params:   d.Params(),
	}
	if d.DataSource != nil {
		spec.Source = d.DataSource.Config()
	}
	return spec
}
