package models

import "gorm.io/gorm"

func Migrate(db *gorm.DB) {
	db.AutoMigrate(&Tenant{},
		&User{},
		&DataSource{},
		&Dataset{},
		&Chart{},
		&ChartJoin{},
		&Dashboard{},
		&DashboardChart{})
}
