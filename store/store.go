package store

import (
	"dashkit/models"
	"dashkit/types"
	"dashkit/utils"
	"errors"
	"time"

	"github.com/goombaio/namegenerator"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) (*Store, error) {
	s := &Store{
		db: db,
	}
	return s, s.init()
}

// init seeds the default tenant and its admin account on first boot.
func (s *Store) init() error {
	var count int64
	err := s.db.Model(&models.Tenant{}).Count(&count).Error
	if err != nil {
		utils.Logger.Error("error while counting tenants", zap.String("err_msg", err.Error()))
		return err
	}
	if count != 0 {
		return nil
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		tenant := &models.Tenant{
			Name:      "default",
			Subdomain: "default",
		}
		if err := tx.Create(tenant).Error; err != nil {
			return err
		}
		password, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		admin := &models.User{
			Name:     "admin",
			Password: string(password),
			TenantID: tenant.ID,
		}
		return tx.Create(admin).Error
	})
}

func (s *Store) GetUserByName(name string) (*models.User, error) {
	user := &models.User{}
	err := s.db.Model(&models.User{}).Where("name = ?", name).First(user).Error
	return user, err
}

func (s *Store) GetTenantByID(id uint) (*models.Tenant, error) {
	tenant := &models.Tenant{}
	if err := s.db.Model(&models.Tenant{}).Where("id = ?", id).First(tenant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotExist
		}
		return nil, err
	}
	return tenant, nil
}

func (s *Store) CreateDataSource(source *models.DataSource) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.DataSource{}).
			Where("name = ? AND tenant_id = ?", source.Name, source.TenantID).
			Count(&count).Error; err != nil {
			return err
		}
		if count != 0 {
			return types.ErrAlreadyExist
		}
		return tx.Create(source).Error
	})
}

func (s *Store) GetDataSources(tenantID uint) ([]*models.DataSource, error) {
	sources := []*models.DataSource{}
	if err := s.db.Model(&models.DataSource{}).Where("tenant_id = ?", tenantID).Find(&sources).Error; err != nil {
		utils.Logger.Error("error while fetching data sources", zap.String("err_msg", err.Error()))
		return nil, err
	}
	return sources, nil
}

func (s *Store) GetDataSourceByID(tenantID uint, id uint) (*models.DataSource, error) {
	source := &models.DataSource{}
	err := s.db.Model(&models.DataSource{}).Where("id = ? AND tenant_id = ?", id, tenantID).First(source).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotExist
		}
		utils.Logger.Error("error while fetching data source", zap.String("err_msg", err.Error()))
		return nil, err
	}
	return source, nil
}

func (s *Store) UpdateDataSource(source *models.DataSource) error {
	return s.db.Save(source).Error
}

func (s *Store) DeleteDataSource(tenantID uint, id uint) error {
	res := s.db.Where("id = ? AND tenant_id = ?", id, tenantID).Delete(&models.DataSource{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return types.ErrNotExist
	}
	return nil
}

func (s *Store) CreateDataset(dataset *models.Dataset) error {
	if dataset.Name == "" {
		dataset.Name = namegenerator.NewNameGenerator(time.Now().UnixNano()).Generate()
	}
	return s.db.Create(dataset).Error
}

func (s *Store) GetDatasets(tenantID uint) ([]*models.Dataset, error) {
	datasets := []*models.Dataset{}
	if err := s.db.Model(&models.Dataset{}).Preload("DataSource").
		Where("tenant_id = ?", tenantID).Find(&datasets).Error; err != nil {
		utils.Logger.Error("error while fetching datasets", zap.String("err_msg", err.Error()))
		return nil, err
	}
	return datasets, nil
}

func (s *Store) GetDatasetByID(tenantID uint, id uint) (*models.Dataset, error) {
	dataset := &models.Dataset{}
	err := s.db.Model(&models.Dataset{}).Preload("DataSource").
		Where("id = ? AND tenant_id = ?", id, tenantID).First(dataset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotExist
		}
		utils.Logger.Error("error while fetching dataset", zap.String("err_msg", err.Error()))
		return nil, err
	}
	return dataset, nil
}

// GetDatasetAnyTenant loads a join participant without tenant scoping. The
// engine excludes cross-tenant participants itself, silently; the lookup
// still has to find them to know who owns them.
func (s *Store) GetDatasetAnyTenant(id uint) (*models.Dataset, error) {
	dataset := &models.Dataset{}
	err := s.db.Model(&models.Dataset{}).Preload("DataSource").
		Where("id = ?", id).First(dataset).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotExist
		}
		return nil, err
	}
	return dataset, nil
}

func (s *Store) DeleteDataset(tenantID uint, id uint) error {
	res := s.db.Where("id = ? AND tenant_id = ?", id, tenantID).Delete(&models.Dataset{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return types.ErrNotExist
	}
	return nil
}

func (s *Store) CreateChart(chart *models.Chart) error {
	return s.db.Create(chart).Error
}

func (s *Store) GetCharts(tenantID uint) ([]*models.Chart, error) {
	charts := []*models.Chart{}
	if err := s.db.Model(&models.Chart{}).Preload("Joins").
		Where("tenant_id = ?", tenantID).Find(&charts).Error; err != nil {
		utils.Logger.Error("error while fetching charts", zap.String("err_msg", err.Error()))
		return nil, err
	}
	return charts, nil
}

func (s *Store) GetChartByID(tenantID uint, id uint) (*models.Chart, error) {
	chart := &models.Chart{}
	err := s.db.Model(&models.Chart{}).Preload("Joins").
		Where("id = ? AND tenant_id = ?", id, tenantID).First(chart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotExist
		}
		utils.Logger.Error("error while fetching chart", zap.String("err_msg", err.Error()))
		return nil, err
	}
	return chart, nil
}

func (s *Store) DeleteChart(tenantID uint, id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		chart := &models.Chart{}
		err := tx.Where("id = ? AND tenant_id = ?", id, tenantID).First(chart).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.ErrNotExist
			}
			return err
		}
		// joins are owned by the chart and go with it.
		if err := tx.Where("chart_id = ?", chart.ID).Delete(&models.ChartJoin{}).Error; err != nil {
			return err
		}
		return tx.Delete(chart).Error
	})
}

func (s *Store) CreateDashboard(dashboard *models.Dashboard) error {
	return s.db.Create(dashboard).Error
}

func (s *Store) GetDashboards(tenantID uint) ([]*models.Dashboard, error) {
	dashboards := []*models.Dashboard{}
	if err := s.db.Model(&models.Dashboard{}).Preload("Charts").
		Where("tenant_id = ?", tenantID).Find(&dashboards).Error; err != nil {
		utils.Logger.Error("error while fetching dashboards", zap.String("err_msg", err.Error()))
		return nil, err
	}
	return dashboards, nil
}

func (s *Store) GetDashboardByID(tenantID uint, id uint) (*models.Dashboard, error) {
	dashboard := &models.Dashboard{}
	err := s.db.Model(&models.Dashboard{}).Preload("Charts").
		Where("id = ? AND tenant_id = ?", id, tenantID).First(dashboard).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotExist
		}
		return nil, err
	}
	return dashboard, nil
}

// AddChartToDashboard places a chart on a dashboard, updating the layout if
// the placement already exists.
func (s *Store) AddChartToDashboard(placement *models.DashboardChart) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		existing := &models.DashboardChart{}
		err := tx.Where("dashboard_id = ? AND chart_id = ?", placement.DashboardID, placement.ChartID).
			First(existing).Error
		if err == nil {
			existing.Layout = placement.Layout
			existing.Order = placement.Order
			*placement = *existing
			return tx.Save(existing).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(placement).Error
	})
}
