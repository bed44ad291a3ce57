package database

import (
	"github.com/google/uuid"
	"github.com/rpupo63/appstore-backend/errs"
	"github.com/rpupo63/appstore-backend/models"
	"gorm.io/gorm"
)

type ApplicationAssetsRepo struct {
	db *gorm.DB
}

func NewApplicationAssetsRepo(db *gorm.DB) *ApplicationAssetsRepo {
	return &ApplicationAssetsRepo{db}
}

// FindByAppUUID returns the asset bundle of an application
func (r *ApplicationAssetsRepo) FindByAppUUID(appUUID uuid.UUID) (*models.ApplicationAssets, error) {
	var assets models.ApplicationAssets
	if err := r.db.Where("app_uuid = ?", appUUID).First(&assets).Error; err != nil {
		return nil, errs.NewDatabaseError("find", "application assets", err)
	}
	return &assets, nil
}

// FindByAppUUIDs returns the asset bundles of appUUIDs keyed by application uuid
func (r *ApplicationAssetsRepo) FindByAppUUIDs(appUUIDs []uuid.UUID) (map[uuid.UUID]*models.ApplicationAssets, error) {
	byUUID := make(map[uuid.UUID]*models.ApplicationAssets, len(appUUIDs))
	if len(appUUIDs) == 0 {
		return byUUID, nil
	}

	var bundles []*models.ApplicationAssets
	if err := r.db.Where("app_uuid IN ?", appUUIDs).Find(&bundles).Error; err != nil {
		return nil, errs.NewDatabaseError("find", "application assets", err)
	}
	for _, bundle := range bundles {
		byUUID[bundle.AppUUID] = bundle
	}
	return byUUID, nil
}

// Add inserts the asset bundle. A second bundle for the same application is a conflict.
func (r *ApplicationAssetsRepo) Add(assets *models.ApplicationAssets) error {
	if err := r.db.Create(assets).Error; err != nil {
		return errs.NewDatabaseError("create", "application assets", err)
	}
	return nil
}
