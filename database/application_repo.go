package database

import (
	"github.com/google/uuid"
	"github.com/rpupo63/appstore-backend/errs"
	"github.com/rpupo63/appstore-backend/models"
	"gorm.io/gorm"
)

type ApplicationRepo struct {
	db *gorm.DB
}

func NewApplicationRepo(db *gorm.DB) *ApplicationRepo {
	return &ApplicationRepo{db}
}

// Find returns the applications matching filter in store order
func (r *ApplicationRepo) Find(filter ApplicationFilter) ([]*models.Application, error) {
	var applications []*models.Application
	if err := filter.apply(r.db.Model(&models.Application{})).Find(&applications).Error; err != nil {
		return nil, errs.NewDatabaseError("find", "applications", err)
	}
	return applications, nil
}

// FindByUUID returns an application by its uuid, whatever its status
func (r *ApplicationRepo) FindByUUID(appUUID uuid.UUID) (*models.Application, error) {
	var application models.Application
	if err := r.db.Where("uuid = ?", appUUID).First(&application).Error; err != nil {
		return nil, errs.NewDatabaseError("find", "application", err)
	}
	return &application, nil
}

// InstalledUUIDs returns the uuids of all applications flagged installed
func (r *ApplicationRepo) InstalledUUIDs() ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.Model(&models.Application{}).
		Where("installed = ?", true).
		Pluck("uuid", &ids).Error
	if err != nil {
		return nil, errs.NewDatabaseError("find", "installed applications", err)
	}
	return ids, nil
}

// Add inserts a new application
func (r *ApplicationRepo) Add(application *models.Application) error {
	if err := r.db.Create(application).Error; err != nil {
		return errs.NewDatabaseError("create", "application", err)
	}
	return nil
}

// SetInstalled updates the installed flag of one application. An unknown
// uuid is reported as not found instead of a silent zero-row update.
func (r *ApplicationRepo) SetInstalled(appUUID uuid.UUID, installed bool) error {
	result := r.db.Model(&models.Application{}).
		Where("uuid = ?", appUUID).
		Update("installed", installed)
	if result.Error != nil {
		return errs.NewDatabaseError("update", "application", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewNotFound("application")
	}
	return nil
}

// Activate moves a Pending application to Active. Any other starting state
// fails with an invalid transition error and changes nothing.
func (r *ApplicationRepo) Activate(appUUID uuid.UUID) error {
	result := r.db.Model(&models.Application{}).
		Where("uuid = ? AND application_status = ?", appUUID, models.StatusPending).
		Update("application_status", models.StatusActive)
	if result.Error != nil {
		return errs.NewDatabaseError("activate", "application", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewInvalidTransitionError(appUUID.String(), string(models.StatusPending), string(models.StatusActive))
	}
	return nil
}
