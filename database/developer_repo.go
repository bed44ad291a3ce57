package database

import (
	"github.com/rpupo63/appstore-backend/errs"
	"github.com/rpupo63/appstore-backend/models"
	"gorm.io/gorm"
)

type DeveloperRepo struct {
	db *gorm.DB
}

func NewDeveloperRepo(db *gorm.DB) *DeveloperRepo {
	return &DeveloperRepo{db}
}

// FindAll returns all developers ordered by user id
func (r *DeveloperRepo) FindAll() ([]*models.Developer, error) {
	var developers []*models.Developer
	if err := r.db.Order("user_id").Find(&developers).Error; err != nil {
		return nil, errs.NewDatabaseError("find", "developers", err)
	}
	return developers, nil
}

// FindByUserID returns the developer tied to userID
func (r *DeveloperRepo) FindByUserID(userID uint) (*models.Developer, error) {
	var developer models.Developer
	if err := r.db.Where("user_id = ?", userID).First(&developer).Error; err != nil {
		return nil, errs.NewDatabaseError("find", "developer", err)
	}
	return &developer, nil
}

// FindByUserIDs returns the developers of userIDs keyed by user id.
// Missing ids are simply absent from the map.
func (r *DeveloperRepo) FindByUserIDs(userIDs []uint) (map[uint]*models.Developer, error) {
	byID := make(map[uint]*models.Developer, len(userIDs))
	if len(userIDs) == 0 {
		return byID, nil
	}

	var developers []*models.Developer
	if err := r.db.Where("user_id IN ?", userIDs).Find(&developers).Error; err != nil {
		return nil, errs.NewDatabaseError("find", "developers", err)
	}
	for _, developer := range developers {
		byID[developer.UserID] = developer
	}
	return byID, nil
}

// Add inserts a new developer
func (r *DeveloperRepo) Add(developer *models.Developer) error {
	if err := r.db.Create(developer).Error; err != nil {
		return errs.NewDatabaseError("create", "developer", err)
	}
	return nil
}
