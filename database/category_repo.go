package database

import (
	"github.com/rpupo63/appstore-backend/errs"
	"github.com/rpupo63/appstore-backend/models"
	"gorm.io/gorm"
)

type CategoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db}
}

// FindAll returns all categories ordered by id
func (r *CategoryRepo) FindAll() ([]*models.Category, error) {
	var categories []*models.Category
	if err := r.db.Order("id").Find(&categories).Error; err != nil {
		return nil, errs.NewDatabaseError("find", "categories", err)
	}
	return categories, nil
}

// FindByID returns a category by its ID
func (r *CategoryRepo) FindByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := r.db.First(&category, id).Error; err != nil {
		return nil, errs.NewDatabaseError("find", "category", err)
	}
	return &category, nil
}

// Add inserts a new category. Duplicate names are allowed.
func (r *CategoryRepo) Add(category *models.Category) error {
	if err := r.db.Create(category).Error; err != nil {
		return errs.NewDatabaseError("create", "category", err)
	}
	return nil
}
