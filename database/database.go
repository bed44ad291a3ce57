package database

import (
	"gorm.io/gorm"
)

type Database struct {
	db                    *gorm.DB
	categoryRepo          *CategoryRepo
	developerRepo         *DeveloperRepo
	applicationRepo       *ApplicationRepo
	applicationAssetsRepo *ApplicationAssetsRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:                    db,
		categoryRepo:          NewCategoryRepo(db),
		developerRepo:         NewDeveloperRepo(db),
		applicationRepo:       NewApplicationRepo(db),
		applicationAssetsRepo: NewApplicationAssetsRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) CategoryRepo() *CategoryRepo {
	return d.categoryRepo
}

func (d Database) DeveloperRepo() *DeveloperRepo {
	return d.developerRepo
}

func (d Database) ApplicationRepo() *ApplicationRepo {
	return d.applicationRepo
}

func (d Database) ApplicationAssetsRepo() *ApplicationAssetsRepo {
	return d.applicationAssetsRepo
}

// GetDB returns the underlying database connection for debugging purposes
func (d Database) GetDB() *gorm.DB {
	return d.db
}

// Transaction runs fn as one unit of work. Every repository reached through
// tx shares the same transaction; it commits when fn returns nil and rolls
// back otherwise.
func (d Database) Transaction(fn func(tx Database) error) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}
