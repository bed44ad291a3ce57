package database

import (
	"github.com/google/uuid"
	"github.com/rpupo63/appstore-backend/models"
	"gorm.io/gorm"
)

type filterKind int

const (
	filterAll filterKind = iota
	filterByApp
	filterByCategoryExcluding
	filterByCategory
	filterActive
)

// ApplicationFilter selects which applications a catalog listing returns.
// Build one with ByAppID, ByCategoryExcluding, ByCategory, ActiveOnly or All.
type ApplicationFilter struct {
	kind       filterKind
	appUUID    uuid.UUID
	categoryID uint
}

// ByAppID matches the Active application with the given uuid.
func ByAppID(appUUID uuid.UUID) ApplicationFilter {
	return ApplicationFilter{kind: filterByApp, appUUID: appUUID}
}

// ByCategoryExcluding matches the Active applications of categoryID other than appUUID.
func ByCategoryExcluding(categoryID uint, appUUID uuid.UUID) ApplicationFilter {
	return ApplicationFilter{kind: filterByCategoryExcluding, appUUID: appUUID, categoryID: categoryID}
}

// ByCategory matches the Active applications of categoryID.
func ByCategory(categoryID uint) ApplicationFilter {
	return ApplicationFilter{kind: filterByCategory, categoryID: categoryID}
}

// ActiveOnly matches every Active application.
func ActiveOnly() ApplicationFilter {
	return ApplicationFilter{kind: filterActive}
}

// All matches every application regardless of status. Unlike every other
// filter it also returns Pending applications.
func All() ApplicationFilter {
	return ApplicationFilter{kind: filterAll}
}

func (f ApplicationFilter) apply(q *gorm.DB) *gorm.DB {
	switch f.kind {
	case filterByApp:
		q = q.Where("uuid = ?", f.appUUID)
	case filterByCategoryExcluding:
		q = q.Where("category_id = ?", f.categoryID).Where("uuid <> ?", f.appUUID)
	case filterByCategory:
		q = q.Where("category_id = ?", f.categoryID)
	case filterAll:
		return q
	}
	return q.Where("application_status = ?", models.StatusActive)
}
