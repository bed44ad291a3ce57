package models

import "github.com/google/uuid"

// Application is an uploaded package registered in the catalog.
type Application struct {
	ID          uint              `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	UUID        uuid.UUID         `json:"uuid" db:"uuid" gorm:"type:uuid;uniqueIndex;not null"`
	CategoryID  uint              `json:"category_id" db:"category_id" gorm:"index;not null"`
	DeveloperID uint              `json:"developer_id" db:"developer_id" gorm:"index;not null"`
	Name        string            `json:"name" db:"name" gorm:"type:varchar(128);not null"`
	Version     string            `json:"version" db:"version" gorm:"type:varchar(32)"`
	Description string            `json:"description" db:"description" gorm:"type:text"`
	Size        int64             `json:"size" db:"size" gorm:"not null;default:0"`
	Permission  string            `json:"permission" db:"permission" gorm:"type:varchar(128)"`
	OSVersion   string            `json:"os_version" db:"os_version" gorm:"column:os_version;type:varchar(32)"`
	LaunchURL   string            `json:"launch_url" db:"launch_url" gorm:"column:launch_url;type:text"`
	Status      ApplicationStatus `json:"application_status" db:"application_status" gorm:"column:application_status;type:varchar(16);not null;default:Pending;index"`
	Installed   bool              `json:"installed" db:"installed" gorm:"not null;default:false;index"`
	Downloads   int64             `json:"downloads" db:"downloads" gorm:"not null;default:0"`
}
