package models

import "github.com/google/uuid"

// Placeholder file names used for asset slots that were not uploaded.
const (
	PlaceholderIcon       = "app_icon.png"
	PlaceholderScreenshot = "browser.png"
	PlaceholderVideo      = "None"
)

// ApplicationAssets is the media bundle of one application. File names are
// relative to the application's assets directory.
type ApplicationAssets struct {
	AppUUID         uuid.UUID `json:"app_uuid" db:"app_uuid" gorm:"type:uuid;primaryKey"`
	Icon            string    `json:"icon" db:"icon" gorm:"type:varchar(64);not null"`
	ScreenShotOne   string    `json:"screenshot_one" db:"screenshot_one" gorm:"column:screenshot_one;type:varchar(64);not null"`
	ScreenShotTwo   string    `json:"screenshot_two" db:"screenshot_two" gorm:"column:screenshot_two;type:varchar(64);not null"`
	ScreenShotThree string    `json:"screenshot_three" db:"screenshot_three" gorm:"column:screenshot_three;type:varchar(64);not null"`
	ScreenShotFour  string    `json:"screenshot_four" db:"screenshot_four" gorm:"column:screenshot_four;type:varchar(64);not null"`
	Video           string    `json:"video" db:"video" gorm:"type:varchar(64);not null"`
}

func (ApplicationAssets) TableName() string {
	return "application_assets"
}

// NewPlaceholderAssets returns a bundle for appUUID with every slot set to its placeholder.
func NewPlaceholderAssets(appUUID uuid.UUID) ApplicationAssets {
	return ApplicationAssets{
		AppUUID:         appUUID,
		Icon:            PlaceholderIcon,
		ScreenShotOne:   PlaceholderScreenshot,
		ScreenShotTwo:   PlaceholderScreenshot,
		ScreenShotThree: PlaceholderScreenshot,
		ScreenShotFour:  PlaceholderScreenshot,
		Video:           PlaceholderVideo,
	}
}
