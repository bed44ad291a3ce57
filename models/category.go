package models

// Category groups applications in the catalog. Names are not unique.
type Category struct {
	ID          uint   `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Name        string `json:"name" db:"name" gorm:"type:varchar(64);not null"`
	Description string `json:"description" db:"description" gorm:"type:text"`
}
