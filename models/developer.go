package models

// Developer is keyed by the user id of the identity that publishes applications.
type Developer struct {
	UserID uint   `json:"user_id" db:"user_id" gorm:"primaryKey;autoIncrement:false"`
	Name   string `json:"name" db:"name" gorm:"type:varchar(64);not null"`
}
