package entities

import "time"

// Account is a campus user known locally. Login is the natural key shared
// with the upstream profile API; ID is assigned by the backing store.
type Account struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Login       string    `gorm:"column:login;uniqueIndex" json:"login"`
	DisplayName string    `gorm:"column:display_name" json:"display_name"`
	Level       float64   `gorm:"column:level" json:"level"`
	CampusName  string    `gorm:"column:campus_name" json:"campus_name"`
	Location    string    `gorm:"column:location" json:"location"`
	Favorites   []string  `gorm:"column:favorites;serializer:json" json:"favorites"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Account) TableName() string {
	return "users"
}
