package entities

import "time"

type EventType string

const (
	EventCampus    EventType = "Campus"
	EventHackathon EventType = "Hackathon"
)

// ScheduledEvent is an official campus calendar entry
type ScheduledEvent struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name" json:"name"`
	Date      time.Time `gorm:"column:date" json:"date"`
	Type      EventType `gorm:"column:type" json:"type"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for GORM
func (ScheduledEvent) TableName() string {
	return "events"
}

// CommunityEvent is a user-created event. It is mutable and deletable only
// by the account that owns it; the check lives in the service layer.
type CommunityEvent struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	AccountID   int64     `gorm:"column:account_id;index" json:"account_id"`
	Title       string    `gorm:"column:title" json:"title"`
	Description *string   `gorm:"column:description" json:"description,omitempty"`
	Location    *string   `gorm:"column:location" json:"location,omitempty"`
	Link        *string   `gorm:"column:link" json:"link,omitempty"`
	Date        time.Time `gorm:"column:date" json:"date"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (CommunityEvent) TableName() string {
	return "community_events"
}
