package entities

import "time"

type ProjectStatus string

const (
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectActive     ProjectStatus = "active"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectFailed     ProjectStatus = "failed"
	ProjectOnHold     ProjectStatus = "on_hold"
)

// ActiveProjectStatuses are the statuses counted against the
// one-active-project-per-account rule.
var ActiveProjectStatuses = []ProjectStatus{ProjectInProgress, ProjectActive}

// IsActive reports whether the status counts as an active project
func (s ProjectStatus) IsActive() bool {
	return s == ProjectInProgress || s == ProjectActive
}

// Project is a tracked project belonging to one account. Teammates is
// ordered as delivered by the upstream team roster and is not deduplicated.
type Project struct {
	ID         int64         `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Login      string        `gorm:"column:login;index" json:"login"`
	Name       string        `gorm:"column:name" json:"name"`
	Deadline   time.Time     `gorm:"column:deadline" json:"deadline"`
	Teammates  []string      `gorm:"column:teammates;serializer:json" json:"teammates"`
	Difficulty string        `gorm:"column:difficulty" json:"difficulty"`
	Category   string        `gorm:"column:category" json:"category"`
	Completion int           `gorm:"column:completion" json:"completion"`
	Status     ProjectStatus `gorm:"column:status" json:"status"`
	CreatedAt  time.Time     `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time     `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Project) TableName() string {
	return "projects"
}
