package dtos

import (
	"time"

	"campus-hub/agora/internal/models/entities"
)

type CreateAccountReq struct {
	Login       string   `json:"login"`
	DisplayName string   `json:"display_name"`
	Level       float64  `json:"level"`
	CampusName  string   `json:"campus_name"`
	Location    string   `json:"location"`
	Favorites   []string `json:"favorites"`
}

type CreateProjectReq struct {
	Login      string                 `json:"login"`
	Name       string                 `json:"name"`
	Deadline   time.Time              `json:"deadline"`
	Teammates  []string               `json:"teammates"`
	Difficulty string                 `json:"difficulty"`
	Category   string                 `json:"category"`
	Completion int                    `json:"completion"`
	Status     entities.ProjectStatus `json:"status"`
}

type CreateScheduledEventReq struct {
	Name string             `json:"name"`
	Date time.Time          `json:"date"`
	Type entities.EventType `json:"type"`
}

type CreateCommunityEventReq struct {
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Location    *string   `json:"location"`
	Link        *string   `json:"link"`
	Date        time.Time `json:"date"`
}

type SendMessageReq struct {
	To   string `json:"to"`
	Text string `json:"text"`
}
