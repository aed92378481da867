package dtos

import "time"

// APIResponse is the uniform JSON envelope for every handler
type APIResponse[T any] struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Data      *T        `json:"data,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// HealthResponse reports process and dependency status
type HealthResponse struct {
	Status   string        `json:"status"`
	Uptime   string        `json:"uptime"`
	Database string        `json:"database"`
	Cache    string        `json:"cache"`
	Latency  time.Duration `json:"latency_ms"`
}

// OnlineUsersResponse is the cached roster of currently-online logins
type OnlineUsersResponse struct {
	Count  int      `json:"count"`
	Logins []string `json:"logins"`
}
