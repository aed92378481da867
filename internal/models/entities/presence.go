package entities

import "time"

// PresencePeer is one account currently active at a campus. AccountID is 0
// when no local account could be resolved; AvatarURL is empty when the
// avatar lookup failed.
type PresencePeer struct {
	Login     string    `json:"login"`
	AccountID int64     `json:"account_id"`
	Host      string    `json:"host"`
	BeginAt   time.Time `json:"begin_at"`
	AvatarURL string    `json:"avatar_url,omitempty"`
}

// PresenceSnapshot is the cached answer to "who is active at this campus".
// Stale is set when the snapshot is served as a fallback after an upstream
// failure.
type PresenceSnapshot struct {
	CampusID int            `json:"campus_id"`
	Count    int            `json:"count"`
	Peers    []PresencePeer `json:"peers"`
	Stale    bool           `json:"stale,omitempty"`
}
