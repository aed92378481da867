package constants

import (
	"fmt"
	"time"
)

// Cache key namespace. These are shared with every process instance that
// talks to the same Redis, so the exact spelling matters.
const (
	KeyOAuthToken  = "42api:oauth_token"
	KeyOnlineUsers = "users:online"
)

// TTL policy per access pattern.
const (
	ListTTL     = 180 * time.Second
	ItemTTL     = 600 * time.Second
	AvatarTTL   = 6 * time.Hour
	CampusIDTTL = 24 * time.Hour
	PeersTTL    = 60 * time.Second
	OnlineTTL   = 300 * time.Second

	// A token is treated as expired once it is within this margin of its
	// real expiry, both in memory and in the shared cache.
	TokenSafetyMargin = 60 * time.Second
	TokenMinTTL       = 60 * time.Second
)

// Upstream API tuning.
const (
	UpstreamTimeout  = 10 * time.Second
	UpstreamPageSize = 100
)

// Profile mapping limits.
const (
	MaxFavoriteSkills       = 10
	ProjectDeadlineFallback = 30 * 24 * time.Hour
)

func AvatarKey(login string) string {
	return "42api:avatar:" + login
}

func CampusIDKey(slug string) string {
	return "42api:campus:id:" + slug
}

func ActivePeersKey(campusID int) string {
	return fmt.Sprintf("peers:active:%d", campusID)
}

func MessagesUserKey(login string) string {
	return "messages:user:" + login
}
