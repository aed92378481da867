package dtos

import "time"

// DTOs for the 42 Intra API. The upstream payloads are large and loosely
// typed; only the fields the sync engine consumes are modeled here, and they
// are converted into internal entities at the provider boundary.

// TokenResponse is the answer to a client-credentials grant
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// IntraUser is the profile shape returned by GET /users/{login}
type IntraUser struct {
	ID            int64        `json:"id"`
	Login         string       `json:"login"`
	UsualFullName string       `json:"usual_full_name"`
	FirstName     string       `json:"first_name"`
	LastName      string       `json:"last_name"`
	Location      *string      `json:"location"`
	Image         IntraImage   `json:"image"`
	CursusUsers   []CursusUser `json:"cursus_users"`
	Campus        []Campus     `json:"campus"`
}

type IntraImage struct {
	Link string `json:"link"`
}

// CursusUser is one curriculum enrollment inside a profile
type CursusUser struct {
	Level  float64      `json:"level"`
	Skills []CursusSkill `json:"skills"`
	Cursus Cursus       `json:"cursus"`
}

type CursusSkill struct {
	Name  string  `json:"name"`
	Level float64 `json:"level"`
}

type Cursus struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Kind string `json:"kind"`
}

// Campus is one campus row, both inside a profile and in GET /campus listings
type Campus struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	City string `json:"city"`
}

// ProjectEnrollment is one row of GET /users/{login}/projects_users
type ProjectEnrollment struct {
	Status    string       `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	Project   IntraProject `json:"project"`
	Teams     []IntraTeam  `json:"teams"`
}

type IntraProject struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type IntraTeam struct {
	TerminatingAt *time.Time      `json:"terminating_at"`
	Users         []IntraTeamUser `json:"users"`
}

type IntraTeamUser struct {
	Login string `json:"login"`
}

// CampusLocation is one row of GET /campus/{id}/locations
type CampusLocation struct {
	Host    string            `json:"host"`
	BeginAt *time.Time        `json:"begin_at"`
	EndAt   *time.Time        `json:"end_at"`
	User    CampusLocationUser `json:"user"`
}

type CampusLocationUser struct {
	ID    int64      `json:"id"`
	Login string     `json:"login"`
	Image IntraImage `json:"image"`
}
