package entities

import "time"

// Message is a direct message between two distinct logins. CreatedAt is
// assigned by the store.
type Message struct {
	ID        int64     `db:"id" json:"id"`
	FromLogin string    `db:"from_login" json:"from"`
	ToLogin   string    `db:"to_login" json:"to"`
	Text      string    `db:"text" json:"text"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
