package models

import "time"

// Session backs the session cookie. The SQL session store persists it as a table,
// the Redis store as a JSON value.
type Session struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"userId" gorm:"index;not null"`
	Role      UserRole  `json:"role" gorm:"not null"`
	ExpiresAt time.Time `json:"expiresAt" gorm:"index"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
