package players

import (
	"database/sql"
	"sync"
)

// store handles all database operations for player profiles.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Profile is the public part of a player record: what roster listings and
// match cards are allowed to show. Identity itself lives with the external
// auth provider; this table only mirrors the public fields.
type Profile struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Surname   string  `json:"surname"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Level     int     `json:"level"`
}
