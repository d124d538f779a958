package players

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
)

// New creates a new PlayerStore.
func New(db *sql.DB) PlayerStore {
	return &store{
		db: db,
	}
}

// Upsert inserts a profile or refreshes all public fields of an existing one.
func (s *store) Upsert(p Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.upsertLocked(p)
}

// UpsertAll upserts a batch of profiles inside a single transaction.
func (s *store) UpsertAll(profiles []Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO players (id, name, surname, avatar_url, level)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			surname = excluded.surname,
			avatar_url = excluded.avatar_url,
			level = excluded.level;
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, p := range profiles {
		if _, err := stmt.Exec(p.ID, p.Name, p.Surname, p.AvatarURL, p.Level); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to upsert player %s: %w", p.ID, err)
		}
	}

	return tx.Commit()
}

func (s *store) upsertLocked(p Profile) error {
	_, err := s.db.Exec(`
		INSERT INTO players (id, name, surname, avatar_url, level)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			surname = excluded.surname,
			avatar_url = excluded.avatar_url,
			level = excluded.level;
	`, p.ID, p.Name, p.Surname, p.AvatarURL, p.Level)
	if err != nil {
		log.Error("Failed to upsert player", "error", err, "playerID", p.ID)
		return err
	}
	return nil
}

// Get retrieves a single profile by ID.
func (s *store) Get(playerID string) (*Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow("SELECT id, name, surname, avatar_url, level FROM players WHERE id = ?", playerID)

	var p Profile
	var name, surname sql.NullString
	if err := row.Scan(&p.ID, &name, &surname, &p.AvatarURL, &p.Level); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("player %s not found", playerID)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	p.Name = name.String
	p.Surname = surname.String
	return &p, nil
}

// GetAll retrieves every profile, ordered by name.
func (s *store) GetAll() ([]Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, name, surname, avatar_url, level FROM players ORDER BY name")
	if err != nil {
		log.Error("Failed to query all players", "error", err)
		return nil, err
	}
	defer rows.Close()

	var profiles []Profile
	for rows.Next() {
		var p Profile
		var name, surname sql.NullString
		if err := rows.Scan(&p.ID, &name, &surname, &p.AvatarURL, &p.Level); err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		p.Name = name.String
		p.Surname = surname.String
		profiles = append(profiles, p)
	}
	return profiles, nil
}

// IsKnown reports whether a player profile exists.
func (s *store) IsKnown(playerID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM players WHERE id = ?)", playerID).Scan(&exists)
	if err != nil {
		log.Error("Failed to check if player exists", "error", err, "playerID", playerID)
		return false
	}
	return exists
}
