package main

import (
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/mauv0809/padel-reserva/internal/slots"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := make(map[string]string)
	required := []string{"TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN"}

	for _, key := range required {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		} else {
			log.Fatalf("Error: Required environment variable %s is not set.", key)
		}
	}
	return config
}

type seedPlayer struct {
	ID      string
	Name    string
	Surname string
	Level   int
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	// Connect directly to the primary database
	dbURL := fmt.Sprintf("%s?authToken=%s", cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	db, err := sql.Open("libsql", dbURL)
	if err != nil {
		log.Fatalf("Failed to open primary database: %s", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to primary database: %s", err)
	}

	log.Info("Successfully connected to the primary database.")

	dummyPlayers := []seedPlayer{
		{ID: "player-1", Name: "Seeder", Surname: "Player A", Level: 4},
		{ID: "player-2", Name: "Seeder", Surname: "Player B", Level: 5},
		{ID: "player-3", Name: "Seeder", Surname: "Player C", Level: 6},
		{ID: "player-4", Name: "Seeder", Surname: "Player D", Level: 3},
	}

	for _, p := range dummyPlayers {
		_, err := db.Exec("INSERT OR IGNORE INTO players (id, name, surname, level) VALUES (?, ?, ?, ?)", p.ID, p.Name, p.Surname, p.Level)
		if err != nil {
			log.Fatalf("Failed to insert dummy player %s: %s", p.ID, err)
		}
	}
	log.Info("Ensured dummy players exist.")

	starts := slots.StartTimes()
	log.Info("Preparing to insert dummy bookings...", "days", slots.HorizonDays, "slots_per_day", len(starts))
	startTime := time.Now()

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("Failed to begin transaction: %s", err)
	}

	var bookingValues []string
	var bookingArgs []interface{}
	var rosterValues []string
	var rosterArgs []interface{}

	today := slots.DateOf(time.Now())
	inserted := 0
	for d := 1; d <= slots.HorizonDays; d++ {
		day := today.AddDays(d)
		for _, start := range starts {
			// Leave roughly half the calendar free so the seeded data has
			// open slots to book against.
			if rand.Intn(2) == 0 {
				continue
			}
			owner := dummyPlayers[rand.Intn(len(dummyPlayers))]
			id := uuid.NewString()

			bookingValues = append(bookingValues, "(?, ?, ?, ?, ?, ?, ?)")
			bookingArgs = append(bookingArgs,
				id,
				day.String(),
				start.String(),
				slots.StoredEnd(start).String(),
				owner.ID,
				false,
				time.Now().Unix(),
			)
			rosterValues = append(rosterValues, "(?, ?, ?)")
			rosterArgs = append(rosterArgs, id, owner.ID, time.Now().Unix())
			inserted++
		}
	}

	if len(bookingValues) > 0 {
		stmt := fmt.Sprintf(`
			INSERT OR IGNORE INTO bookings (id, date, start_time, end_time, owner_id, is_private, created_at)
			VALUES %s;`, strings.Join(bookingValues, ","))
		if _, err := tx.Exec(stmt, bookingArgs...); err != nil {
			tx.Rollback()
			log.Fatalf("Failed to insert dummy bookings: %s", err)
		}

		stmt = fmt.Sprintf(`
			INSERT OR IGNORE INTO booking_players (booking_id, user_id, joined_at)
			VALUES %s;`, strings.Join(rosterValues, ","))
		if _, err := tx.Exec(stmt, rosterArgs...); err != nil {
			tx.Rollback()
			log.Fatalf("Failed to insert dummy roster entries: %s", err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit transaction: %s", err)
	}

	duration := time.Since(startTime)
	log.Info("Successfully seeded dummy bookings.", "count", inserted, "duration", duration)
}
