package players

// PlayerStore defines the interface for the player profile mirror.
type PlayerStore interface {
	Upsert(p Profile) error
	UpsertAll(profiles []Profile) error
	Get(playerID string) (*Profile, error)
	GetAll() ([]Profile, error)
	IsKnown(playerID string) bool
}
