package watchlist

import "context"

// MovieRepository is the persistence contract for movies.
//
// Lookups that find nothing return shared.ErrNotFound; every driver failure
// is reported as a shared storage fault.
type MovieRepository interface {
	// FindAll returns every movie in insertion order.
	FindAll(ctx context.Context) ([]Movie, error)
	// FindByTitleAndYear returns the movie with exactly this title and year.
	FindByTitleAndYear(ctx context.Context, title, year string) (*Movie, error)
	// FindByID returns the movie with the given id. Malformed ids are reported as not found.
	FindByID(ctx context.Context, id string) (*Movie, error)
	// Insert stores a new movie and assigns its ID and CreatedAt.
	Insert(ctx context.Context, movie *Movie) error
	// Save writes back a stored movie. A movie that disappeared since it was
	// read is a storage fault, not a not-found.
	Save(ctx context.Context, movie *Movie) error
	// DeleteByID removes the movie if present. Deleting an absent but well-formed
	// id is not an error; a malformed id is reported as not found.
	DeleteByID(ctx context.Context, id string) error
}
