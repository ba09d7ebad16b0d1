package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/watchlist/backend/internal/domain/shared"
	"github.com/watchlist/backend/internal/domain/watchlist"
	"github.com/watchlist/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormMovieRepository implements watchlist.MovieRepository using GORM
type GormMovieRepository struct {
	db *gorm.DB
}

// NewGormMovieRepository creates a new GormMovieRepository
func NewGormMovieRepository(db *gorm.DB) *GormMovieRepository {
	return &GormMovieRepository{db: db}
}

// FindAll returns every movie in insertion order
func (r *GormMovieRepository) FindAll(ctx context.Context) ([]watchlist.Movie, error) {
	var rows []models.MovieModel
	if err := r.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, shared.NewStorageFault(err)
	}

	movies := make([]watchlist.Movie, 0, len(rows))
	for i := range rows {
		movies = append(movies, *rows[i].ToDomain())
	}
	return movies, nil
}

// FindByTitleAndYear returns the movie matching title and year exactly
func (r *GormMovieRepository) FindByTitleAndYear(ctx context.Context, title, year string) (*watchlist.Movie, error) {
	var row models.MovieModel
	err := r.db.WithContext(ctx).
		Where("title = ? AND year = ?", title, year).
		First(&row).Error
	return r.single(&row, err)
}

// FindByID returns the movie with the given id
func (r *GormMovieRepository) FindByID(ctx context.Context, id string) (*watchlist.Movie, error) {
	if _, ok := parseMovieID(id); !ok {
		return nil, shared.ErrNotFound
	}

	var row models.MovieModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	return r.single(&row, err)
}

func (r *GormMovieRepository) single(row *models.MovieModel, err error) (*watchlist.Movie, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, shared.NewStorageFault(err)
	}
	return row.ToDomain(), nil
}

// Insert stores a new movie and assigns its id and creation time
func (r *GormMovieRepository) Insert(ctx context.Context, movie *watchlist.Movie) error {
	row := models.MovieModelFromDomain(movie)
	row.ID = newMovieID()
	// Millisecond precision matches what the Mongo backend can store
	row.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return shared.NewStorageFault(err)
	}

	movie.ID = row.ID
	movie.CreatedAt = row.CreatedAt
	return nil
}

// Save writes back the watched flag, the only mutable field
func (r *GormMovieRepository) Save(ctx context.Context, movie *watchlist.Movie) error {
	result := r.db.WithContext(ctx).
		Model(&models.MovieModel{}).
		Where("id = ?", movie.ID).
		Update("watched", movie.Watched)
	if result.Error != nil {
		return shared.NewStorageFault(result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewStorageFault(fmt.Errorf("movie %s no longer exists", movie.ID))
	}
	return nil
}

// DeleteByID removes the movie if present
func (r *GormMovieRepository) DeleteByID(ctx context.Context, id string) error {
	if _, ok := parseMovieID(id); !ok {
		return shared.ErrNotFound
	}
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.MovieModel{}).Error; err != nil {
		return shared.NewStorageFault(err)
	}
	return nil
}
