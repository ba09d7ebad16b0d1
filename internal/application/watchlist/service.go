// Package watchlist holds the application service behind the movie API.
package watchlist

import (
	"context"
	"errors"

	"github.com/watchlist/backend/internal/domain/shared"
	"github.com/watchlist/backend/internal/domain/watchlist"
	"github.com/watchlist/backend/internal/infrastructure/logger"
	"github.com/watchlist/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const spanService = "watchlist"

// Operation names used for spans, logs and metrics
const (
	OpList   = "list"
	OpAdd    = "add"
	OpToggle = "toggle"
	OpDelete = "delete"
)

// ErrDuplicateMovie is returned by Add when a movie with the same title and year exists
var ErrDuplicateMovie = shared.NewDomainError(shared.KindConflict, "Movie with the same title and year already exists")

// Service implements the watchlist operations on top of a MovieRepository.
// It holds no state of its own.
type Service struct {
	repo    watchlist.MovieRepository
	logger  *zap.Logger
	metrics *telemetry.WatchlistMetrics
}

// NewService creates a new Service. metrics may be nil.
func NewService(repo watchlist.MovieRepository, log *zap.Logger, metrics *telemetry.WatchlistMetrics) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		repo:    repo,
		logger:  log.Named("watchlist"),
		metrics: metrics,
	}
}

// List returns every movie in insertion order
func (s *Service) List(ctx context.Context) ([]MovieResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, spanService, OpList)
	defer span.End()

	movies, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, s.fail(ctx, span, OpList, err)
	}

	s.metrics.RecordOperation(ctx, OpList, telemetry.OutcomeSuccess)
	return ToMovieResponses(movies), nil
}

// Add stores a new movie unless one with the same title and year exists.
// The existence check and the insert are separate calls, so two concurrent
// identical adds can both succeed.
func (s *Service) Add(ctx context.Context, in AddMovieInput) (*MovieResponse, error) {
	movie := watchlist.NewMovie(in.Title, in.Year, in.Poster, in.Watched)

	ctx, span := telemetry.StartServiceSpan(ctx, spanService, OpAdd,
		telemetry.AttrMovieTitle.String(movie.Title),
		telemetry.AttrMovieYear.String(movie.Year),
	)
	defer span.End()

	_, err := s.repo.FindByTitleAndYear(ctx, movie.Title, movie.Year)
	switch {
	case err == nil:
		return nil, s.fail(ctx, span, OpAdd, ErrDuplicateMovie)
	case !errors.Is(err, shared.ErrNotFound):
		return nil, s.fail(ctx, span, OpAdd, err)
	}

	if err := s.repo.Insert(ctx, movie); err != nil {
		return nil, s.fail(ctx, span, OpAdd, err)
	}

	span.SetAttributes(telemetry.AttrMovieID.String(movie.ID))
	s.log(ctx).Info("movie added",
		zap.String("movie_id", movie.ID),
		zap.String("title", movie.Title),
		zap.String("year", movie.Year),
	)
	s.metrics.RecordOperation(ctx, OpAdd, telemetry.OutcomeSuccess)

	resp := ToMovieResponse(movie)
	return &resp, nil
}

// ToggleWatched flips the watched flag of the movie with the given id
func (s *Service) ToggleWatched(ctx context.Context, id string) (*MovieResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, spanService, OpToggle,
		telemetry.AttrMovieID.String(id),
	)
	defer span.End()

	movie, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, span, OpToggle, err)
	}

	movie.ToggleWatched()
	if err := s.repo.Save(ctx, movie); err != nil {
		return nil, s.fail(ctx, span, OpToggle, err)
	}

	s.log(ctx).Info("movie watched status toggled",
		zap.String("movie_id", movie.ID),
		zap.Bool("watched", movie.Watched),
	)
	s.metrics.RecordOperation(ctx, OpToggle, telemetry.OutcomeSuccess)
	s.metrics.RecordToggle(ctx, movie.Watched)

	resp := ToMovieResponse(movie)
	return &resp, nil
}

// Delete removes the movie with the given id. Deleting an unknown id succeeds.
func (s *Service) Delete(ctx context.Context, id string) error {
	ctx, span := telemetry.StartServiceSpan(ctx, spanService, OpDelete,
		telemetry.AttrMovieID.String(id),
	)
	defer span.End()

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return s.fail(ctx, span, OpDelete, err)
	}

	s.log(ctx).Info("movie deleted", zap.String("movie_id", id))
	s.metrics.RecordOperation(ctx, OpDelete, telemetry.OutcomeSuccess)
	return nil
}

// fail records err on the span, logs and counts it, and returns it unchanged.
func (s *Service) fail(ctx context.Context, span trace.Span, op string, err error) error {
	telemetry.RecordError(span, err)

	kind := shared.KindOf(err)
	s.metrics.RecordOperation(ctx, op, outcomeFor(kind))

	fields := []zap.Field{zap.String("operation", op), zap.String("kind", string(kind)), zap.Error(err)}
	if kind == shared.KindStorageFault {
		s.log(ctx).Error("watchlist operation failed", fields...)
	} else {
		s.log(ctx).Info("watchlist operation rejected", fields...)
	}
	return err
}

func (s *Service) log(ctx context.Context) *zap.Logger {
	l := s.logger
	if id := logger.GetRequestID(ctx); id != "" {
		l = l.With(zap.String("request_id", id))
	}
	return logger.WithTraceContext(ctx, l)
}

func outcomeFor(kind shared.ErrorKind) string {
	switch kind {
	case shared.KindConflict:
		return telemetry.OutcomeConflict
	case shared.KindNotFound:
		return telemetry.OutcomeNotFound
	default:
		return telemetry.OutcomeFault
	}
}
