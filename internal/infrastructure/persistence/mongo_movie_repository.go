package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/watchlist/backend/internal/domain/shared"
	"github.com/watchlist/backend/internal/domain/watchlist"
	"github.com/watchlist/backend/internal/infrastructure/telemetry"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.opentelemetry.io/otel/trace"
)

// movieDocument is the stored shape of a movie. Field names match documents
// written by earlier deployments of the watchlist, so existing data stays readable.
type movieDocument struct {
	ID        bson.ObjectID `bson:"_id"`
	Title     string        `bson:"title"`
	Year      string        `bson:"year"`
	Poster    string        `bson:"poster"`
	Watched   bool          `bson:"watched"`
	CreatedAt time.Time     `bson:"createdAt"`
}

func (d *movieDocument) toDomain() watchlist.Movie {
	return watchlist.Movie{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		Year:      d.Year,
		Poster:    d.Poster,
		Watched:   d.Watched,
		CreatedAt: d.CreatedAt,
	}
}

// MongoMovieRepository implements watchlist.MovieRepository on a MongoDB collection
type MongoMovieRepository struct {
	coll *mongo.Collection
}

// NewMongoMovieRepository creates a new MongoMovieRepository
func NewMongoMovieRepository(coll *mongo.Collection) *MongoMovieRepository {
	return &MongoMovieRepository{coll: coll}
}

// EnsureIndexes creates the (title, year) lookup index. It is not unique:
// duplicates are rejected by the service's pre-check only.
func (r *MongoMovieRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "title", Value: 1}, {Key: "year", Value: 1}},
		Options: options.Index().SetName("title_year"),
	})
	if err != nil {
		return fmt.Errorf("failed to create movie indexes: %w", err)
	}
	return nil
}

func (r *MongoMovieRepository) span(ctx context.Context, op string) (context.Context, trace.Span) {
	return telemetry.StartClientSpan(ctx, "mongodb", op, r.coll.Name())
}

// FindAll returns every movie in insertion order
func (r *MongoMovieRepository) FindAll(ctx context.Context) ([]watchlist.Movie, error) {
	ctx, span := r.span(ctx, "find")
	defer span.End()

	cursor, err := r.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, r.fault(span, err)
	}

	var docs []movieDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, r.fault(span, err)
	}

	movies := make([]watchlist.Movie, 0, len(docs))
	for i := range docs {
		movies = append(movies, docs[i].toDomain())
	}
	return movies, nil
}

// FindByTitleAndYear returns the movie matching title and year exactly
func (r *MongoMovieRepository) FindByTitleAndYear(ctx context.Context, title, year string) (*watchlist.Movie, error) {
	ctx, span := r.span(ctx, "findOne")
	defer span.End()

	return r.findOne(ctx, span, bson.D{{Key: "title", Value: title}, {Key: "year", Value: year}})
}

// FindByID returns the movie with the given id
func (r *MongoMovieRepository) FindByID(ctx context.Context, id string) (*watchlist.Movie, error) {
	ctx, span := r.span(ctx, "findOne")
	defer span.End()

	oid, ok := parseMovieID(id)
	if !ok {
		return nil, shared.ErrNotFound
	}
	return r.findOne(ctx, span, bson.D{{Key: "_id", Value: oid}})
}

func (r *MongoMovieRepository) findOne(ctx context.Context, span trace.Span, filter bson.D) (*watchlist.Movie, error) {
	var doc movieDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, shared.ErrNotFound
		}
		return nil, r.fault(span, err)
	}
	movie := doc.toDomain()
	return &movie, nil
}

// Insert stores a new movie and assigns its id and creation time
func (r *MongoMovieRepository) Insert(ctx context.Context, movie *watchlist.Movie) error {
	ctx, span := r.span(ctx, "insertOne")
	defer span.End()

	doc := movieDocument{
		ID:        bson.NewObjectID(),
		Title:     movie.Title,
		Year:      movie.Year,
		Poster:    movie.Poster,
		Watched:   movie.Watched,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return r.fault(span, err)
	}

	movie.ID = doc.ID.Hex()
	movie.CreatedAt = doc.CreatedAt
	return nil
}

// Save writes back the watched flag, the only mutable field
func (r *MongoMovieRepository) Save(ctx context.Context, movie *watchlist.Movie) error {
	ctx, span := r.span(ctx, "updateOne")
	defer span.End()

	oid, ok := parseMovieID(movie.ID)
	if !ok {
		return r.fault(span, fmt.Errorf("invalid movie id %q", movie.ID))
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "watched", Value: movie.Watched}}}},
	)
	if err != nil {
		return r.fault(span, err)
	}
	if res.MatchedCount == 0 {
		return r.fault(span, fmt.Errorf("movie %s no longer exists", movie.ID))
	}
	return nil
}

// DeleteByID removes the movie if present
func (r *MongoMovieRepository) DeleteByID(ctx context.Context, id string) error {
	ctx, span := r.span(ctx, "deleteOne")
	defer span.End()

	oid, ok := parseMovieID(id)
	if !ok {
		return shared.ErrNotFound
	}
	if _, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}}); err != nil {
		return r.fault(span, err)
	}
	return nil
}

func (r *MongoMovieRepository) fault(span trace.Span, err error) error {
	fault := shared.NewStorageFault(err)
	telemetry.RecordError(span, fault)
	return fault
}
