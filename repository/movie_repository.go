package repository

import (
	"context"
	"fmt"

	"cinegate/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MovieRepository defines the interface for movie tracking operations.
type MovieRepository interface {
	// UpsertOnFetch records one detail fetch: first fetch inserts the row
	// with favorite_count=1, later fetches refresh title/budget/revenue and
	// increment favorite_count by exactly 1.
	UpsertOnFetch(ctx context.Context, movie *model.Movie) error
	// ListByFavorite returns movies ordered by favorite_count descending.
	ListByFavorite(ctx context.Context) ([]model.Movie, error)
	// GetByID retrieves one tracked movie. Returns (nil, nil) when absent.
	GetByID(ctx context.Context, id int64) (*model.Movie, error)
}

type gormMovieRepository struct {
	db *gorm.DB
}

// NewGormMovieRepository creates a movie repository on a GORM connection.
func NewGormMovieRepository(db *gorm.DB) MovieRepository {
	return &gormMovieRepository{db: db}
}

// UpsertOnFetch runs as a single INSERT ... ON DUPLICATE KEY UPDATE so two
// concurrent fetches for the same id cannot lose an increment. The count is
// bumped inside the statement, never read-modify-written from Go.
func (r *gormMovieRepository) UpsertOnFetch(ctx context.Context, movie *model.Movie) error {
	movie.FavoriteCount = 1

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"title":          movie.Title,
			"budget":         movie.Budget,
			"revenue":        movie.Revenue,
			"favorite_count": gorm.Expr("favorite_count + 1"),
		}),
	}).Create(movie).Error
	if err != nil {
		return fmt.Errorf("failed to upsert movie %d: %w", movie.ID, err)
	}
	return nil
}

// ListByFavorite returns all tracked movies, most fetched first. Soft-deleted
// rows are excluded by GORM's default scope.
func (r *gormMovieRepository) ListByFavorite(ctx context.Context) ([]model.Movie, error) {
	var movies []model.Movie
	err := r.db.WithContext(ctx).Order("favorite_count DESC").Find(&movies).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list movies by favorite count: %w", err)
	}
	return movies, nil
}

// GetByID retrieves one tracked movie by upstream id.
func (r *gormMovieRepository) GetByID(ctx context.Context, id int64) (*model.Movie, error) {
	var movie model.Movie
	err := r.db.WithContext(ctx).First(&movie, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load movie %d: %w", id, err)
	}
	return &movie, nil
}
