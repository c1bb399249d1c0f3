package server

import (
	"context"
	"sort"
	"sync"
	"time"

	"cinegate/cache"
	"cinegate/config"
	"cinegate/core/auth"
	"cinegate/core/tmdb"
	"cinegate/model"
	"cinegate/repository"
)

// fakeUserRepo is an in-memory UserRepository with the same duplicate
// semantics as the MySQL implementation.
type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*model.User

	failCreate error
	failLookup error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*model.User)}
}

func (r *fakeUserRepo) CreateUser(user *model.User) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failCreate != nil {
		return 0, r.failCreate
	}
	for _, u := range r.users {
		if u.Username == user.Username {
			return 0, repository.ErrDuplicateUsername
		}
		if u.Email == user.Email {
			return 0, repository.ErrDuplicateEmail
		}
	}

	r.nextID++
	stored := *user
	stored.ID = r.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.users[stored.ID] = &stored
	return stored.ID, nil
}

func (r *fakeUserRepo) GetUserByID(id int64) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failLookup != nil {
		return nil, r.failLookup
	}
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) GetUserByEmail(email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failLookup != nil {
		return nil, r.failLookup
	}
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetUserByUsername(username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failLookup != nil {
		return nil, r.failLookup
	}
	for _, u := range r.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) delete(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
}

// fakeMovieRepo records upserts in memory and signals each one on a channel
// so tests can wait for the handler's background tracking goroutine.
type fakeMovieRepo struct {
	mu     sync.Mutex
	movies map[int64]*model.Movie

	failUpsert error
	upserts    chan int64
}

func newFakeMovieRepo() *fakeMovieRepo {
	return &fakeMovieRepo{
		movies:  make(map[int64]*model.Movie),
		upserts: make(chan int64, 16),
	}
}

func (r *fakeMovieRepo) UpsertOnFetch(ctx context.Context, movie *model.Movie) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	defer func() { r.upserts <- movie.ID }()

	if r.failUpsert != nil {
		return r.failUpsert
	}

	if existing, ok := r.movies[movie.ID]; ok {
		existing.Title = movie.Title
		existing.Budget = movie.Budget
		existing.Revenue = movie.Revenue
		existing.FavoriteCount++
		return nil
	}

	stored := *movie
	stored.FavoriteCount = 1
	r.movies[stored.ID] = &stored
	return nil
}

func (r *fakeMovieRepo) ListByFavorite(ctx context.Context) ([]model.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Movie, 0, len(r.movies))
	for _, m := range r.movies {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FavoriteCount > out[j].FavoriteCount })
	return out, nil
}

func (r *fakeMovieRepo) GetByID(ctx context.Context, id int64) (*model.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.movies[id]; ok {
		copied := *m
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeMovieRepo) waitForUpsert(timeout time.Duration) (int64, bool) {
	select {
	case id := <-r.upserts:
		return id, true
	case <-time.After(timeout):
		return 0, false
	}
}

// newTestHandler builds an APIHandler on fakes. catalogURL may be empty for
// tests that never reach upstream.
func newTestHandler(userRepo repository.UserRepository, movieRepo repository.MovieRepository, catalogURL string) *APIHandler {
	return NewAPIHandler(
		userRepo,
		movieRepo,
		tmdb.NewClient(catalogURL, "test-key"),
		auth.NewTokenManager("test-secret", time.Hour),
		cache.NewCatalogCache(nil, time.Minute), // caching disabled
		&config.Config{},
	)
}
