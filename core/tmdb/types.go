package tmdb

// The projections below define everything this service ever exposes from the
// upstream catalog. Decoding through them drops all other upstream fields.

// MovieDetail is the restricted detail view of one movie.
type MovieDetail struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Overview    string `json:"overview"`
	ReleaseDate string `json:"release_date"`
	PosterPath  string `json:"poster_path"`
	Budget      int64  `json:"budget"`
	Revenue     int64  `json:"revenue"`
}

// NowPlayingMovie is one element of the now-playing list.
type NowPlayingMovie struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Popularity   float64 `json:"popularity"`
	PosterPath   string  `json:"poster_path,omitempty"`
	BackdropPath string  `json:"backdrop_path,omitempty"`
	ReleaseDate  string  `json:"release_date,omitempty"`
}

// AiringTodayShow is one element of the airing-today TV list.
type AiringTodayShow struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Popularity   float64 `json:"popularity"`
	PosterPath   string  `json:"poster_path,omitempty"`
	BackdropPath string  `json:"backdrop_path,omitempty"`
	FirstAirDate string  `json:"first_air_date,omitempty"`
}
