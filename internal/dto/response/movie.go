package response

import (
	"time"

	"ticket-portal/internal/data/entity"
)

type MovieResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Duration    int       `json:"duration"`
	PosterURL   *string   `json:"poster_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type ShowtimeResponse struct {
	ID         string `json:"id"`
	MovieID    string `json:"movie_id"`
	MovieTitle string `json:"movie_title,omitempty"`
	ShowDate   string `json:"show_date"`
	ShowTime   string `json:"show_time"`
}

func MovieToResponse(movie *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:          movie.ID.String(),
		Title:       movie.Title,
		Description: movie.Description,
		Duration:    movie.Duration,
		PosterURL:   movie.PosterURL,
		CreatedAt:   movie.CreatedAt,
	}
}

func MoviesToResponse(movies []*entity.Movie) []MovieResponse {
	out := make([]MovieResponse, 0, len(movies))
	for _, movie := range movies {
		out = append(out, MovieToResponse(movie))
	}
	return out
}

func ShowtimeToResponse(showtime *entity.Showtime, movieTitle string) ShowtimeResponse {
	return ShowtimeResponse{
		ID:         showtime.ID.String(),
		MovieID:    showtime.MovieID.String(),
		MovieTitle: movieTitle,
		ShowDate:   showtime.ShowDate.Format("2006-01-02"),
		ShowTime:   showtime.ShowTime.Format("15:04"),
	}
}
