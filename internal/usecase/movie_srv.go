package usecase

import (
	"context"
	"fmt"
	"time"

	"ticket-portal/internal/data/entity"
	"ticket-portal/internal/data/repository"
	"ticket-portal/internal/dto/request"
	"ticket-portal/internal/dto/response"
	"ticket-portal/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MovieService interface {
	GetMovies(ctx context.Context) ([]response.MovieResponse, error)
	GetMovie(ctx context.Context, movieID string) (*response.MovieResponse, error)
	GetShowtimes(ctx context.Context, movieID, showDate string) ([]response.ShowtimeResponse, error)

	CreateMovie(ctx context.Context, req *request.CreateMovieRequest) (*response.MovieResponse, error)
	UpdateMovie(ctx context.Context, movieID string, req *request.UpdateMovieRequest) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, movieID string) error
	CreateShowtime(ctx context.Context, req *request.CreateShowtimeRequest) (*response.ShowtimeResponse, error)
	DeleteShowtime(ctx context.Context, showtimeID string) error
}

type movieService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewMovieService(repo *repository.Repository, log *zap.Logger) MovieService {
	return &movieService{
		repo: repo,
		log:  log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) GetMovies(ctx context.Context) ([]response.MovieResponse, error) {
	movies, err := s.repo.Movie.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load movies: %w", err)
	}
	return response.MoviesToResponse(movies), nil
}

func (s *movieService) GetMovie(ctx context.Context, movieID string) (*response.MovieResponse, error) {
	movieUUID, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie ID format %s: %w", movieID, err)
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieUUID)
	if err != nil {
		return nil, fmt.Errorf("load movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s not found", movieID)
	}

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

// GetShowtimes lists showtimes, optionally filtered by movie and/or date
// (YYYY-MM-DD). Empty filters list everything.
func (s *movieService) GetShowtimes(ctx context.Context, movieID, showDate string) ([]response.ShowtimeResponse, error) {
	var movieFilter *uuid.UUID
	if movieID != "" {
		parsed, err := uuid.Parse(movieID)
		if err != nil {
			return nil, fmt.Errorf("invalid movie ID format %s: %w", movieID, err)
		}
		movieFilter = &parsed
	}

	var dateFilter *time.Time
	if showDate != "" {
		parsed, err := time.Parse("2006-01-02", showDate)
		if err != nil {
			return nil, fmt.Errorf("invalid date format %s: %w", showDate, err)
		}
		dateFilter = &parsed
	}

	showtimes, err := s.repo.Showtime.FindFiltered(ctx, movieFilter, dateFilter)
	if err != nil {
		return nil, fmt.Errorf("load showtimes: %w", err)
	}

	titles := make(map[uuid.UUID]string)
	out := make([]response.ShowtimeResponse, 0, len(showtimes))
	for _, showtime := range showtimes {
		title, ok := titles[showtime.MovieID]
		if !ok {
			movie, err := s.repo.Movie.FindByID(ctx, showtime.MovieID)
			if err == nil && movie != nil {
				title = movie.Title
			}
			titles[showtime.MovieID] = title
		}
		out = append(out, response.ShowtimeToResponse(showtime, title))
	}

	return out, nil
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.CreateMovieRequest) (*response.MovieResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	movie := &entity.Movie{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Title:       req.Title,
		Description: req.Description,
		Duration:    req.Duration,
		PosterURL:   req.PosterURL,
	}

	if err := s.repo.Movie.Create(ctx, movie); err != nil {
		return nil, err
	}

	s.log.Info("Movie created",
		zap.String("movie_id", movie.ID.String()),
		zap.String("title", movie.Title),
	)

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) UpdateMovie(ctx context.Context, movieID string, req *request.UpdateMovieRequest) (*response.MovieResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	movieUUID, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie ID format %s: %w", movieID, err)
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieUUID)
	if err != nil {
		return nil, fmt.Errorf("load movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s not found", movieID)
	}

	movie.Title = req.Title
	movie.Description = req.Description
	movie.Duration = req.Duration
	movie.PosterURL = req.PosterURL
	movie.UpdatedAt = time.Now()

	if err := s.repo.Movie.Update(ctx, movie); err != nil {
		return nil, err
	}

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

// DeleteMovie removes the movie and, through cascade, all its showtimes and
// their bookings.
func (s *movieService) DeleteMovie(ctx context.Context, movieID string) error {
	movieUUID, err := uuid.Parse(movieID)
	if err != nil {
		return fmt.Errorf("invalid movie ID format %s: %w", movieID, err)
	}

	if err := s.repo.Movie.Delete(ctx, movieUUID); err != nil {
		return err
	}

	s.log.Info("Movie deleted", zap.String("movie_id", movieID))
	return nil
}

func (s *movieService) CreateShowtime(ctx context.Context, req *request.CreateShowtimeRequest) (*response.ShowtimeResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	movieUUID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie ID format %s: %w", req.MovieID, err)
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieUUID)
	if err != nil {
		return nil, fmt.Errorf("load movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s not found", req.MovieID)
	}

	showDate, err := time.Parse("2006-01-02", req.ShowDate)
	if err != nil {
		return nil, fmt.Errorf("invalid show date %s: %w", req.ShowDate, err)
	}
	showTime, err := time.Parse("15:04", req.ShowTime)
	if err != nil {
		return nil, fmt.Errorf("invalid show time %s: %w", req.ShowTime, err)
	}

	now := time.Now()
	showtime := &entity.Showtime{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		MovieID:  movieUUID,
		ShowDate: showDate,
		ShowTime: showTime,
	}

	if err := s.repo.Showtime.Create(ctx, showtime); err != nil {
		return nil, err
	}

	s.log.Info("Showtime created",
		zap.String("showtime_id", showtime.ID.String()),
		zap.String("movie_id", req.MovieID),
	)

	resp := response.ShowtimeToResponse(showtime, movie.Title)
	return &resp, nil
}

// DeleteShowtime removes the showtime and, through cascade, its bookings.
func (s *movieService) DeleteShowtime(ctx context.Context, showtimeID string) error {
	showtimeUUID, err := uuid.Parse(showtimeID)
	if err != nil {
		return fmt.Errorf("invalid showtime ID format %s: %w", showtimeID, err)
	}

	if err := s.repo.Showtime.Delete(ctx, showtimeUUID); err != nil {
		return err
	}

	s.log.Info("Showtime deleted", zap.String("showtime_id", showtimeID))
	return nil
}
