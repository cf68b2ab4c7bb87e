package request

type CreateMovieRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Description string  `json:"description" validate:"required"`
	Duration    int     `json:"duration" validate:"required,min=1"`
	PosterURL   *string `json:"poster_url,omitempty" validate:"omitempty,url"`
}

type UpdateMovieRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Description string  `json:"description" validate:"required"`
	Duration    int     `json:"duration" validate:"required,min=1"`
	PosterURL   *string `json:"poster_url,omitempty" validate:"omitempty,url"`
}
