package request

type CreateShowtimeRequest struct {
	MovieID  string `json:"movie_id" validate:"required,uuid4"`
	ShowDate string `json:"show_date" validate:"required,datetime=2006-01-02"`
	ShowTime string `json:"show_time" validate:"required,datetime=15:04"`
}
