// Package queue publishes portal events to RabbitMQ for downstream consumers
// (notifications, analytics). Publishing is fire-and-forget: failures are
// logged and never affect the originating request.
package queue

// Queue names. Durable, declared idempotently on publish.
const (
	QueueBookingConfirmed  = "booking.confirmed"
	QueueUserApproved      = "user.approved"
	QueueDependentApproved = "dependent.approved"
)

// BookingConfirmedEvent carries enough detail for consumers to notify or log
// without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID     string   `json:"booking_id"`
	UserID        string   `json:"user_id"`
	ShowtimeID    string   `json:"showtime_id"`
	MovieTitle    string   `json:"movie_title"`
	ShowDate      string   `json:"show_date"`
	ShowTime      string   `json:"show_time"`
	SeatLabels    []string `json:"seats"`
	ExtraGuests   int      `json:"extra_guests"`
	PaymentStatus string   `json:"payment_status"`
	ConfirmedAt   string   `json:"confirmed_at"`
}

type UserApprovedEvent struct {
	UserID     string `json:"user_id"`
	Email      string `json:"email"`
	FullName   string `json:"full_name"`
	Role       string `json:"role"`
	ApprovedAt string `json:"approved_at"`
}

type DependentApprovedEvent struct {
	DependentID string `json:"dependent_id"`
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	ApprovedAt  string `json:"approved_at"`
}
