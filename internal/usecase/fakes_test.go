package usecase

import (
	"context"
	"fmt"
	"time"

	"ticket-portal/internal/data/entity"
	"ticket-portal/internal/data/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"gopkg.in/gomail.v2"
)

// stallingSender holds every delivery until release is closed, so a test can
// observe whether a caller waits on mail.
type stallingSender struct {
	release chan struct{}
	sent    chan *gomail.Message
}

func newStallingSender() *stallingSender {
	return &stallingSender{
		release: make(chan struct{}),
		sent:    make(chan *gomail.Message, 4),
	}
}

func (s *stallingSender) Send(m *gomail.Message) error {
	<-s.release
	s.sent <- m
	return nil
}

// fakeStore is shared in-memory state behind the fake repositories, so a test
// can wire a full *repository.Repository without a database.
type fakeStore struct {
	users        map[uuid.UUID]*entity.User
	dependents   map[uuid.UUID]*entity.Dependent
	movies       map[uuid.UUID]*entity.Movie
	showtimes    map[uuid.UUID]*entity.Showtime
	seats        map[uuid.UUID]*entity.Seat
	bookings     map[uuid.UUID]*entity.Booking
	bookingSeats []*entity.BookingSeat
	otps         []*entity.OTP
	sessions     map[uuid.UUID]*entity.Session

	// raceSeatIDs simulates a concurrent booking landing between the
	// pre-check and the transaction: the in-tx recheck reports these ids as
	// booked even though the store does not hold them.
	raceSeatIDs []uuid.UUID
	// failBatchInsert makes CreateBatchTx return a unique-violation, as the
	// storage constraint would when two transactions slip past the recheck.
	failBatchInsert bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:      make(map[uuid.UUID]*entity.User),
		dependents: make(map[uuid.UUID]*entity.Dependent),
		movies:     make(map[uuid.UUID]*entity.Movie),
		showtimes:  make(map[uuid.UUID]*entity.Showtime),
		seats:      make(map[uuid.UUID]*entity.Seat),
		bookings:   make(map[uuid.UUID]*entity.Booking),
		sessions:   make(map[uuid.UUID]*entity.Session),
	}
}

func (st *fakeStore) repo() *repository.Repository {
	return &repository.Repository{
		User:        &fakeUserRepo{st},
		Dependent:   &fakeDependentRepo{st},
		Session:     &fakeSessionRepo{st},
		OTP:         &fakeOTPRepo{st},
		Movie:       &fakeMovieRepo{st},
		Showtime:    &fakeShowtimeRepo{st},
		Seat:        &fakeSeatRepo{st},
		Booking:     &fakeBookingRepo{st},
		BookingSeat: &fakeBookingSeatRepo{st},
	}
}

// ---- user ----

type fakeUserRepo struct{ st *fakeStore }

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.st.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return r.st.users[id], nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range r.st.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindPendingApproval(_ context.Context) ([]*entity.User, error) {
	var out []*entity.User
	for _, user := range r.st.users {
		if !user.IsApproved {
			out = append(out, user)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	if _, ok := r.st.users[user.ID]; !ok {
		return fmt.Errorf("user %s not found", user.ID.String())
	}
	r.st.users[user.ID] = user
	return nil
}

// ---- dependent ----

type fakeDependentRepo struct{ st *fakeStore }

func (r *fakeDependentRepo) Create(_ context.Context, dep *entity.Dependent) error {
	r.st.dependents[dep.ID] = dep
	return nil
}

func (r *fakeDependentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Dependent, error) {
	return r.st.dependents[id], nil
}

func (r *fakeDependentRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Dependent, error) {
	var out []*entity.Dependent
	for _, dep := range r.st.dependents {
		if dep.UserID == userID {
			out = append(out, dep)
		}
	}
	return out, nil
}

func (r *fakeDependentRepo) FindApprovedByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Dependent, error) {
	var out []*entity.Dependent
	for _, dep := range r.st.dependents {
		if dep.UserID == userID && dep.IsApproved {
			out = append(out, dep)
		}
	}
	return out, nil
}

func (r *fakeDependentRepo) FindPendingApproval(_ context.Context) ([]*entity.Dependent, error) {
	var out []*entity.Dependent
	for _, dep := range r.st.dependents {
		if !dep.IsApproved {
			out = append(out, dep)
		}
	}
	return out, nil
}

func (r *fakeDependentRepo) Update(_ context.Context, dep *entity.Dependent) error {
	r.st.dependents[dep.ID] = dep
	return nil
}

// ---- session ----

type fakeSessionRepo struct{ st *fakeStore }

func (r *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	r.st.sessions[session.Token] = session
	return nil
}

func (r *fakeSessionRepo) FindValid(_ context.Context, token uuid.UUID) (*entity.Session, error) {
	session, ok := r.st.sessions[token]
	if !ok || session.RevokedAt != nil || session.ExpiresAt.Before(time.Now()) {
		return nil, nil
	}
	return session, nil
}

func (r *fakeSessionRepo) Revoke(_ context.Context, token uuid.UUID) error {
	if session, ok := r.st.sessions[token]; ok {
		now := time.Now()
		session.RevokedAt = &now
	}
	return nil
}

// ---- otp ----

type fakeOTPRepo struct{ st *fakeStore }

func (r *fakeOTPRepo) Create(_ context.Context, otp *entity.OTP) error {
	r.st.otps = append(r.st.otps, otp)
	return nil
}

func (r *fakeOTPRepo) FindValid(_ context.Context, email, code string, purpose entity.OTPPurpose) (*entity.OTP, error) {
	for i := len(r.st.otps) - 1; i >= 0; i-- {
		otp := r.st.otps[i]
		if otp.Email == email && otp.Code == code && otp.Purpose == purpose && !otp.IsUsed && otp.ExpiresAt.After(time.Now()) {
			return otp, nil
		}
	}
	return nil, nil
}

func (r *fakeOTPRepo) MarkAsUsed(_ context.Context, otp *entity.OTP) error {
	otp.IsUsed = true
	return nil
}

// ---- movie ----

type fakeMovieRepo struct{ st *fakeStore }

func (r *fakeMovieRepo) Create(_ context.Context, movie *entity.Movie) error {
	r.st.movies[movie.ID] = movie
	return nil
}

func (r *fakeMovieRepo) FindAll(_ context.Context) ([]*entity.Movie, error) {
	var out []*entity.Movie
	for _, movie := range r.st.movies {
		out = append(out, movie)
	}
	return out, nil
}

func (r *fakeMovieRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Movie, error) {
	return r.st.movies[id], nil
}

func (r *fakeMovieRepo) Update(_ context.Context, movie *entity.Movie) error {
	r.st.movies[movie.ID] = movie
	return nil
}

func (r *fakeMovieRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.st.movies, id)
	for stID, showtime := range r.st.showtimes {
		if showtime.MovieID == id {
			if err := (&fakeShowtimeRepo{r.st}).Delete(context.Background(), stID); err != nil {
				return err
			}
		}
	}
	return nil
}

// ---- showtime ----

type fakeShowtimeRepo struct{ st *fakeStore }

func (r *fakeShowtimeRepo) Create(_ context.Context, showtime *entity.Showtime) error {
	r.st.showtimes[showtime.ID] = showtime
	return nil
}

func (r *fakeShowtimeRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Showtime, error) {
	return r.st.showtimes[id], nil
}

func (r *fakeShowtimeRepo) FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]*entity.Showtime, error) {
	return r.FindFiltered(ctx, &movieID, nil)
}

func (r *fakeShowtimeRepo) FindFiltered(_ context.Context, movieID *uuid.UUID, showDate *time.Time) ([]*entity.Showtime, error) {
	var out []*entity.Showtime
	for _, showtime := range r.st.showtimes {
		if movieID != nil && showtime.MovieID != *movieID {
			continue
		}
		if showDate != nil && !showtime.ShowDate.Equal(*showDate) {
			continue
		}
		out = append(out, showtime)
	}
	return out, nil
}

func (r *fakeShowtimeRepo) FindUpcoming(_ context.Context, from time.Time) (*entity.Showtime, error) {
	var next *entity.Showtime
	for _, showtime := range r.st.showtimes {
		if showtime.ShowDate.Before(from) {
			continue
		}
		if next == nil ||
			showtime.ShowDate.Before(next.ShowDate) ||
			(showtime.ShowDate.Equal(next.ShowDate) && showtime.ShowTime.Before(next.ShowTime)) {
			next = showtime
		}
	}
	return next, nil
}

func (r *fakeShowtimeRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.st.showtimes, id)
	for bID, booking := range r.st.bookings {
		if booking.ShowtimeID == id {
			delete(r.st.bookings, bID)
		}
	}
	kept := r.st.bookingSeats[:0]
	for _, bs := range r.st.bookingSeats {
		if bs.ShowtimeID != id {
			kept = append(kept, bs)
		}
	}
	r.st.bookingSeats = kept
	return nil
}

// ---- seat ----

type fakeSeatRepo struct{ st *fakeStore }

func (r *fakeSeatRepo) CreateIfMissing(_ context.Context, seat *entity.Seat) error {
	for _, existing := range r.st.seats {
		if existing.Label == seat.Label {
			return nil
		}
	}
	r.st.seats[seat.ID] = seat
	return nil
}

func (r *fakeSeatRepo) FindAll(_ context.Context) ([]*entity.Seat, error) {
	var out []*entity.Seat
	for _, seat := range r.st.seats {
		out = append(out, seat)
	}
	return out, nil
}

func (r *fakeSeatRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Seat, error) {
	return r.st.seats[id], nil
}

func (r *fakeSeatRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*entity.Seat, error) {
	var out []*entity.Seat
	for _, id := range ids {
		if seat, ok := r.st.seats[id]; ok {
			out = append(out, seat)
		}
	}
	return out, nil
}

func (r *fakeSeatRepo) UpdateRestriction(_ context.Context, id uuid.UUID, restricted *string) error {
	seat, ok := r.st.seats[id]
	if !ok {
		return fmt.Errorf("seat %s not found", id.String())
	}
	seat.Restricted = restricted
	return nil
}

// ---- booking ----

type fakeBookingRepo struct{ st *fakeStore }

func (r *fakeBookingRepo) CreateTx(_ context.Context, _ pgx.Tx, booking *entity.Booking) error {
	r.st.bookings[booking.ID] = booking
	return nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	return r.st.bookings[id], nil
}

func (r *fakeBookingRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Booking, error) {
	var out []*entity.Booking
	for _, booking := range r.st.bookings {
		if booking.UserID == userID {
			out = append(out, booking)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) FindByUserAndShowtime(_ context.Context, userID, showtimeID uuid.UUID) (*entity.Booking, error) {
	for _, booking := range r.st.bookings {
		if booking.UserID == userID && booking.ShowtimeID == showtimeID {
			return booking, nil
		}
	}
	return nil, nil
}

func (r *fakeBookingRepo) FindByShowtimeID(_ context.Context, showtimeID uuid.UUID) ([]*entity.Booking, error) {
	var out []*entity.Booking
	for _, booking := range r.st.bookings {
		if booking.ShowtimeID == showtimeID {
			out = append(out, booking)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.st.bookings[id]; !ok {
		return fmt.Errorf("booking %s not found", id.String())
	}
	delete(r.st.bookings, id)
	kept := r.st.bookingSeats[:0]
	for _, bs := range r.st.bookingSeats {
		if bs.BookingID != id {
			kept = append(kept, bs)
		}
	}
	r.st.bookingSeats = kept
	return nil
}

// ---- booking seat ----

type fakeBookingSeatRepo struct{ st *fakeStore }

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505", ConstraintName: "booking_seats_showtime_id_seat_id_key"}
}

func (r *fakeBookingSeatRepo) CreateBatchTx(_ context.Context, _ pgx.Tx, seats []*entity.BookingSeat) error {
	if r.st.failBatchInsert {
		return fmt.Errorf("create booking seats: %w", uniqueViolation())
	}
	for _, seat := range seats {
		for _, existing := range r.st.bookingSeats {
			if existing.ShowtimeID == seat.ShowtimeID && existing.SeatID == seat.SeatID {
				return fmt.Errorf("create booking seats: %w", uniqueViolation())
			}
		}
	}
	r.st.bookingSeats = append(r.st.bookingSeats, seats...)
	return nil
}

func (r *fakeBookingSeatRepo) FindByBookingID(_ context.Context, bookingID uuid.UUID) ([]*entity.BookingSeat, error) {
	var out []*entity.BookingSeat
	for _, bs := range r.st.bookingSeats {
		if bs.BookingID == bookingID {
			out = append(out, bs)
		}
	}
	return out, nil
}

func (r *fakeBookingSeatRepo) FindBookedSeatIDs(_ context.Context, showtimeID uuid.UUID) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for _, bs := range r.st.bookingSeats {
		if bs.ShowtimeID == showtimeID {
			out = append(out, bs.SeatID)
		}
	}
	return out, nil
}

func (r *fakeBookingSeatRepo) FindBookedSeatIDsTx(ctx context.Context, _ pgx.Tx, showtimeID uuid.UUID) ([]uuid.UUID, error) {
	out, err := r.FindBookedSeatIDs(ctx, showtimeID)
	if err != nil {
		return nil, err
	}
	return append(out, r.st.raceSeatIDs...), nil
}

// ---- database ----

// fakeDB satisfies database.PgxIface for services that only need Begin; the
// fake repositories never touch SQL.
type fakeDB struct{}

func (fakeDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	panic("not implemented")
}
func (fakeDB) QueryRow(context.Context, string, ...any) pgx.Row { panic("not implemented") }
func (fakeDB) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	panic("not implemented")
}
func (fakeDB) Begin(context.Context) (pgx.Tx, error) { return &fakeTx{}, nil }
func (fakeDB) Ping(context.Context) error            { return nil }
func (fakeDB) Close()                                {}

type fakeTx struct {
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Begin(context.Context) (pgx.Tx, error) { return t, nil }
func (t *fakeTx) Commit(context.Context) error {
	t.committed = true
	return nil
}
func (t *fakeTx) Rollback(context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}
func (t *fakeTx) CopyFrom(context.Context, pgx.Identifier, []string, pgx.CopyFromSource) (int64, error) {
	panic("not implemented")
}
func (t *fakeTx) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults { panic("not implemented") }
func (t *fakeTx) LargeObjects() pgx.LargeObjects                         { panic("not implemented") }
func (t *fakeTx) Prepare(context.Context, string, string) (*pgconn.StatementDescription, error) {
	panic("not implemented")
}
func (t *fakeTx) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	panic("not implemented")
}
func (t *fakeTx) Query(context.Context, string, ...any) (pgx.Rows, error) {
	panic("not implemented")
}
func (t *fakeTx) QueryRow(context.Context, string, ...any) pgx.Row { panic("not implemented") }
func (t *fakeTx) Conn() *pgx.Conn                                  { panic("not implemented") }
