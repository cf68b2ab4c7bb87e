package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"ticket-portal/internal/data/entity"
	"ticket-portal/internal/dto/request"
	"ticket-portal/internal/seatplan"
	"ticket-portal/pkg/mailer"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type bookingFixture struct {
	st       *fakeStore
	svc      BookingService
	user     *entity.User
	showtime *entity.Showtime
	seats    map[string]*entity.Seat // by label
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	st := newFakeStore()
	now := time.Now()

	user := &entity.User{
		Base:       entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		FullName:   "Asep Sunarya",
		Email:      "asep@example.com",
		Role:       entity.RoleJunior,
		IsApproved: true,
	}
	st.users[user.ID] = user

	movie := &entity.Movie{
		Base:        entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Title:       "Laskar Pelangi",
		Description: "Drama",
		Duration:    120,
	}
	st.movies[movie.ID] = movie

	showtime := &entity.Showtime{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		MovieID:  movie.ID,
		ShowDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		ShowTime: time.Date(0, 1, 1, 19, 30, 0, 0, time.UTC),
	}
	st.showtimes[showtime.ID] = showtime

	officer := seatplan.RoleOfficer
	seats := map[string]*entity.Seat{}
	for _, s := range []struct {
		label string
		tier  *string
	}{
		{"A1", nil},
		{"A2", nil},
		{"A3", nil},
		{"K1", &officer},
	} {
		seat := &entity.Seat{
			Base:       entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
			Label:      s.label,
			Restricted: s.tier,
		}
		st.seats[seat.ID] = seat
		seats[s.label] = seat
	}

	svc := NewBookingService(fakeDB{}, st.repo(), nil, nil, zap.NewNop())

	return &bookingFixture{st: st, svc: svc, user: user, showtime: showtime, seats: seats}
}

func (f *bookingFixture) addApprovedDependent(t *testing.T) *entity.Dependent {
	t.Helper()
	now := time.Now()
	dep := &entity.Dependent{
		Base:       entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		UserID:     f.user.ID,
		Name:       "Budi",
		Age:        10,
		IsApproved: true,
	}
	f.st.dependents[dep.ID] = dep
	return dep
}

func (f *bookingFixture) request(labels []string, self, dependents, guests int) *request.CreateBookingRequest {
	ids := make([]string, len(labels))
	for i, label := range labels {
		ids[i] = f.seats[label].ID.String()
	}
	return &request.CreateBookingRequest{
		ShowtimeID:     f.showtime.ID.String(),
		SeatIDs:        ids,
		SelfCount:      self,
		DependentCount: dependents,
		GuestCount:     guests,
	}
}

func TestCreateBookingSuccess(t *testing.T) {
	f := newBookingFixture(t)
	f.addApprovedDependent(t)

	resp, err := f.svc.CreateBooking(context.Background(), f.user.ID.String(), f.request([]string{"A1", "A2"}, 1, 1, 0))
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	if resp.PaymentStatus != string(entity.PaymentNotRequired) {
		t.Errorf("payment status = %q, want %q", resp.PaymentStatus, entity.PaymentNotRequired)
	}
	if len(resp.SeatLabels) != 2 || resp.SeatLabels[0] != "A1" || resp.SeatLabels[1] != "A2" {
		t.Errorf("seat labels = %v, want [A1 A2]", resp.SeatLabels)
	}
	if len(f.st.bookings) != 1 {
		t.Fatalf("stored bookings = %d, want 1", len(f.st.bookings))
	}
	if len(f.st.bookingSeats) != 2 {
		t.Fatalf("stored booking seats = %d, want 2", len(f.st.bookingSeats))
	}
	for i, bs := range f.st.bookingSeats {
		if bs.Position != i+1 {
			t.Errorf("seat %d position = %d, want %d", i, bs.Position, i+1)
		}
		if bs.ShowtimeID != f.showtime.ID {
			t.Errorf("seat %d showtime = %s, want %s", i, bs.ShowtimeID, f.showtime.ID)
		}
	}
}

func TestCreateBookingGuestsPayAtCounter(t *testing.T) {
	f := newBookingFixture(t)

	resp, err := f.svc.CreateBooking(context.Background(), f.user.ID.String(), f.request([]string{"A1", "A2"}, 1, 0, 1))
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if resp.PaymentStatus != string(entity.PaymentPayAtCounter) {
		t.Errorf("payment status = %q, want %q", resp.PaymentStatus, entity.PaymentPayAtCounter)
	}
}

func TestCreateBookingWholePartyAsSelf(t *testing.T) {
	f := newBookingFixture(t)

	resp, err := f.svc.CreateBooking(context.Background(), f.user.ID.String(), f.request([]string{"A1", "A2", "A3"}, 3, 0, 0))
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if len(resp.SeatLabels) != 3 {
		t.Errorf("seat labels = %v, want 3 seats", resp.SeatLabels)
	}
}

func TestCreateBookingValidationOrder(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(f *bookingFixture, req *request.CreateBookingRequest)
		wantErr error
	}{
		{
			name: "no showtime given",
			mutate: func(f *bookingFixture, req *request.CreateBookingRequest) {
				req.ShowtimeID = ""
			},
			wantErr: ErrMissingSelection,
		},
		{
			name: "unknown showtime",
			mutate: func(f *bookingFixture, req *request.CreateBookingRequest) {
				req.ShowtimeID = uuid.New().String()
			},
			wantErr: ErrMissingSelection,
		},
		{
			name: "empty seat list",
			mutate: func(f *bookingFixture, req *request.CreateBookingRequest) {
				req.SeatIDs = nil
				req.SelfCount = 0
			},
			wantErr: ErrCountMismatch,
		},
		{
			name: "count mismatch",
			mutate: func(f *bookingFixture, req *request.CreateBookingRequest) {
				req.SelfCount = 1
				req.DependentCount = 1
				req.GuestCount = 1
			},
			wantErr: ErrCountMismatch,
		},
		{
			name: "unapproved dependent",
			mutate: func(f *bookingFixture, req *request.CreateBookingRequest) {
				req.SelfCount = 1
				req.DependentCount = 1
			},
			wantErr: ErrUnapprovedDependent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture(t)
			req := f.request([]string{"A1", "A2"}, 2, 0, 0)
			tt.mutate(f, req)

			_, err := f.svc.CreateBooking(context.Background(), f.user.ID.String(), req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("CreateBooking error = %v, want %v", err, tt.wantErr)
			}
			if len(f.st.bookings) != 0 || len(f.st.bookingSeats) != 0 {
				t.Errorf("rejected booking left writes behind: %d bookings, %d seats",
					len(f.st.bookings), len(f.st.bookingSeats))
			}
		})
	}
}

func TestCreateBookingDuplicate(t *testing.T) {
	f := newBookingFixture(t)

	if _, err := f.svc.CreateBooking(context.Background(), f.user.ID.String(), f.request([]string{"A1"}, 1, 0, 0)); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	_, err := f.svc.CreateBooking(context.Background(), f.user.ID.String(), f.request([]string{"A2"}, 1, 0, 0))
	if !errors.Is(err, ErrDuplicateBooking) {
		t.Fatalf("second booking error = %v, want ErrDuplicateBooking", err)
	}
}

func TestCreateBookingRestrictedSeat(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.svc.CreateBooking(context.Background(), f.user.ID.String(), f.request([]string{"A1", "K1"}, 2, 0, 0))

	var roleErr *RoleNotPermittedError
	if !errors.As(err, &roleErr) {
		t.Fatalf("error = %v, want RoleNotPermittedError", err)
	}
	if roleErr.SeatLabel != "K1" {
		t.Errorf("offending seat = %q, want K1", roleErr.SeatLabel)
	}
}

func TestCreateBookingOfficerMaySitAnywhere(t *testing.T) {
	f := newBookingFixture(t)
	f.user.Role = entity.RoleOfficer

	if _, err := f.svc.CreateBooking(context.Background(), f.user.ID.String(), f.request([]string{"A1", "K1"}, 2, 0, 0)); err != nil {
		t.Fatalf("officer booking: %v", err)
	}
}

func TestCreateBookingSeatTaken(t *testing.T) {
	f := newBookingFixture(t)

	other := &entity.User{
		Base:       entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		FullName:   "Citra",
		Email:      "citra@example.com",
		Role:       entity.RoleJunior,
		IsApproved: true,
	}
	f.st.users[other.ID] = other

	if _, err := f.svc.CreateBooking(context.Background(), other.ID.String(), f.request([]string{"A1"}, 1, 0, 0)); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	_, err := f.svc.CreateBooking(context.Background(), f.user.ID.String(), f.request([]string{"A1"}, 1, 0, 0))
	if !errors.Is(err, ErrSeatAlreadyBooked) {
		t.Fatalf("error = %v, want ErrSeatAlreadyBooked", err)
	}
}

// A concurrent booking lands between the availability pre-check and the
// transaction. The in-transaction recheck must catch it and nothing may be
// written.
func TestCreateBookingRecheckCatchesRace(t *testing.T) {
	f := newBookingFixture(t)
	f.st.raceSeatIDs = []uuid.UUID{f.seats["A1"].ID}

	_, err := f.svc.CreateBooking(context.Background(), f.user.ID.String(), f.request([]string{"A1"}, 1, 0, 0))
	if !errors.Is(err, ErrSeatAlreadyBooked) {
		t.Fatalf("error = %v, want ErrSeatAlreadyBooked", err)
	}
	if len(f.st.bookings) != 0 {
		t.Errorf("raced booking was stored")
	}
}

// Both transactions pass the recheck; the unique constraint fires on insert
// and must surface as ErrSeatAlreadyBooked.
func TestCreateBookingConstraintBackstop(t *testing.T) {
	f := newBookingFixture(t)
	f.st.failBatchInsert = true

	_, err := f.svc.CreateBooking(context.Background(), f.user.ID.String(), f.request([]string{"A1"}, 1, 0, 0))
	if !errors.Is(err, ErrSeatAlreadyBooked) {
		t.Fatalf("error = %v, want ErrSeatAlreadyBooked", err)
	}
}

func TestCancelBookingFreesSeats(t *testing.T) {
	f := newBookingFixture(t)

	resp, err := f.svc.CreateBooking(context.Background(), f.user.ID.String(), f.request([]string{"A1", "A2"}, 2, 0, 0))
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	if err := f.svc.CancelBooking(context.Background(), f.user.ID.String(), resp.ID); err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}

	if len(f.st.bookings) != 0 || len(f.st.bookingSeats) != 0 {
		t.Fatalf("cancel left %d bookings, %d seats", len(f.st.bookings), len(f.st.bookingSeats))
	}

	// The freed seat can be booked again.
	if _, err := f.svc.CreateBooking(context.Background(), f.user.ID.String(), f.request([]string{"A1"}, 1, 0, 0)); err != nil {
		t.Fatalf("rebooking after cancel: %v", err)
	}
}

func TestCancelBookingOwnershipChecks(t *testing.T) {
	f := newBookingFixture(t)

	resp, err := f.svc.CreateBooking(context.Background(), f.user.ID.String(), f.request([]string{"A1"}, 1, 0, 0))
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	if err := f.svc.CancelBooking(context.Background(), uuid.New().String(), resp.ID); !errors.Is(err, ErrBookingUnauthorized) {
		t.Errorf("foreign cancel error = %v, want ErrBookingUnauthorized", err)
	}
	if err := f.svc.CancelBooking(context.Background(), f.user.ID.String(), uuid.New().String()); !errors.Is(err, ErrBookingNotFound) {
		t.Errorf("unknown booking cancel error = %v, want ErrBookingNotFound", err)
	}
	if len(f.st.bookings) != 1 {
		t.Errorf("booking count = %d, want 1", len(f.st.bookings))
	}
}

func TestGetUserBookings(t *testing.T) {
	f := newBookingFixture(t)

	if _, err := f.svc.CreateBooking(context.Background(), f.user.ID.String(), f.request([]string{"A1", "A3"}, 2, 0, 0)); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	bookings, err := f.svc.GetUserBookings(context.Background(), f.user.ID.String())
	if err != nil {
		t.Fatalf("GetUserBookings: %v", err)
	}
	if len(bookings) != 1 {
		t.Fatalf("bookings = %d, want 1", len(bookings))
	}
	if bookings[0].MovieTitle != "Laskar Pelangi" {
		t.Errorf("movie title = %q", bookings[0].MovieTitle)
	}
	if len(bookings[0].SeatLabels) != 2 {
		t.Errorf("seat labels = %v", bookings[0].SeatLabels)
	}
}

func TestDashboardAroundNextShowtime(t *testing.T) {
	f := newBookingFixture(t)
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	// Push the fixture showtime far out so the one added below is next.
	f.showtime.ShowDate = today.AddDate(0, 0, 30)

	past := &entity.Showtime{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		MovieID:  f.showtime.MovieID,
		ShowDate: today.AddDate(0, 0, -1),
		ShowTime: time.Date(0, 1, 1, 19, 30, 0, 0, time.UTC),
	}
	f.st.showtimes[past.ID] = past

	tomorrow := &entity.Showtime{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		MovieID:  f.showtime.MovieID,
		ShowDate: today.AddDate(0, 0, 1),
		ShowTime: time.Date(0, 1, 1, 19, 30, 0, 0, time.UTC),
	}
	f.st.showtimes[tomorrow.ID] = tomorrow

	dash, err := f.svc.GetDashboard(context.Background(), f.user.ID.String())
	if err != nil {
		t.Fatalf("GetDashboard: %v", err)
	}
	if dash.NextShowtime == nil || dash.NextShowtime.ID != tomorrow.ID.String() {
		t.Fatalf("next showtime = %+v, want %s", dash.NextShowtime, tomorrow.ID)
	}
	if dash.Booking != nil {
		t.Errorf("booking = %+v, want none before booking", dash.Booking)
	}

	req := &request.CreateBookingRequest{
		ShowtimeID: tomorrow.ID.String(),
		SeatIDs:    []string{f.seats["A1"].ID.String()},
		SelfCount:  1,
	}
	if _, err := f.svc.CreateBooking(context.Background(), f.user.ID.String(), req); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	dash, err = f.svc.GetDashboard(context.Background(), f.user.ID.String())
	if err != nil {
		t.Fatalf("GetDashboard: %v", err)
	}
	if dash.Booking == nil || len(dash.Booking.SeatLabels) != 1 || dash.Booking.SeatLabels[0] != "A1" {
		t.Fatalf("booking = %+v, want seat A1", dash.Booking)
	}
	if dash.SeatMap == nil {
		t.Fatal("seat map missing")
	}
	for _, seat := range dash.SeatMap.Seats {
		wantBooked := seat.Label == "A1"
		if seat.IsBooked != wantBooked {
			t.Errorf("seat %s booked = %v, want %v", seat.Label, seat.IsBooked, wantBooked)
		}
	}
}

func TestDashboardNoUpcomingShowtime(t *testing.T) {
	f := newBookingFixture(t)
	now := time.Now()
	f.showtime.ShowDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -7)

	dash, err := f.svc.GetDashboard(context.Background(), f.user.ID.String())
	if err != nil {
		t.Fatalf("GetDashboard: %v", err)
	}
	if dash.NextShowtime != nil || dash.Booking != nil || dash.SeatMap != nil {
		t.Errorf("dashboard = %+v, want empty", dash)
	}
}

func TestCreateBookingMailDoesNotBlock(t *testing.T) {
	f := newBookingFixture(t)
	sender := newStallingSender()
	mail := mailer.NewWithSender(sender, "portal@example.com", 0, 0, zap.NewNop())
	svc := NewBookingService(fakeDB{}, f.st.repo(), mail, nil, zap.NewNop())

	errc := make(chan error, 1)
	go func() {
		_, err := svc.CreateBooking(context.Background(), f.user.ID.String(), f.request([]string{"A1"}, 1, 0, 0))
		errc <- err
	}()

	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("CreateBooking: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("CreateBooking blocked on mail delivery")
	}

	close(sender.release)
	select {
	case msg := <-sender.sent:
		if to := msg.GetHeader("To"); len(to) != 1 || to[0] != f.user.Email {
			t.Errorf("mail to = %v, want %s", to, f.user.Email)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("confirmation mail never delivered")
	}
}
