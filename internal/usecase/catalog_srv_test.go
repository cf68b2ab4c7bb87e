package usecase

import (
	"context"
	"testing"
	"time"

	"ticket-portal/internal/data/entity"
	"ticket-portal/internal/dto/request"
	"ticket-portal/internal/seatplan"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func TestSeedSeatsLayout(t *testing.T) {
	st := newFakeStore()
	svc := NewCatalogService(st.repo(), zap.NewNop())

	if err := svc.SeedSeats(context.Background()); err != nil {
		t.Fatalf("SeedSeats: %v", err)
	}

	// 13 rows of 10 seats: A-F open, G-J senior, K-M officer.
	if len(st.seats) != 130 {
		t.Fatalf("seeded %d seats, want 130", len(st.seats))
	}

	byLabel := make(map[string]*entity.Seat, len(st.seats))
	for _, seat := range st.seats {
		byLabel[seat.Label] = seat
	}

	checks := []struct {
		label string
		tier  string // "" means unrestricted
	}{
		{"A1", ""},
		{"F10", ""},
		{"G1", seatplan.RoleSenior},
		{"J10", seatplan.RoleSenior},
		{"K1", seatplan.RoleOfficer},
		{"M10", seatplan.RoleOfficer},
	}
	for _, c := range checks {
		seat, ok := byLabel[c.label]
		if !ok {
			t.Errorf("seat %s not seeded", c.label)
			continue
		}
		got := ""
		if seat.Restricted != nil {
			got = *seat.Restricted
		}
		if got != c.tier {
			t.Errorf("seat %s tier = %q, want %q", c.label, got, c.tier)
		}
	}
}

func TestSeedSeatsIdempotent(t *testing.T) {
	st := newFakeStore()
	svc := NewCatalogService(st.repo(), zap.NewNop())

	if err := svc.SeedSeats(context.Background()); err != nil {
		t.Fatalf("first seed: %v", err)
	}

	// Remember one seat's identity, then reseed.
	var a1 uuid.UUID
	for id, seat := range st.seats {
		if seat.Label == "A1" {
			a1 = id
		}
	}

	if err := svc.SeedSeats(context.Background()); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	if len(st.seats) != 130 {
		t.Fatalf("reseed changed catalog size to %d", len(st.seats))
	}
	if _, ok := st.seats[a1]; !ok {
		t.Errorf("reseed replaced existing seat A1")
	}
}

func TestGetSeatMapNumbersAndAvailability(t *testing.T) {
	st := newFakeStore()
	now := time.Now()

	showtime := &entity.Showtime{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		MovieID:  uuid.New(),
		ShowDate: now,
		ShowTime: now,
	}
	st.showtimes[showtime.ID] = showtime

	// Inserted out of label order on purpose.
	labels := []string{"B1", "A10", "A9", "A1"}
	byLabel := map[string]*entity.Seat{}
	for _, label := range labels {
		seat := &entity.Seat{
			Base:  entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
			Label: label,
		}
		st.seats[seat.ID] = seat
		byLabel[label] = seat
	}

	st.bookingSeats = append(st.bookingSeats, &entity.BookingSeat{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
		BookingID:  uuid.New(),
		ShowtimeID: showtime.ID,
		SeatID:     byLabel["A9"].ID,
		Position:   1,
	})

	svc := NewCatalogService(st.repo(), zap.NewNop())
	seatMap, err := svc.GetSeatMap(context.Background(), showtime.ID.String())
	if err != nil {
		t.Fatalf("GetSeatMap: %v", err)
	}

	wantOrder := []string{"A1", "A9", "A10", "B1"}
	if len(seatMap.Seats) != len(wantOrder) {
		t.Fatalf("seat map size = %d, want %d", len(seatMap.Seats), len(wantOrder))
	}
	for i, seat := range seatMap.Seats {
		if seat.Label != wantOrder[i] {
			t.Errorf("position %d label = %q, want %q", i, seat.Label, wantOrder[i])
		}
		if seat.Number != i+1 {
			t.Errorf("seat %s number = %d, want %d", seat.Label, seat.Number, i+1)
		}
		wantBooked := seat.Label == "A9"
		if seat.IsBooked != wantBooked {
			t.Errorf("seat %s booked = %v, want %v", seat.Label, seat.IsBooked, wantBooked)
		}
	}
}

func TestUpdateSeatRestriction(t *testing.T) {
	st := newFakeStore()
	now := time.Now()
	seat := &entity.Seat{
		Base:  entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Label: "A1",
	}
	st.seats[seat.ID] = seat

	svc := NewCatalogService(st.repo(), zap.NewNop())

	tier := seatplan.RoleSenior
	if err := svc.UpdateSeatRestriction(context.Background(), seat.ID.String(), &request.UpdateSeatRestrictionRequest{Restricted: &tier}); err != nil {
		t.Fatalf("UpdateSeatRestriction: %v", err)
	}
	if seat.Restricted == nil || *seat.Restricted != seatplan.RoleSenior {
		t.Errorf("restriction = %v, want senior", seat.Restricted)
	}

	// Clearing the restriction opens the seat again.
	if err := svc.UpdateSeatRestriction(context.Background(), seat.ID.String(), &request.UpdateSeatRestrictionRequest{Restricted: nil}); err != nil {
		t.Fatalf("clear restriction: %v", err)
	}
	if seat.Restricted != nil {
		t.Errorf("restriction not cleared: %v", *seat.Restricted)
	}
}
