package models

import (
	"math/rand"
	"testing"
	"time"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{BookingStatusBooked, BookingStatusCancelled, true},
		{BookingStatusBooked, BookingStatusCompleted, true},
		{BookingStatusCancelled, BookingStatusBooked, false},
		{BookingStatusCancelled, BookingStatusCompleted, false},
		{BookingStatusCompleted, BookingStatusBooked, false},
		{BookingStatusCompleted, BookingStatusCancelled, false},
		{BookingStatusBooked, BookingStatusBooked, false},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.allowed {
			t.Fatalf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.allowed)
		}
	}
}

func TestStatusIsTerminal(t *testing.T) {
	if BookingStatusBooked.IsTerminal() {
		t.Fatal("BOOKED must not be terminal")
	}
	if !BookingStatusCancelled.IsTerminal() {
		t.Fatal("CANCELLED must be terminal")
	}
	if !BookingStatusCompleted.IsTerminal() {
		t.Fatal("COMPLETED must be terminal")
	}
}

func TestIntervalsOverlap(t *testing.T) {
	base := time.Date(2030, 6, 1, 10, 0, 0, 0, time.UTC)
	h := func(n int) time.Time { return base.Add(time.Duration(n) * time.Hour) }

	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd time.Time
		want                       bool
	}{
		{"identical windows", h(0), h(4), h(0), h(4), true},
		{"contained window", h(0), h(4), h(1), h(2), true},
		{"partial overlap left", h(0), h(4), h(3), h(6), true},
		{"partial overlap right", h(3), h(6), h(0), h(4), true},
		{"touching at boundary is free", h(0), h(4), h(4), h(8), false},
		{"touching at boundary reversed", h(4), h(8), h(0), h(4), false},
		{"fully disjoint", h(0), h(2), h(5), h(7), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IntervalsOverlap(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd)
			if got != tt.want {
				t.Fatalf("IntervalsOverlap = %v, want %v", got, tt.want)
			}
			// The predicate is symmetric in its two windows.
			if rev := IntervalsOverlap(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd); rev != got {
				t.Fatalf("IntervalsOverlap not symmetric: %v vs %v", got, rev)
			}
		})
	}
}

func TestIntervalsOverlapRandomized(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	base := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 2000; i++ {
		aStart := base.Add(time.Duration(rng.Intn(200)) * time.Hour)
		aEnd := aStart.Add(time.Duration(1+rng.Intn(48)) * time.Hour)
		bStart := base.Add(time.Duration(rng.Intn(200)) * time.Hour)
		bEnd := bStart.Add(time.Duration(1+rng.Intn(48)) * time.Hour)

		// Oracle: half-open intervals intersect iff the later start is
		// before the earlier end.
		laterStart := aStart
		if bStart.After(laterStart) {
			laterStart = bStart
		}
		earlierEnd := aEnd
		if bEnd.Before(earlierEnd) {
			earlierEnd = bEnd
		}
		want := laterStart.Before(earlierEnd)

		if got := IntervalsOverlap(aStart, aEnd, bStart, bEnd); got != want {
			t.Fatalf("IntervalsOverlap([%v, %v), [%v, %v)) = %v, want %v", aStart, aEnd, bStart, bEnd, got, want)
		}
	}
}

func TestBookingBlocksVehicle(t *testing.T) {
	b := &Booking{Status: BookingStatusBooked}
	if !b.BlocksVehicle() {
		t.Fatal("BOOKED must block the vehicle")
	}
	b.Status = BookingStatusCompleted
	if !b.BlocksVehicle() {
		t.Fatal("COMPLETED must still block the vehicle")
	}
	b.Status = BookingStatusCancelled
	if b.BlocksVehicle() {
		t.Fatal("CANCELLED must release the vehicle")
	}
}
