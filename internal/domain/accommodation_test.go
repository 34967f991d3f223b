package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestParseAccommodationType(t *testing.T) {
	tests := []struct {
		in   string
		want AccommodationType
	}{
		{"hotel", AccommodationHotel},
		{"Hotel", AccommodationHotel},
		{" VILLA ", AccommodationVilla},
		{"guesthouse", AccommodationGuesthouse},
		{"castle", AccommodationOther},
		{"", AccommodationOther},
	}

	for _, tt := range tests {
		if got := ParseAccommodationType(tt.in); got != tt.want {
			t.Errorf("ParseAccommodationType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNewCoordinate(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
		wantErr  bool
	}{
		{"origin", 0, 0, false},
		{"bali", -8.4095, 115.1889, false},
		{"boundary", 90, 180, false},
		{"latitude too high", 90.1, 0, true},
		{"latitude too low", -90.1, 0, true},
		{"longitude too high", 0, 180.1, true},
		{"longitude too low", 0, -180.1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCoordinate(tt.lat, tt.lon)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewCoordinate(%v, %v) err = %v, wantErr %v", tt.lat, tt.lon, err, tt.wantErr)
			}
		})
	}
}

func TestNewAccommodation(t *testing.T) {
	id := uuid.New()
	coord := Coordinate{Latitude: -8.4, Longitude: 115.1}

	tests := []struct {
		name        string
		accName     string
		destination string
		wantErr     bool
	}{
		{"valid", "Grand Villa", "Ubud, Bali", false},
		{"empty name", "", "Ubud, Bali", true},
		{"blank name", "   ", "Ubud, Bali", true},
		{"empty destination", "Grand Villa", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc, err := NewAccommodation(id, tt.accName, tt.destination, AccommodationVilla, coord)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewAccommodation err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && acc.ID != id {
				t.Errorf("ID = %v, want %v", acc.ID, id)
			}
		})
	}
}

func TestNewSearchLogStampsIdentity(t *testing.T) {
	sessionID, searchID := uuid.New(), uuid.New()
	rec := NewSearchLog(sessionID, searchID, "bali", SearchFreeText, 0, 5, 42, false, 17, LogValid, "")

	if rec.LogID == uuid.Nil {
		t.Error("LogID not minted")
	}
	if rec.Timestamp.IsZero() {
		t.Error("Timestamp not stamped")
	}
	if rec.SearchID != searchID || rec.SessionID != sessionID {
		t.Error("identity fields not carried over")
	}

	other := NewSearchLog(sessionID, searchID, "bali", SearchFreeText, 0, 5, 42, false, 17, LogValid, "")
	if other.LogID == rec.LogID {
		t.Error("two records share a LogID")
	}
}
