package entity

import "github.com/google/uuid"

type TheaterStatus string

const (
	TheaterStatusActive      TheaterStatus = "Active"
	TheaterStatusInactive    TheaterStatus = "Inactive"
	TheaterStatusMaintenance TheaterStatus = "Maintenance"
)

type SeatType string

const (
	SeatTypePremium SeatType = "Premium"
	SeatTypeGold    SeatType = "Gold"
	SeatTypeSilver  SeatType = "Silver"
	SeatTypeRegular SeatType = "Regular"
)

func ValidSeatType(t SeatType) bool {
	switch t {
	case SeatTypePremium, SeatTypeGold, SeatTypeSilver, SeatTypeRegular:
		return true
	}
	return false
}

type Theater struct {
	Base
	Name      string        `db:"name"`
	Address   string        `db:"address"`
	City      string        `db:"city"`
	State     string        `db:"state"`
	Pincode   string        `db:"pincode"`
	Latitude  *float64      `db:"latitude"`
	Longitude *float64      `db:"longitude"`
	Amenities []string      `db:"amenities"`
	Phone     string        `db:"phone"`
	Email     string        `db:"email"`
	Status    TheaterStatus `db:"status"`
	Screens   []Screen
}

// SeatTypeRows maps a seat type and its price to the seat rows it covers,
// e.g. Premium rows ["A","B"].
type SeatTypeRows struct {
	Type  SeatType `json:"type"`
	Price int      `json:"price"`
	Rows  []string `json:"rows"`
}

// SeatLayout is the per-screen seating template. Rows are lettered A..
// and columns numbered 1..SeatsPerRow; seat identity is row letter plus
// column, e.g. "C7".
type SeatLayout struct {
	Rows        int            `json:"rows"`
	SeatsPerRow int            `json:"seats_per_row"`
	SeatTypes   []SeatTypeRows `json:"seat_types"`
}

type Screen struct {
	BaseSimple
	TheaterID uuid.UUID  `db:"theater_id"`
	ScreenID  string     `db:"screen_id"` // theater-local identifier, e.g. "SCRN-1"
	Name      string     `db:"name"`
	Capacity  int        `db:"capacity"`
	Layout    SeatLayout `db:"layout"`
}

// SeatTypeForRow resolves the seat type of a row letter from the layout.
// Rows not claimed by any type fall back to Regular.
func (s *Screen) SeatTypeForRow(row string) SeatType {
	for _, st := range s.Layout.SeatTypes {
		for _, r := range st.Rows {
			if r == row {
				return st.Type
			}
		}
	}
	return SeatTypeRegular
}

// RowLetter returns the letter for the i-th row (0-based): A, B, ... Z.
func RowLetter(i int) string {
	return string(rune('A' + i))
}
