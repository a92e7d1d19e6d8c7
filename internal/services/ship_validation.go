package services

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"time"
	"unicode/utf8"

	"stellar-experiment/admiralty/internal/models/entities"
)

// Field constraints for ship records. Production years are bounded by the
// in-game "current" year 3019.
const (
	MaxNameLength = 50

	MinProdYear = 2800
	MaxProdYear = 3019

	MinSpeed = 0.01
	MaxSpeed = 0.99

	MinCrewSize = 1
	MaxCrewSize = 9999
)

// ValidateID checks a route-level ship id. Zero and negative ids are
// rejected before any storage lookup.
func ValidateID(id int64) error {
	if id <= 0 {
		return ErrInvalidID
	}
	return nil
}

// ValidateName rejects missing, empty and overlong names.
func ValidateName(name *string) error {
	return validateLabel(entities.FieldName, name)
}

// ValidatePlanet rejects missing, empty and overlong planet names.
func ValidatePlanet(planet *string) error {
	return validateLabel(entities.FieldPlanet, planet)
}

func validateLabel(field string, value *string) error {
	if value == nil || *value == "" {
		return invalidField(field, "must not be empty")
	}
	if utf8.RuneCountInString(*value) > MaxNameLength {
		return invalidField(field, fmt.Sprintf("must be at most %d characters", MaxNameLength))
	}
	return nil
}

// ValidateShipType rejects missing and unrecognized ship types.
func ValidateShipType(t *entities.ShipType) error {
	if t == nil {
		return invalidField(entities.FieldShipType, "must be provided")
	}
	if !t.Valid() {
		return invalidField(entities.FieldShipType, fmt.Sprintf("unknown type %q", string(*t)))
	}
	return nil
}

// ValidateProdDate rejects missing dates and dates whose UTC calendar
// year falls outside [2800, 3019].
func ValidateProdDate(d *time.Time) error {
	if d == nil {
		return invalidField(entities.FieldProdDate, "must be provided")
	}
	year := d.UTC().Year()
	if year < MinProdYear || year > MaxProdYear {
		return invalidField(entities.FieldProdDate,
			fmt.Sprintf("year must be between %d and %d", MinProdYear, MaxProdYear))
	}
	return nil
}

// ValidateSpeed rejects missing speeds and speeds outside [0.01, 0.99].
// The bounds are inclusive and apply to the raw value, before rounding.
func ValidateSpeed(v *float64) error {
	if v == nil {
		return invalidField(entities.FieldSpeed, "must be provided")
	}
	if *v < MinSpeed || *v > MaxSpeed {
		return invalidField(entities.FieldSpeed,
			fmt.Sprintf("must be between %v and %v", MinSpeed, MaxSpeed))
	}
	return nil
}

// ValidateCrewSize rejects missing crew sizes and sizes outside [1, 9999].
func ValidateCrewSize(n *int) error {
	if n == nil {
		return invalidField(entities.FieldCrewSize, "must be provided")
	}
	if *n < MinCrewSize || *n > MaxCrewSize {
		return invalidField(entities.FieldCrewSize,
			fmt.Sprintf("must be between %d and %d", MinCrewSize, MaxCrewSize))
	}
	return nil
}

// ComputeRating derives a ship's rating from its production year, speed
// and usage state:
//
//	rating = 80 * speed * k / (3019 - prodYear + 1)
//
// where k is 0.5 for used ships and 1.0 otherwise. The result is rounded
// half-up to two decimals. Rating is never supplied by callers; it is
// recomputed on every create and update.
func ComputeRating(prodYear int, speed float64, isUsed bool) float64 {
	k := 1.0
	if isUsed {
		k = 0.5
	}
	raw := 80 * speed * k / float64(MaxProdYear-prodYear+1)
	return Round2(raw)
}

// Round2 rounds half away from zero to two decimal places. Ties are
// decided on the value's shortest decimal representation, not its binary
// one: 0.285 rounds to 0.29 even though the nearest double sits just
// below the tie.
func Round2(v float64) float64 {
	r, ok := new(big.Rat).SetString(strconv.FormatFloat(v, 'g', -1, 64))
	if !ok {
		// NaN or Inf
		return math.Round(v*100) / 100
	}

	r.Mul(r, big.NewRat(100, 1))
	half := big.NewRat(1, 2)
	if r.Sign() < 0 {
		r.Sub(r, half)
	} else {
		r.Add(r, half)
	}

	// Truncation toward zero lands on half-away-from-zero after the
	// half shift above.
	scaled := new(big.Int).Quo(r.Num(), r.Denom())
	out, _ := new(big.Rat).SetFrac(scaled, big.NewInt(100)).Float64()
	return out
}
