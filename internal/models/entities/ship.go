package entities

import "time"

// ShipType is the fixed classification of a registered ship. Extend only by
// adding variants.
type ShipType string

const (
	ShipTypeTransport ShipType = "TRANSPORT"
	ShipTypeMilitary  ShipType = "MILITARY"
	ShipTypeMerchant  ShipType = "MERCHANT"
)

// ParseShipType maps a wire string onto the variant set. The boolean is false
// for anything outside the set, including the empty string.
func ParseShipType(s string) (ShipType, bool) {
	switch ShipType(s) {
	case ShipTypeTransport, ShipTypeMilitary, ShipTypeMerchant:
		return ShipType(s), true
	}
	return "", false
}

// Valid reports whether t is one of the recognized variants.
func (t ShipType) Valid() bool {
	_, ok := ParseShipType(string(t))
	return ok
}

// Logical field names for ships. The filter builder emits conditions against
// these names and both storage backends resolve them; they double as the
// column names of the ships table.
const (
	FieldID       = "id"
	FieldName     = "name"
	FieldPlanet   = "planet"
	FieldShipType = "ship_type"
	FieldProdDate = "prod_date"
	FieldIsUsed   = "is_used"
	FieldSpeed    = "speed"
	FieldCrewSize = "crew_size"
	FieldRating   = "rating"
)

// Ship is a registered starship. Speed and Rating are stored rounded half-up
// to two decimals; Rating is derived from (ProdDate, Speed, IsUsed) and is
// recomputed by the service on every mutation of those fields.
type Ship struct {
	ID       int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name     string    `gorm:"column:name;size:50"`
	Planet   string    `gorm:"column:planet;size:50"`
	ShipType ShipType  `gorm:"column:ship_type"`
	ProdDate time.Time `gorm:"column:prod_date"`
	IsUsed   bool      `gorm:"column:is_used"`
	Speed    float64   `gorm:"column:speed"`
	CrewSize int       `gorm:"column:crew_size"`
	Rating   float64   `gorm:"column:rating"`
}

// TableName specifies the table name for GORM
func (Ship) TableName() string {
	return "ships"
}

// ProdYear returns the UTC calendar year of the production date, the only
// component of ProdDate that validation and rating depend on.
func (s *Ship) ProdYear() int {
	return s.ProdDate.UTC().Year()
}

// Equal reports full-field equality, identity included. Production dates are
// compared as instants.
func (s Ship) Equal(o Ship) bool {
	return s.ID == o.ID &&
		s.Name == o.Name &&
		s.Planet == o.Planet &&
		s.ShipType == o.ShipType &&
		s.ProdDate.Equal(o.ProdDate) &&
		s.IsUsed == o.IsUsed &&
		s.Speed == o.Speed &&
		s.CrewSize == o.CrewSize &&
		s.Rating == o.Rating
}
