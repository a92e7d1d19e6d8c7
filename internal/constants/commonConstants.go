package constants

type (
	APIStatus   string
	CachePrefix string
)

const (
	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixShip       CachePrefix = "SHIP_"
	CachePrefixFleetStats CachePrefix = "FLEET_STATS"
)

// Pagination bounds for ship listings. Requests outside these bounds are
// clamped, not rejected.
const (
	DefaultPageSize = 3
	MaxPageSize     = 100
)

// Sort tokens accepted by the list and count endpoints.
const (
	OrderID     = "ID"
	OrderSpeed  = "SPEED"
	OrderDate   = "DATE"
	OrderRating = "RATING"
)
