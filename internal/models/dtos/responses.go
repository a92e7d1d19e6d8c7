package dtos

import (
	"stellar-experiment/admiralty/internal/models/entities"
	"stellar-experiment/admiralty/internal/query"
)

type APIResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	ResponseTime string `json:"response_time"`
	Data         any    `json:"data,omitempty"`
}

// ShipResponse is the wire form of a ship record. ProdDate is epoch
// milliseconds, mirroring the request format.
type ShipResponse struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Planet   string  `json:"planet"`
	ShipType string  `json:"shipType"`
	ProdDate int64   `json:"prodDate"`
	IsUsed   bool    `json:"isUsed"`
	Speed    float64 `json:"speed"`
	CrewSize int     `json:"crewSize"`
	Rating   float64 `json:"rating"`
}

func NewShipResponse(ship *entities.Ship) ShipResponse {
	return ShipResponse{
		ID:       ship.ID,
		Name:     ship.Name,
		Planet:   ship.Planet,
		ShipType: string(ship.ShipType),
		ProdDate: ship.ProdDate.UnixMilli(),
		IsUsed:   ship.IsUsed,
		Speed:    ship.Speed,
		CrewSize: ship.CrewSize,
		Rating:   ship.Rating,
	}
}

// ShipPageResponse carries one page of ships plus the total match count
// so clients can render pagers without a second request.
type ShipPageResponse struct {
	Items      []ShipResponse `json:"items"`
	PageNumber int            `json:"pageNumber"`
	PageSize   int            `json:"pageSize"`
	TotalCount int64          `json:"totalCount"`
}

func NewShipPageResponse(page *query.Page[entities.Ship]) ShipPageResponse {
	items := make([]ShipResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, NewShipResponse(&page.Items[i]))
	}
	return ShipPageResponse{
		Items:      items,
		PageNumber: page.PageIndex,
		PageSize:   page.PageSize,
		TotalCount: page.Total,
	}
}

// FleetStats aggregates the whole register. Averages are rounded to two
// decimals; NewShips counts records with isUsed false.
type FleetStats struct {
	TotalShips    int64            `json:"totalShips"`
	UsedShips     int64            `json:"usedShips"`
	NewShips      int64            `json:"newShips"`
	ShipsByType   map[string]int64 `json:"shipsByType"`
	AverageSpeed  float64          `json:"averageSpeed"`
	AverageRating float64          `json:"averageRating"`
	MinCrewSize   int64            `json:"minCrewSize"`
	MaxCrewSize   int64            `json:"maxCrewSize"`
	TotalCrew     int64            `json:"totalCrew"`
}
