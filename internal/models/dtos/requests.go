package dtos

// ShipRequest is the JSON body for ship create and update calls. Every
// field is optional at the wire level so updates can be partial; the
// service decides which absences are acceptable. ProdDate travels as
// epoch milliseconds.
type ShipRequest struct {
	Name     *string  `json:"name"`
	Planet   *string  `json:"planet"`
	ShipType *string  `json:"shipType"`
	ProdDate *int64   `json:"prodDate"`
	IsUsed   *bool    `json:"isUsed"`
	Speed    *float64 `json:"speed"`
	CrewSize *int     `json:"crewSize"`
}
