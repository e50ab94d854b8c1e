package model

// Base is a military installation that holds equipment and personnel.
type Base struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	CommanderID string `json:"commanderId,omitempty"`
}

// Personnel is a service member equipment can be assigned to.
type Personnel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// OpeningStock is the quantity of an equipment type a base held before any
// recorded movement.
type OpeningStock struct {
	BaseID        string        `json:"baseId"`
	EquipmentType EquipmentType `json:"equipmentType"`
	Quantity      int           `json:"quantity"`
}
