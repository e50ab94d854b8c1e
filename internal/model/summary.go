package model

// EquipmentSummary is the derived stock position of one equipment type over
// a reporting period. It is never stored.
type EquipmentSummary struct {
	EquipmentType  EquipmentType `json:"equipmentType"`
	OpeningBalance int           `json:"openingBalance"`
	Purchases      int           `json:"purchases"`
	TransferIn     int           `json:"transferIn"`
	TransferOut    int           `json:"transferOut"`
	Assigned       int           `json:"assigned"`
	Expended       int           `json:"expended"`
	ClosingBalance int           `json:"closingBalance"`
}

// NewSummary builds a summary whose closing balance is derived from the
// other columns. Assigned stock is still on hand and does not reduce it.
func NewSummary(t EquipmentType, opening, purchases, transferIn, transferOut, assigned, expended int) EquipmentSummary {
	return EquipmentSummary{
		EquipmentType:  t,
		OpeningBalance: opening,
		Purchases:      purchases,
		TransferIn:     transferIn,
		TransferOut:    transferOut,
		Assigned:       assigned,
		Expended:       expended,
		ClosingBalance: opening + purchases + transferIn - transferOut - expended,
	}
}

// NetMovement is purchases plus transfers in minus transfers out.
func (s EquipmentSummary) NetMovement() int {
	return s.Purchases + s.TransferIn - s.TransferOut
}

// Totals sums equipment summaries for the dashboard cards.
type Totals struct {
	OpeningBalance int `json:"openingBalance"`
	Purchases      int `json:"purchases"`
	TransferIn     int `json:"transferIn"`
	TransferOut    int `json:"transferOut"`
	Assigned       int `json:"assigned"`
	Expended       int `json:"expended"`
	ClosingBalance int `json:"closingBalance"`
	NetMovement    int `json:"netMovement"`
}
