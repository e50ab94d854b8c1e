package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase records equipment bought into a base.
type Purchase struct {
	ID            string          `json:"id"`
	EquipmentType EquipmentType   `json:"equipmentType"`
	Quantity      int             `json:"quantity"`
	BaseID        string          `json:"baseId"`
	Date          string          `json:"date"`
	PurchaseOrder string          `json:"purchaseOrder"`
	Supplier      string          `json:"supplier"`
	Cost          decimal.Decimal `json:"cost"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// Transfer records equipment moved from one base to another.
type Transfer struct {
	ID            string        `json:"id"`
	EquipmentType EquipmentType `json:"equipmentType"`
	Quantity      int           `json:"quantity"`
	FromBaseID    string        `json:"fromBaseId"`
	ToBaseID      string        `json:"toBaseId"`
	Date          string        `json:"date"`
	AuthorizedBy  string        `json:"authorizedBy"`
	Status        string        `json:"status"`
	Notes         string        `json:"notes,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// Transfer statuses.
const (
	TransferStatusPending   = "pending"
	TransferStatusInTransit = "in-transit"
	TransferStatusCompleted = "completed"
	TransferStatusRejected  = "rejected"
)

// Assignment records a piece of equipment handed to a service member.
type Assignment struct {
	ID           string    `json:"id"`
	EquipmentID  string    `json:"equipmentId"`
	PersonnelID  string    `json:"personnelId"`
	DateAssigned string    `json:"dateAssigned"`
	DateReturned string    `json:"dateReturned,omitempty"`
	Purpose      string    `json:"purpose"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`

	// Joined fields (not always populated).
	EquipmentName string        `json:"equipmentName,omitempty"`
	EquipmentType EquipmentType `json:"equipmentType,omitempty"`
	BaseID        string        `json:"baseId,omitempty"`
	PersonnelName string        `json:"personnelName,omitempty"`
}

// Assignment statuses.
const (
	AssignmentStatusActive   = "active"
	AssignmentStatusReturned = "returned"
	AssignmentStatusLost     = "lost"
)

// Expenditure records equipment consumed at a base.
type Expenditure struct {
	ID            string        `json:"id"`
	EquipmentType EquipmentType `json:"equipmentType"`
	Quantity      int           `json:"quantity"`
	BaseID        string        `json:"baseId"`
	Date          string        `json:"date"`
	AuthorizedBy  string        `json:"authorizedBy"`
	Purpose       string        `json:"purpose"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// FilterBase reports whether the purchase was made for base id.
func (p Purchase) FilterBase(id string) bool { return p.BaseID == id }

// FilterType returns the purchased equipment type.
func (p Purchase) FilterType() EquipmentType { return p.EquipmentType }

// FilterDates returns the purchase date as both ends of the span.
func (p Purchase) FilterDates() (string, string) { return p.Date, p.Date }

// FilterBase reports whether either side of the transfer is base id.
func (t Transfer) FilterBase(id string) bool { return t.FromBaseID == id || t.ToBaseID == id }

// FilterType returns the transferred equipment type.
func (t Transfer) FilterType() EquipmentType { return t.EquipmentType }

// FilterDates returns the transfer date as both ends of the span.
func (t Transfer) FilterDates() (string, string) { return t.Date, t.Date }

// FilterStatus returns the transfer status.
func (t Transfer) FilterStatus() string { return t.Status }

// FilterRoute returns the source and destination bases.
func (t Transfer) FilterRoute() (string, string) { return t.FromBaseID, t.ToBaseID }

// FilterBase reports whether the assigned equipment belongs to base id.
func (a Assignment) FilterBase(id string) bool { return a.BaseID == id }

// FilterType returns the type of the assigned equipment.
func (a Assignment) FilterType() EquipmentType { return a.EquipmentType }

// FilterDates returns the assignment span. An open assignment ends on the
// day it started.
func (a Assignment) FilterDates() (string, string) {
	if a.DateReturned == "" {
		return a.DateAssigned, a.DateAssigned
	}
	return a.DateAssigned, a.DateReturned
}

// FilterStatus returns the assignment status.
func (a Assignment) FilterStatus() string { return a.Status }

// FilterBase reports whether the expenditure happened at base id.
func (e Expenditure) FilterBase(id string) bool { return e.BaseID == id }

// FilterType returns the expended equipment type.
func (e Expenditure) FilterType() EquipmentType { return e.EquipmentType }

// FilterDates returns the expenditure date as both ends of the span.
func (e Expenditure) FilterDates() (string, string) { return e.Date, e.Date }
