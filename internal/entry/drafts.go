package entry

import (
	"github.com/shopspring/decimal"

	"github.com/erazemk/milasset/internal/model"
)

// PurchaseDraft is the purchase form.
type PurchaseDraft struct {
	EquipmentType model.EquipmentType `json:"equipmentType" validate:"required,equipmenttype"`
	Quantity      int                 `json:"quantity" validate:"gt=0"`
	BaseID        string              `json:"baseId" validate:"required"`
	Date          string              `json:"date" validate:"required,datetime=2006-01-02"`
	PurchaseOrder string              `json:"purchaseOrder" validate:"required,max=64"`
	Supplier      string              `json:"supplier" validate:"required,max=128"`
	Cost          decimal.Decimal     `json:"cost" validate:"gt=0"`
	Notes         string              `json:"notes" validate:"max=1000"`
}

// TransferDraft is the transfer form.
type TransferDraft struct {
	EquipmentType model.EquipmentType `json:"equipmentType" validate:"required,equipmenttype"`
	Quantity      int                 `json:"quantity" validate:"gt=0"`
	FromBaseID    string              `json:"fromBaseId" validate:"required"`
	ToBaseID      string              `json:"toBaseId" validate:"required,nefield=FromBaseID"`
	Date          string              `json:"date" validate:"required,datetime=2006-01-02"`
	Notes         string              `json:"notes" validate:"max=1000"`
}

// AssignmentDraft is the assignment form.
type AssignmentDraft struct {
	EquipmentID  string `json:"equipmentId" validate:"required"`
	PersonnelID  string `json:"personnelId" validate:"required"`
	DateAssigned string `json:"dateAssigned" validate:"required,datetime=2006-01-02"`
	Purpose      string `json:"purpose" validate:"required,max=256"`
}

// ExpenditureDraft is the expenditure form.
type ExpenditureDraft struct {
	EquipmentType model.EquipmentType `json:"equipmentType" validate:"required,equipmenttype"`
	Quantity      int                 `json:"quantity" validate:"gt=0"`
	BaseID        string              `json:"baseId" validate:"required"`
	Date          string              `json:"date" validate:"required,datetime=2006-01-02"`
	Purpose       string              `json:"purpose" validate:"required,max=256"`
}
