package model

import "slices"

// EquipmentType classifies equipment and movement records.
type EquipmentType string

// Equipment types, in display order.
const (
	EquipmentWeapon        EquipmentType = "weapon"
	EquipmentVehicle       EquipmentType = "vehicle"
	EquipmentAmmunition    EquipmentType = "ammunition"
	EquipmentCommunication EquipmentType = "communication"
	EquipmentMedical       EquipmentType = "medical"
)

// EquipmentTypes lists every equipment type in display order.
var EquipmentTypes = []EquipmentType{
	EquipmentWeapon,
	EquipmentVehicle,
	EquipmentAmmunition,
	EquipmentCommunication,
	EquipmentMedical,
}

// Valid reports whether t is a known equipment type.
func (t EquipmentType) Valid() bool {
	return slices.Contains(EquipmentTypes, t)
}

// Label returns the plural display name used in selects and tables.
func (t EquipmentType) Label() string {
	switch t {
	case EquipmentWeapon:
		return "Weapons"
	case EquipmentVehicle:
		return "Vehicles"
	case EquipmentAmmunition:
		return "Ammunition"
	case EquipmentCommunication:
		return "Communication"
	case EquipmentMedical:
		return "Medical"
	default:
		return string(t)
	}
}

// Equipment is an individually tracked piece of equipment.
type Equipment struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Type         EquipmentType `json:"type"`
	SerialNumber string        `json:"serialNumber"`
	Status       string        `json:"status"`
	BaseID       string        `json:"baseId"`
	AssignedTo   string        `json:"assignedTo,omitempty"`
}

// Equipment statuses.
const (
	EquipmentStatusAvailable   = "available"
	EquipmentStatusAssigned    = "assigned"
	EquipmentStatusMaintenance = "maintenance"
	EquipmentStatusExpended    = "expended"
)
