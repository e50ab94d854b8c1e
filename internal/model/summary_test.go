package model

import "testing"

func TestNewSummaryClosingBalance(t *testing.T) {
	s := NewSummary(EquipmentAmmunition, 20000, 10000, 5000, 0, 0, 3500)
	if s.ClosingBalance != 31500 {
		t.Errorf("expected closing balance 31500, got %d", s.ClosingBalance)
	}
	if s.NetMovement() != 15000 {
		t.Errorf("expected net movement 15000, got %d", s.NetMovement())
	}
}

func TestNewSummaryAssignedStaysOnHand(t *testing.T) {
	s := NewSummary(EquipmentWeapon, 100, 50, 0, 20, 30, 0)
	if s.ClosingBalance != 130 {
		t.Errorf("expected closing balance 130, got %d", s.ClosingBalance)
	}
}
