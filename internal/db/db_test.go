package db

import "testing"

func TestSeedLoadsDemoData(t *testing.T) {
	database := NewSeededTestDB(t)

	counts := map[string]int{
		"users":         5,
		"bases":         3,
		"personnel":     5,
		"equipment":     3,
		"opening_stock": 12,
		"purchases":     3,
		"transfers":     3,
		"assignments":   2,
		"expenditures":  2,
	}
	for table, want := range counts {
		var got int
		if err := database.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&got); err != nil {
			t.Fatalf("counting %s: %v", table, err)
		}
		if got != want {
			t.Errorf("expected %d rows in %s, got %d", want, table, got)
		}
	}
}

func TestSeedTwiceFails(t *testing.T) {
	database := NewSeededTestDB(t)
	if err := Seed(database); err == nil {
		t.Error("expected error seeding a non-empty store")
	}
}

func TestOpenMemoryIsPrivate(t *testing.T) {
	a, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer a.Close()

	b, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer b.Close()

	if _, err := a.Exec(`DELETE FROM purchases`); err != nil {
		t.Fatalf("deleting: %v", err)
	}

	var n int
	if err := b.QueryRow(`SELECT COUNT(*) FROM purchases`).Scan(&n); err != nil {
		t.Fatalf("counting: %v", err)
	}
	if n != 3 {
		t.Errorf("expected second store untouched with 3 purchases, got %d", n)
	}
}
