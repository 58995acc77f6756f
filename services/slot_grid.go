package services

import "notary_admin_go/models"

// DefaultGridSlots is the number of positions in the dashboard document grid
const DefaultGridSlots = 4

// Slot kinds
const (
	SlotKindDocument = "document"
	SlotKindEmpty    = "empty"
)

// Slot is one fixed position of the display grid
type Slot struct {
	Kind   string                `json:"kind"`
	Record *models.DisplayRecord `json:"record,omitempty"`
}

// IsEmpty reports whether the slot renders as a placeholder
func (s Slot) IsEmpty() bool {
	return s.Kind == SlotKindEmpty
}

// PackSlots lays records out over exactly `slots` positions.
// While loading every slot is empty. Records beyond the slot count are dropped,
// keeping the first ones in input order.
func PackSlots(records []models.DisplayRecord, loading bool, slots int) []Slot {
	if slots <= 0 {
		slots = DefaultGridSlots
	}

	grid := make([]Slot, slots)
	for i := range grid {
		grid[i] = Slot{Kind: SlotKindEmpty}
	}
	if loading {
		return grid
	}

	for i := 0; i < len(records) && i < slots; i++ {
		record := records[i]
		grid[i] = Slot{Kind: SlotKindDocument, Record: &record}
	}
	return grid
}
