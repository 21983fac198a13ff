package enums

import "fmt"

// InventoryTransactionType is the direction of a stock ledger entry.
type InventoryTransactionType string

const (
	InventoryTransactionIn     InventoryTransactionType = "in"
	InventoryTransactionOut    InventoryTransactionType = "out"
	InventoryTransactionAdjust InventoryTransactionType = "adjust"
)

var validInventoryTransactionTypes = []InventoryTransactionType{
	InventoryTransactionIn,
	InventoryTransactionOut,
	InventoryTransactionAdjust,
}

// String implements fmt.Stringer.
func (i InventoryTransactionType) String() string {
	return string(i)
}

// IsValid reports whether the value is a known InventoryTransactionType.
func (i InventoryTransactionType) IsValid() bool {
	for _, candidate := range validInventoryTransactionTypes {
		if candidate == i {
			return true
		}
	}
	return false
}

// ParseInventoryTransactionType converts raw input into an InventoryTransactionType.
func ParseInventoryTransactionType(value string) (InventoryTransactionType, error) {
	for _, candidate := range validInventoryTransactionTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid inventory transaction type %q", value)
}
