package types

import "github.com/google/uuid"

// JSONMap stores free-form object properties as a jsonb column.
type JSONMap map[string]any

// ItemOption is the immutable snapshot of a menu add-on taken at order time.
// Price changes to the menu must never retroactively affect existing orders.
type ItemOption struct {
	ID         *uuid.UUID `json:"id"`
	Name       string     `json:"name"`
	ExtraPrice int64      `json:"extra_price"`
}

// ItemOptions is the jsonb array stored on an order item.
type ItemOptions []ItemOption

// ExtraTotal sums the option surcharges.
func (o ItemOptions) ExtraTotal() int64 {
	var total int64
	for _, opt := range o {
		total += opt.ExtraPrice
	}
	return total
}
