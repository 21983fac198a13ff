package enums

import "fmt"

// LayoutObjectType classifies an element on the floor plan.
type LayoutObjectType string

const (
	LayoutObjectTable     LayoutObjectType = "table"
	LayoutObjectWall      LayoutObjectType = "wall"
	LayoutObjectWindow    LayoutObjectType = "window"
	LayoutObjectDoor      LayoutObjectType = "door"
	LayoutObjectReception LayoutObjectType = "reception"
)

var validLayoutObjectTypes = []LayoutObjectType{
	LayoutObjectTable,
	LayoutObjectWall,
	LayoutObjectWindow,
	LayoutObjectDoor,
	LayoutObjectReception,
}

// String implements fmt.Stringer.
func (l LayoutObjectType) String() string {
	return string(l)
}

// IsValid reports whether the value is a known LayoutObjectType.
func (l LayoutObjectType) IsValid() bool {
	for _, candidate := range validLayoutObjectTypes {
		if candidate == l {
			return true
		}
	}
	return false
}

// ParseLayoutObjectType converts raw input into a LayoutObjectType.
func ParseLayoutObjectType(value string) (LayoutObjectType, error) {
	for _, candidate := range validLayoutObjectTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid layout object type %q", value)
}
