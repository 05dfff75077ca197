package models

// LocationType classifies a storage slot.
type LocationType string

const (
	LocationPick    LocationType = "PICK"
	LocationReserve LocationType = "RESERVE"
)

// LocationMap indexes location types by location code.
type LocationMap map[string]LocationType

// Type returns the location type and whether the code is known.
func (m LocationMap) Type(code string) (LocationType, bool) {
	t, ok := m[code]
	return t, ok
}
