package entity

// Aircraft is one row of the static aircraft type reference table.
// Name follows the "Manufacturer Model ..." convention.
type Aircraft struct {
	ICAO string
	Name string
}
