package tui

// Dimensions holds the calculated sizes of the screen regions
type Dimensions struct {
	HeaderHeight int // Fixed: 1 line
	StatusHeight int // Fixed: 1 line

	BodyWidth  int
	BodyHeight int
}

// CalculateDimensions splits the terminal into a header line, the record
// list and a status line.
func CalculateDimensions(termWidth, termHeight int) Dimensions {
	dims := Dimensions{
		HeaderHeight: 1,
		StatusHeight: 1,
	}

	dims.BodyWidth = termWidth
	dims.BodyHeight = termHeight - dims.HeaderHeight - dims.StatusHeight

	if dims.BodyWidth < 0 {
		dims.BodyWidth = 0
	}
	if dims.BodyHeight < 0 {
		dims.BodyHeight = 0
	}

	return dims
}
