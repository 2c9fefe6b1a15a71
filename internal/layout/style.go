package layout

// Direction specifies how a container places its children.
type Direction uint8

const (
	Stack  Direction = iota // Children overlap at the content origin
	Row                     // Children laid out left-to-right
	Column                  // Children laid out top-to-bottom
)

func (d Direction) String() string {
	switch d {
	case Row:
		return "Row"
	case Column:
		return "Column"
	default:
		return "Stack"
	}
}

// Style contains the layout properties of a node.
type Style struct {
	Width     Value
	Height    Value
	MinWidth  Value
	MinHeight Value
	MaxWidth  Value
	MaxHeight Value

	Direction Direction
	Gap       float64 // Space between children along the main axis
	Padding   Edges

	// Position offsets the node inside a Stack parent. Ignored by Row/Column.
	Position OffsetF
}

// DefaultStyle returns a Style with auto sizing and no constraints.
func DefaultStyle() Style {
	return Style{
		Width:     Auto(),
		Height:    Auto(),
		MinWidth:  Fixed(0),
		MinHeight: Fixed(0),
		MaxWidth:  Auto(),
		MaxHeight: Auto(),
	}
}
