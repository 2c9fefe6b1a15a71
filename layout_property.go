package ace

// PropertyChangeFlag records which kind of work a property change requires.
type PropertyChangeFlag uint8

const (
	PropertyUpdateNormal         PropertyChangeFlag = 0
	PropertyUpdateMeasure        PropertyChangeFlag = 1 << 0
	PropertyUpdateLayout         PropertyChangeFlag = 1 << 1
	PropertyUpdateMeasureSelf    PropertyChangeFlag = 1 << 2
	PropertyUpdateRender         PropertyChangeFlag = 1 << 3
	PropertyUpdateByChildRequest PropertyChangeFlag = 1 << 4
)

// CheckNeedRequestMeasure reports whether flag requires measuring.
func CheckNeedRequestMeasure(flag PropertyChangeFlag) bool {
	return flag&(PropertyUpdateMeasure|PropertyUpdateMeasureSelf|PropertyUpdateByChildRequest) != 0
}

// CheckNeedRequestLayout reports whether flag requires measuring or arranging.
func CheckNeedRequestLayout(flag PropertyChangeFlag) bool {
	return CheckNeedRequestMeasure(flag) || flag&PropertyUpdateLayout != 0
}

// Visibility controls painting and layout participation.
type Visibility uint8

const (
	Visible Visibility = iota
	// Invisible nodes keep their space but are not painted.
	Invisible
	// Gone nodes take no space and are not painted.
	Gone
)

func (v Visibility) String() string {
	switch v {
	case Invisible:
		return "invisible"
	case Gone:
		return "gone"
	default:
		return "visible"
	}
}

// LayoutProperty is the layout input of a FrameNode.
type LayoutProperty struct {
	style                LayoutStyle
	userDefinedIdealSize *SizeF
	visibility           Visibility
	propertyChangeFlag   PropertyChangeFlag
	geometryTransition   *GeometryTransition
}

// NewLayoutProperty creates a property with auto sizing.
func NewLayoutProperty() *LayoutProperty {
	return &LayoutProperty{style: DefaultLayoutStyle()}
}

// Clone returns a copy of p. The geometry transition is shared.
func (p *LayoutProperty) Clone() *LayoutProperty {
	c := *p
	if p.userDefinedIdealSize != nil {
		size := *p.userDefinedIdealSize
		c.userDefinedIdealSize = &size
	}
	return &c
}

// LayoutStyle returns the style the layout engine sees: the stored style with
// a user defined ideal size applied as fixed width and height.
func (p *LayoutProperty) LayoutStyle() LayoutStyle {
	style := p.style
	if p.userDefinedIdealSize != nil {
		style.Width = Fixed(p.userDefinedIdealSize.Width)
		style.Height = Fixed(p.userDefinedIdealSize.Height)
	}
	return style
}

// Style returns the stored style without the ideal size override.
func (p *LayoutProperty) Style() LayoutStyle {
	return p.style
}

// UpdateLayoutStyle replaces the stored style.
func (p *LayoutProperty) UpdateLayoutStyle(style LayoutStyle) {
	p.style = style
	p.propertyChangeFlag |= PropertyUpdateMeasure
}

// UpdatePosition sets the offset used inside a Stack parent.
func (p *LayoutProperty) UpdatePosition(pos OffsetF) {
	p.style.Position = pos
	p.propertyChangeFlag |= PropertyUpdateLayout
}

// UserDefinedIdealSize returns the ideal size, if one is set.
func (p *LayoutProperty) UserDefinedIdealSize() (SizeF, bool) {
	if p.userDefinedIdealSize == nil {
		return SizeF{}, false
	}
	return *p.userDefinedIdealSize, true
}

// UpdateUserDefinedIdealSize fixes the node's size.
func (p *LayoutProperty) UpdateUserDefinedIdealSize(size SizeF) {
	p.userDefinedIdealSize = &size
	p.propertyChangeFlag |= PropertyUpdateMeasure
}

// ClearUserDefinedIdealSize removes the ideal size.
func (p *LayoutProperty) ClearUserDefinedIdealSize() {
	p.userDefinedIdealSize = nil
	p.propertyChangeFlag |= PropertyUpdateMeasure
}

// Visibility returns the node's visibility.
func (p *LayoutProperty) Visibility() Visibility {
	return p.visibility
}

// UpdateVisibility sets the node's visibility.
func (p *LayoutProperty) UpdateVisibility(v Visibility) {
	if p.visibility == v {
		return
	}
	p.visibility = v
	p.propertyChangeFlag |= PropertyUpdateMeasure
}

// PropertyChangeFlag returns the accumulated change flags.
func (p *LayoutProperty) PropertyChangeFlag() PropertyChangeFlag {
	return p.propertyChangeFlag
}

// UpdatePropertyChangeFlag adds flag to the accumulated change flags.
func (p *LayoutProperty) UpdatePropertyChangeFlag(flag PropertyChangeFlag) {
	p.propertyChangeFlag |= flag
}

// CleanDirty clears the change flags after a layout pass.
func (p *LayoutProperty) CleanDirty() {
	p.propertyChangeFlag = PropertyUpdateNormal
}

// GeometryTransition returns the transition the node takes part in, or nil.
func (p *LayoutProperty) GeometryTransition() *GeometryTransition {
	return p.geometryTransition
}

// isLayoutBoundary reports whether the node's size cannot depend on its
// children, so a child's measure request stops here.
func (p *LayoutProperty) isLayoutBoundary() bool {
	if p.userDefinedIdealSize != nil {
		return true
	}
	return p.style.Width.Unit == UnitFixed && p.style.Height.Unit == UnitFixed
}
