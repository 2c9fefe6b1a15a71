package layout

// Calculate measures root under constraint and places it at origin.
// Every node in the subtree gets a measured size and a frame.
func Calculate(root Layoutable, origin OffsetF, constraint SizeF) {
	if root == nil {
		return
	}
	size := Measure(root, constraint)
	Arrange(root, NewRectF(origin, size))
}

// Measure computes the size of node under constraint. A node that was already
// measured in this pass returns its cached size.
func Measure(node Layoutable, constraint SizeF) SizeF {
	if size, ok := node.MeasuredSize(); ok {
		return size
	}

	style := node.LayoutStyle()
	width := style.Width.Resolve(constraint.Width, -1)
	height := style.Height.Resolve(constraint.Height, -1)

	children := node.LayoutChildren()
	if width < 0 || height < 0 {
		if len(children) == 0 {
			// Auto leaves fill the space they are offered
			if width < 0 {
				width = constraint.Width
			}
			if height < 0 {
				height = constraint.Height
			}
		} else {
			inner := constraint.Shrink(style.Padding)
			if width >= 0 {
				inner.Width = max(0, width-style.Padding.Horizontal())
			}
			if height >= 0 {
				inner.Height = max(0, height-style.Padding.Vertical())
			}
			content := measureContent(style, children, inner)
			if width < 0 {
				width = content.Width + style.Padding.Horizontal()
			}
			if height < 0 {
				height = content.Height + style.Padding.Vertical()
			}
		}
	} else {
		inner := SizeF{Width: width, Height: height}.Shrink(style.Padding)
		measureContent(style, children, inner)
	}

	width = clamp(width, style.MinWidth.Resolve(constraint.Width, 0), style.MaxWidth.Resolve(constraint.Width, -1))
	height = clamp(height, style.MinHeight.Resolve(constraint.Height, 0), style.MaxHeight.Resolve(constraint.Height, -1))

	size := SizeF{Width: max(0, width), Height: max(0, height)}
	node.SetMeasuredSize(size, constraint)
	return size
}

// measureContent measures children and returns the size they occupy together.
func measureContent(style Style, children []Layoutable, inner SizeF) SizeF {
	var content SizeF
	for i, child := range children {
		size := Measure(child, inner)
		switch style.Direction {
		case Row:
			content.Width += size.Width
			if i > 0 {
				content.Width += style.Gap
			}
			content.Height = max(content.Height, size.Height)
		case Column:
			content.Height += size.Height
			if i > 0 {
				content.Height += style.Gap
			}
			content.Width = max(content.Width, size.Width)
		default:
			pos := child.LayoutStyle().Position
			content.Width = max(content.Width, pos.X+size.Width)
			content.Height = max(content.Height, pos.Y+size.Height)
		}
	}
	return content
}

// Arrange stores frame on node and positions its children inside the padded
// content box. Children must already be measured.
func Arrange(node Layoutable, frame RectF) {
	node.SetFrame(frame)

	style := node.LayoutStyle()
	inner := frame.Size().Shrink(style.Padding)
	cursor := OffsetF{X: style.Padding.Left, Y: style.Padding.Top}
	for _, child := range node.LayoutChildren() {
		size := Measure(child, inner)
		var offset OffsetF
		switch style.Direction {
		case Row:
			offset = cursor
			cursor.X += size.Width + style.Gap
		case Column:
			offset = cursor
			cursor.Y += size.Height + style.Gap
		default:
			offset = cursor.Add(child.LayoutStyle().Position)
		}
		Arrange(child, NewRectF(offset, size))
	}
}

// clamp restricts v to [minVal, maxVal]. A negative maxVal means no maximum.
// If minVal > maxVal, minVal wins.
func clamp(v, minVal, maxVal float64) float64 {
	if maxVal >= 0 && v > maxVal {
		v = maxVal
	}
	if v < minVal {
		v = minVal
	}
	return v
}
