package ace

import (
	"fmt"
	"io"
	"strings"
)

// DumpTree writes the subtree rooted at n, one node per line, including
// disappearing children.
func (n *UINode) DumpTree(w io.Writer) error {
	return n.dumpTree(w, 0, false)
}

func (n *UINode) dumpTree(w io.Writer, indent int, disappearing bool) error {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", indent))
	fmt.Fprintf(&b, "%s#%d depth:%d", n.tag, n.id, n.depth)
	if n.onMainTree {
		b.WriteString(" onMainTree")
	}
	if n.isRemoving {
		b.WriteString(" removing")
	}
	if disappearing {
		b.WriteString(" disappearing")
	}
	if f := n.frame; f != nil {
		fmt.Fprintf(&b, " frame:%s", f.geometryNode.Frame())
		if f.layoutProperty.Visibility() != Visible {
			fmt.Fprintf(&b, " %s", f.layoutProperty.Visibility())
		}
		if gt := f.GeometryTransition(); gt != nil {
			fmt.Fprintf(&b, " gt:%s", gt.ID())
		}
	}
	b.WriteByte('\n')
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	for _, child := range n.children {
		if err := child.dumpTree(w, indent+1, false); err != nil {
			return err
		}
	}
	for _, dc := range n.disappearingChildren {
		if err := dc.Node.dumpTree(w, indent+1, true); err != nil {
			return err
		}
	}
	return nil
}
