package engine

import (
	"fmt"
	"strings"

	"k8s.io/klog/v2"

	"github.com/piwi3910/AtlasPack/internal/model"
)

// reset clears a node to an empty region covering rect. Attached children
// are kept as storage and re-initialized by the next split.
func (p *nodePool) reset(id nodeID, rect model.Rect) {
	n := &p.nodes[id]
	n.rect = rect
	n.kind = nodeEmpty
	n.used = model.Rect{}
	n.mapping = -1
}

// insert tries to place m somewhere in the subtree rooted at id. ref is the
// index of m in the mapping slice that owns the tree; it is stored on the
// accepting node. Returns the accepting node, or noNode if there is no room.
//
// An empty node prefers an exact fit over a fit with room to spare, and the
// unrotated orientation over the rotated one.
func (p *nodePool) insert(id nodeID, m *model.RectMapping, ref, padding int, allowRotation bool) nodeID {
	n := &p.nodes[id]
	w, h := m.InputSize.Width, m.InputSize.Height

	switch n.kind {
	case nodeEmpty:
		r := n.rect
		switch {
		case w == r.Width && h == r.Height:
			p.occupy(id, m, ref, false)
			p.nodes[id].kind = nodeLeaf
			return id
		case allowRotation && w == r.Height && h == r.Width:
			p.occupy(id, m, ref, true)
			p.nodes[id].kind = nodeLeaf
			return id
		case w <= r.Width && h <= r.Height:
			p.occupy(id, m, ref, false)
			p.split(id, padding)
			p.nodes[id].kind = nodeBranch
			return id
		case allowRotation && w <= r.Height && h <= r.Width:
			p.occupy(id, m, ref, true)
			p.split(id, padding)
			p.nodes[id].kind = nodeBranch
			return id
		}

	case nodeBranch:
		left, right := n.left, n.right
		if got := p.insert(left, m, ref, padding, allowRotation); got != noNode {
			return got
		}
		return p.insert(right, m, ref, padding, allowRotation)
	}

	return noNode
}

// occupy records m at the origin of node id.
func (p *nodePool) occupy(id nodeID, m *model.RectMapping, ref int, rotated bool) {
	n := &p.nodes[id]
	size := m.InputSize
	if rotated {
		size = size.Rotated()
	}
	n.used = model.Rect{X: n.rect.X, Y: n.rect.Y, Width: size.Width, Height: size.Height}
	n.mapping = ref
	m.MappedRect = n.used
	m.Rotated = rotated
}

// split carves the space around the occupied rectangle at the node origin
// into two children. The larger leftover dimension is kept as one
// contiguous strip. Each child is shrunk by padding on the side facing the
// occupied rectangle.
func (p *nodePool) split(id nodeID, padding int) {
	if p.nodes[id].left == noNode {
		left := p.acquire()
		p.nodes[id].left = left
	}
	if p.nodes[id].right == noNode {
		right := p.acquire()
		p.nodes[id].right = right
	}

	n := p.nodes[id]
	occ := n.used
	remWidth := n.rect.Width - occ.Width
	remHeight := n.rect.Height - occ.Height

	var left, right model.Rect
	if remWidth > remHeight {
		// split vertically
		left = model.Rect{X: n.rect.X, Y: n.rect.Y + occ.Height, Width: occ.Width, Height: remHeight}
		right = model.Rect{X: n.rect.X + occ.Width, Y: n.rect.Y, Width: remWidth, Height: n.rect.Height}

		left.Y += padding
		left.Height -= padding
		right.X += padding
		right.Width -= padding
	} else {
		// split horizontally
		left = model.Rect{X: n.rect.X + occ.Width, Y: n.rect.Y, Width: remWidth, Height: occ.Height}
		right = model.Rect{X: n.rect.X, Y: n.rect.Y + occ.Height, Width: n.rect.Width, Height: remHeight}

		left.X += padding
		left.Width -= padding
		right.Y += padding
		right.Height -= padding
	}

	p.reset(n.left, left)
	p.reset(n.right, right)
}

// freeRegions appends every empty region with positive extent reachable
// from id. Storage kept under leaves or reset nodes is not part of the tree
// and is skipped.
func (p *nodePool) freeRegions(id nodeID, out []model.Rect) []model.Rect {
	if id == noNode {
		return out
	}
	n := p.nodes[id]
	switch n.kind {
	case nodeEmpty:
		if !n.rect.Empty() {
			out = append(out, n.rect)
		}
	case nodeBranch:
		out = p.freeRegions(n.left, out)
		out = p.freeRegions(n.right, out)
	}
	return out
}

// dump renders the subtree at id, one node per line.
func (p *nodePool) dump(id nodeID) string {
	var sb strings.Builder
	p.dumpInto(&sb, id, 0)
	return sb.String()
}

func (p *nodePool) dumpInto(sb *strings.Builder, id nodeID, depth int) {
	if id == noNode {
		return
	}
	n := p.nodes[id]
	fmt.Fprintf(sb, "%s#%d %s %s", strings.Repeat("  ", depth), id, n.kind, n.rect)
	if n.mapping >= 0 {
		fmt.Fprintf(sb, " mapping=%d", n.mapping)
	}
	sb.WriteByte('\n')
	if n.kind == nodeBranch {
		p.dumpInto(sb, n.left, depth+1)
		p.dumpInto(sb, n.right, depth+1)
	}
}

// logTree dumps a tree at high verbosity.
func (p *nodePool) logTree(label string, id nodeID) {
	if klogV := klog.V(4); klogV.Enabled() {
		klogV.Infof("%s:\n%s", label, p.dump(id))
	}
}
