package engine

import "github.com/piwi3910/AtlasPack/internal/model"

// nodeID addresses a node inside a nodePool.
type nodeID int32

const noNode nodeID = -1

// nodeKind is the state of a region in the guillotine tree.
type nodeKind uint8

const (
	nodeEmpty  nodeKind = iota // no contents, no children
	nodeLeaf                   // has contents, no children
	nodeBranch                 // has contents, has children
)

func (k nodeKind) String() string {
	switch k {
	case nodeLeaf:
		return "leaf"
	case nodeBranch:
		return "branch"
	default:
		return "empty"
	}
}

// node is one region of a bin. mapping is an index into the mapping slice
// that owns the tree (a bin's mappings, or the sorted input during a trial),
// or -1 when the node is empty.
type node struct {
	rect    model.Rect
	used    model.Rect // occupied sub-rectangle at the node origin
	kind    nodeKind
	mapping int
	left    nodeID
	right   nodeID
}

// nodePool owns the storage of every node used by one Packer. Nodes are
// addressed by index, so growing the arena never invalidates a tree.
// Released slots are kept on a free list and handed out again by acquire.
type nodePool struct {
	nodes []node
	free  []nodeID
}

func newNodePool(initialCapacity int) *nodePool {
	return &nodePool{nodes: make([]node, 0, initialCapacity)}
}

// acquire returns an empty, childless node.
func (p *nodePool) acquire() nodeID {
	var id nodeID
	if n := len(p.free); n > 0 {
		id = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		id = nodeID(len(p.nodes))
		p.nodes = append(p.nodes, node{})
	}
	p.nodes[id] = node{mapping: -1, left: noNode, right: noNode}
	return id
}

// release returns a single slot to the free list. The node's children must
// already have been released.
func (p *nodePool) release(id nodeID) {
	if id == noNode {
		return
	}
	p.nodes[id] = node{mapping: -1, left: noNode, right: noNode}
	p.free = append(p.free, id)
}

// releaseTree releases id and every node attached below it, including
// storage still hanging off leaves and reset nodes.
func (p *nodePool) releaseTree(id nodeID) {
	if id == noNode {
		return
	}
	left, right := p.nodes[id].left, p.nodes[id].right
	p.releaseTree(left)
	p.releaseTree(right)
	p.release(id)
}

// Len returns the number of node slots ever allocated.
func (p *nodePool) Len() int {
	return len(p.nodes)
}

// Free returns the number of slots waiting on the free list.
func (p *nodePool) Free() int {
	return len(p.free)
}

// InUse returns the number of slots currently owned by some tree.
func (p *nodePool) InUse() int {
	return len(p.nodes) - len(p.free)
}
