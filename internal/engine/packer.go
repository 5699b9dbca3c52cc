package engine

import (
	"fmt"

	"k8s.io/klog/v2"

	"github.com/piwi3910/AtlasPack/internal/model"
)

// bin is one container together with the tree that tracks its free space.
// Nodes of the tree refer to entries of mappings by index.
type bin struct {
	size     model.Size
	root     nodeID
	mappings []model.RectMapping
}

// Packer packs rectangles into power-of-two bins, either all at once
// (PackBoxes) or one at a time (StartDynamicPacking, PackBox).
//
// A Packer is not safe for concurrent use.
type Packer struct {
	pool *nodePool
	bins []*bin

	dynamic       bool
	binSize       int
	padding       int
	allowRotation bool
	packed        int // boxes placed since StartDynamicPacking
}

func New() *Packer {
	return &Packer{pool: newNodePool(64)}
}

// PackBoxes packs every size into as many bins as needed, replacing any
// previous result. maxBinDimension must be a positive power of two and no
// size may exceed it unrotated. Each bin is chosen by a heuristic search
// over sort orders and candidate bin sizes; rectangles that do not fit are
// carried over to the next bin.
func (p *Packer) PackBoxes(sizes []model.Size, maxBinDimension, padding int, allowRotation bool) error {
	if !model.IsPowerOfTwo(maxBinDimension) {
		return fmt.Errorf("%w: max bin dimension %d is not a positive power of two", ErrInvalidConfiguration, maxBinDimension)
	}
	if padding < 0 {
		return fmt.Errorf("%w: padding %d is negative", ErrInvalidConfiguration, padding)
	}

	input := make([]model.RectMapping, 0, len(sizes))
	for i, s := range sizes {
		if err := checkSize(s, maxBinDimension); err != nil {
			return fmt.Errorf("box %d: %w", i, err)
		}
		input = append(input, model.NewRectMapping(s, i))
	}

	p.clear()
	p.dynamic = false

	binSizes := candidateBinSizes(maxBinDimension)
	for len(input) > 0 {
		b, overflow := p.packBin(input, binSizes, padding, allowRotation)
		p.bins = append(p.bins, b)
		input = overflow
	}

	klog.V(2).Infof("packed %d boxes into %d bins (pool: %d nodes, %d free)",
		len(sizes), len(p.bins), p.pool.Len(), p.pool.Free())
	return nil
}

// StartDynamicPacking discards any previous bins and opens a single empty
// binSize x binSize bin for PackBox.
func (p *Packer) StartDynamicPacking(binSize, padding int, allowRotation bool) error {
	if !model.IsPowerOfTwo(binSize) {
		return fmt.Errorf("%w: bin size %d is not a positive power of two", ErrInvalidConfiguration, binSize)
	}
	if padding < 0 {
		return fmt.Errorf("%w: padding %d is negative", ErrInvalidConfiguration, padding)
	}

	p.clear()
	p.dynamic = true
	p.binSize = binSize
	p.padding = padding
	p.allowRotation = allowRotation
	p.packed = 0

	p.bins = append(p.bins, p.newBin(model.NewSize(binSize, binSize)))
	return nil
}

// PackBox places one rectangle into the first bin with room for it,
// opening a new bin when none has. The returned mapping's InputIndex counts
// the boxes packed since StartDynamicPacking.
func (p *Packer) PackBox(size model.Size) (model.RectMapping, error) {
	if !p.dynamic {
		return model.RectMapping{}, ErrNotInitialized
	}
	if err := checkSize(size, p.binSize); err != nil {
		return model.RectMapping{}, err
	}

	m := model.NewRectMapping(size, p.packed)
	for i, b := range p.bins {
		if p.pool.insert(b.root, &m, len(b.mappings), p.padding, p.allowRotation) != noNode {
			b.mappings = append(b.mappings, m)
			p.packed++
			klog.V(3).Infof("box %s -> bin %d at %s", size, i, m.MappedRect)
			return m, nil
		}
	}

	b := p.newBin(model.NewSize(p.binSize, p.binSize))
	p.bins = append(p.bins, b)
	if p.pool.insert(b.root, &m, 0, p.padding, p.allowRotation) == noNode {
		// checkSize guarantees an empty bin accepts the box.
		panic(fmt.Sprintf("engine: box %s rejected by empty %dx%d bin", size, p.binSize, p.binSize))
	}
	b.mappings = append(b.mappings, m)
	p.packed++
	klog.V(2).Infof("opened bin %d for box %s", len(p.bins)-1, size)
	return m, nil
}

// Bins returns a copy of the current packing result.
func (p *Packer) Bins() []model.Bin {
	out := make([]model.Bin, len(p.bins))
	for i, b := range p.bins {
		mappings := make([]model.RectMapping, len(b.mappings))
		copy(mappings, b.mappings)
		out[i] = model.Bin{Size: b.size, Mappings: mappings}
	}
	return out
}

// FreeRegions returns the unused regions still tracked by the tree of bin i.
// The regions exclude padding gaps and do not overlap any placed rectangle.
func (p *Packer) FreeRegions(i int) []model.Rect {
	if i < 0 || i >= len(p.bins) {
		return nil
	}
	return p.pool.freeRegions(p.bins[i].root, nil)
}

// Dynamic reports whether the packer is in incremental mode.
func (p *Packer) Dynamic() bool {
	return p.dynamic
}

func (p *Packer) newBin(size model.Size) *bin {
	b := &bin{size: size, root: p.pool.acquire()}
	p.pool.reset(b.root, model.RectFromSize(size))
	return b
}

// clear returns every bin's tree to the pool.
func (p *Packer) clear() {
	for _, b := range p.bins {
		p.pool.releaseTree(b.root)
	}
	p.bins = p.bins[:0]
}

func checkSize(s model.Size, max int) error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidSize, s)
	}
	if !s.Fits(max) {
		return fmt.Errorf("%w: %s does not fit in %dx%d", ErrOversizedInput, s, max, max)
	}
	return nil
}
