package engine

import (
	"sort"

	"k8s.io/klog/v2"

	"github.com/piwi3910/AtlasPack/internal/model"
)

// sortOrder is one of the fixed orderings the batch search tries.
type sortOrder int

const (
	orderArea      sortOrder = iota // Area descending
	orderPerimeter                  // Perimeter descending
	orderMaxSide                    // Longest side descending
	orderWidth                      // Width descending
	orderHeight                     // Height descending
	numSortOrders
)

func (o sortOrder) String() string {
	switch o {
	case orderArea:
		return "area"
	case orderPerimeter:
		return "perimeter"
	case orderMaxSide:
		return "max-side"
	case orderWidth:
		return "width"
	case orderHeight:
		return "height"
	default:
		return "unknown"
	}
}

// key returns the value the order sorts on, largest first.
func (o sortOrder) key(s model.Size) int {
	switch o {
	case orderPerimeter:
		return s.Perimeter()
	case orderMaxSide:
		return s.MaxSide()
	case orderWidth:
		return s.Width
	case orderHeight:
		return s.Height
	default:
		return s.Area()
	}
}

// sorted returns a copy of input ordered by o. Equal keys keep their input order.
func (o sortOrder) sorted(input []model.RectMapping) []model.RectMapping {
	out := make([]model.RectMapping, len(input))
	copy(out, input)
	sort.SliceStable(out, func(i, j int) bool {
		return o.key(out[i].InputSize) > o.key(out[j].InputSize)
	})
	return out
}

// candidateBinSizes lists the bin sizes the batch search may choose from,
// largest first: for each halving step the square plus both half-height
// and half-width variants.
func candidateBinSizes(maxSize int) []model.Size {
	var sizes []model.Size
	for s := maxSize; s > 1; s /= 2 {
		sizes = append(sizes,
			model.NewSize(s, s),
			model.NewSize(s, s/2),
			model.NewSize(s/2, s),
		)
	}
	if len(sizes) == 0 {
		sizes = append(sizes, model.NewSize(maxSize, maxSize))
	}
	return sizes
}

// trialResult records how well one (order, size) combination packed.
type trialResult struct {
	order    sortOrder
	sizeIdx  int
	area     int
	accepted int
	rejected int
}

// better applies the search's acceptance rule: more area at the same or a
// smaller bin, or a smaller bin with no less area. Larger size indices are
// smaller bins.
func (t trialResult) better(best trialResult) bool {
	return (t.area > best.area && t.sizeIdx >= best.sizeIdx) ||
		(t.sizeIdx > best.sizeIdx && t.area >= best.area)
}

// packBin fills one bin from input. Every sort order is tried against the
// candidate sizes; within an order the scan stops at the first size that
// does not improve on the best so far. The winning combination is rebuilt
// into a new tree owned by the returned bin, and what did not fit is
// returned as overflow.
func (p *Packer) packBin(input []model.RectMapping, sizes []model.Size, padding int, allowRotation bool) (*bin, []model.RectMapping) {
	var sortedInput [numSortOrders][]model.RectMapping
	for o := sortOrder(0); o < numSortOrders; o++ {
		sortedInput[o] = o.sorted(input)
	}

	best := trialResult{order: -1}
	root := p.pool.acquire()

	for o := sortOrder(0); o < numSortOrders; o++ {
		for sizeIdx := best.sizeIdx; sizeIdx < len(sizes); sizeIdx++ {
			trial := p.trial(root, sortedInput[o], sizes[sizeIdx], padding, allowRotation)
			trial.order = o
			trial.sizeIdx = sizeIdx

			if !trial.better(best) {
				break
			}
			klog.V(3).Infof("trial order=%s size=%s area=%d accepted=%d rejected=%d: new best",
				o, sizes[sizeIdx], trial.area, trial.accepted, trial.rejected)
			best = trial
		}
	}
	p.pool.releaseTree(root)

	if best.order < 0 {
		// Nothing has positive area; the first size and order still place
		// whatever fits.
		best = trialResult{order: orderArea}
	}

	b := p.newBin(sizes[best.sizeIdx])
	b.mappings = make([]model.RectMapping, 0, best.accepted)
	overflow := make([]model.RectMapping, 0, best.rejected)

	for _, m := range sortedInput[best.order] {
		if p.pool.insert(b.root, &m, len(b.mappings), padding, allowRotation) != noNode {
			b.mappings = append(b.mappings, m)
		} else {
			overflow = append(overflow, m)
		}
	}

	klog.V(2).Infof("packed bin %s using %s order: %d placed, %d overflow",
		b.size, best.order, len(b.mappings), len(overflow))
	p.pool.logTree("bin "+b.size.String(), b.root)

	return b, overflow
}

// trial packs input into a tree of the given size and measures it. The
// mappings in input are overwritten with their trial positions.
func (p *Packer) trial(root nodeID, input []model.RectMapping, size model.Size, padding int, allowRotation bool) trialResult {
	p.pool.reset(root, model.RectFromSize(size))

	var res trialResult
	for i := range input {
		if p.pool.insert(root, &input[i], i, padding, allowRotation) != noNode {
			res.area += input[i].MappedRect.Area()
			res.accepted++
		} else {
			res.rejected++
		}
	}
	return res
}
