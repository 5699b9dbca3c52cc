package model

import "github.com/google/uuid"

// Sprite represents a rectangle the user wants packed, e.g. one texture
// or UI panel. Quantity expands into that many identical rectangles.
type Sprite struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Width    int    `json:"width"`  // px
	Height   int    `json:"height"` // px
	Quantity int    `json:"quantity"`
}

func NewSprite(label string, w, h, qty int) Sprite {
	return Sprite{
		ID:       uuid.New().String()[:8],
		Label:    label,
		Width:    w,
		Height:   h,
		Quantity: qty,
	}
}

// Size returns the unrotated size of the sprite.
func (s Sprite) Size() Size {
	return Size{Width: s.Width, Height: s.Height}
}

// PackMode selects between searching the whole input up front and
// placing rectangles one at a time.
type PackMode string

const (
	ModeBatch   PackMode = "batch"   // Heuristic search over sort orders and bin sizes
	ModeDynamic PackMode = "dynamic" // Greedy first-fit into persistent fixed-size bins
)

// PackSettings holds the packer configuration.
type PackSettings struct {
	Mode            PackMode `json:"mode"`
	MaxBinDimension int      `json:"max_bin_dimension"` // Power of two; the bin size in dynamic mode
	Padding         int      `json:"padding"`           // Gap between neighbouring rectangles in px
	AllowRotation   bool     `json:"allow_rotation"`    // Rectangles may be turned 90°
}

func DefaultSettings() PackSettings {
	return PackSettings{
		Mode:            ModeBatch,
		MaxBinDimension: 1024,
		Padding:         2,
		AllowRotation:   true,
	}
}

// Placement ties a packed rectangle back to the sprite it came from.
type Placement struct {
	Sprite  Sprite      `json:"sprite"`
	Mapping RectMapping `json:"mapping"`
}

// X returns the left edge of the placed rectangle.
func (p Placement) X() int { return p.Mapping.MappedRect.X }

// Y returns the top edge of the placed rectangle.
func (p Placement) Y() int { return p.Mapping.MappedRect.Y }

// Rotated reports whether the sprite was turned 90° to fit.
func (p Placement) Rotated() bool { return p.Mapping.Rotated }

// BinResult represents one bin with its placed sprites.
type BinResult struct {
	Index       int         `json:"index"`
	Size        Size        `json:"size"`
	Placements  []Placement `json:"placements"`
	FreeRegions []Rect      `json:"free_regions,omitempty"` // Unused space left in the tree
}

// UsedArea returns the total area used by placed sprites.
func (br BinResult) UsedArea() int {
	total := 0
	for _, p := range br.Placements {
		total += p.Mapping.MappedRect.Area()
	}
	return total
}

// FreeArea returns the area of the free regions still usable in the bin.
func (br BinResult) FreeArea() int {
	total := 0
	for _, r := range br.FreeRegions {
		total += r.Area()
	}
	return total
}

// TotalArea returns the bin area.
func (br BinResult) TotalArea() int {
	return br.Size.Area()
}

// Efficiency returns the usage percentage.
func (br BinResult) Efficiency() float64 {
	ta := br.TotalArea()
	if ta == 0 {
		return 0
	}
	return float64(br.UsedArea()) / float64(ta) * 100.0
}

// PackResult holds the full solution.
type PackResult struct {
	Settings PackSettings `json:"settings"`
	Bins     []BinResult  `json:"bins"`
}

// TotalEfficiency returns overall bin usage percentage.
func (pr PackResult) TotalEfficiency() float64 {
	var used, total int
	for _, b := range pr.Bins {
		used += b.UsedArea()
		total += b.TotalArea()
	}
	if total == 0 {
		return 0
	}
	return float64(used) / float64(total) * 100.0
}

// SpriteCount returns the number of placed rectangles across all bins.
func (pr PackResult) SpriteCount() int {
	n := 0
	for _, b := range pr.Bins {
		n += len(b.Placements)
	}
	return n
}

// Project ties everything together for save/load.
type Project struct {
	Name     string       `json:"name"`
	Sprites  []Sprite     `json:"sprites"`
	Settings PackSettings `json:"settings"`
	Result   *PackResult  `json:"result,omitempty"`
}

func NewProject() Project {
	return Project{
		Name:     "Untitled",
		Sprites:  []Sprite{},
		Settings: DefaultSettings(),
	}
}
