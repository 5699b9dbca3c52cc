package engine

import (
	"fmt"

	"github.com/piwi3910/AtlasPack/internal/model"
)

// Optimizer turns a sprite list into a packed atlas using a Packer.
type Optimizer struct {
	Settings model.PackSettings
}

func NewOptimizer(settings model.PackSettings) *Optimizer {
	return &Optimizer{Settings: settings}
}

// Optimize expands sprites by quantity, packs them according to the
// configured mode and maps every placed rectangle back to its sprite.
func (o *Optimizer) Optimize(sprites []model.Sprite) (model.PackResult, error) {
	expanded := expandSprites(sprites)
	sizes := make([]model.Size, len(expanded))
	for i, s := range expanded {
		sizes[i] = s.Size()
	}

	packer := New()
	switch o.Settings.Mode {
	case model.ModeDynamic:
		if err := o.packDynamic(packer, sizes); err != nil {
			return model.PackResult{}, err
		}
	case model.ModeBatch, "":
		if err := packer.PackBoxes(sizes, o.Settings.MaxBinDimension, o.Settings.Padding, o.Settings.AllowRotation); err != nil {
			return model.PackResult{}, err
		}
	default:
		return model.PackResult{}, fmt.Errorf("%w: unknown mode %q", ErrInvalidConfiguration, o.Settings.Mode)
	}

	result := model.PackResult{Settings: o.Settings}
	for i, b := range packer.Bins() {
		br := model.BinResult{
			Index:       i,
			Size:        b.Size,
			FreeRegions: packer.FreeRegions(i),
		}
		for _, m := range b.Mappings {
			br.Placements = append(br.Placements, model.Placement{
				Sprite:  expanded[m.InputIndex],
				Mapping: m,
			})
		}
		result.Bins = append(result.Bins, br)
	}
	return result, nil
}

// packDynamic feeds sizes to the packer one at a time in input order.
func (o *Optimizer) packDynamic(packer *Packer, sizes []model.Size) error {
	if err := packer.StartDynamicPacking(o.Settings.MaxBinDimension, o.Settings.Padding, o.Settings.AllowRotation); err != nil {
		return err
	}
	for i, s := range sizes {
		if _, err := packer.PackBox(s); err != nil {
			return fmt.Errorf("box %d: %w", i, err)
		}
	}
	return nil
}

// expandSprites expands sprites by quantity into individual rectangles.
func expandSprites(sprites []model.Sprite) []model.Sprite {
	var expanded []model.Sprite
	for _, s := range sprites {
		for i := 0; i < s.Quantity; i++ {
			cp := s
			cp.Quantity = 1
			expanded = append(expanded, cp)
		}
	}
	return expanded
}
