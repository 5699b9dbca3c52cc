package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/AtlasPack/internal/model"
)

func defaultTestSettings() model.PackSettings {
	s := model.DefaultSettings()
	s.MaxBinDimension = 256
	s.Padding = 0
	return s
}

func TestOptimize_SingleSprite(t *testing.T) {
	opt := NewOptimizer(defaultTestSettings())
	sprites := []model.Sprite{model.NewSprite("hero", 48, 32, 1)}

	result, err := opt.Optimize(sprites)
	require.NoError(t, err)

	require.Len(t, result.Bins, 1)
	require.Len(t, result.Bins[0].Placements, 1)
	assert.Equal(t, "hero", result.Bins[0].Placements[0].Sprite.Label)
	// 64x32 and 32x64 both hold it; the later, rotated candidate wins the tie.
	assert.Equal(t, model.NewSize(32, 64), result.Bins[0].Size)
	assert.True(t, result.Bins[0].Placements[0].Rotated())
}

func TestOptimize_QuantityExpansion(t *testing.T) {
	opt := NewOptimizer(defaultTestSettings())
	sprites := []model.Sprite{
		model.NewSprite("coin", 16, 16, 5),
		model.NewSprite("gem", 20, 12, 3),
		model.NewSprite("none", 20, 12, 0),
	}

	result, err := opt.Optimize(sprites)
	require.NoError(t, err)

	counts := map[string]int{}
	for _, b := range result.Bins {
		for _, p := range b.Placements {
			counts[p.Sprite.Label]++
			assert.Equal(t, 1, p.Sprite.Quantity)
			assert.Equal(t, p.Sprite.Size(), p.Mapping.InputSize)
		}
	}
	assert.Equal(t, 5, counts["coin"])
	assert.Equal(t, 3, counts["gem"])
	assert.Zero(t, counts["none"])
	assert.Equal(t, 8, result.SpriteCount())
}

func TestOptimize_ReportsFreeRegions(t *testing.T) {
	opt := NewOptimizer(defaultTestSettings())
	result, err := opt.Optimize([]model.Sprite{model.NewSprite("a", 64, 64, 3)})
	require.NoError(t, err)

	require.Len(t, result.Bins, 1)
	bin := result.Bins[0]
	free := 0
	for _, r := range bin.FreeRegions {
		free += r.Area()
		for _, p := range bin.Placements {
			assert.False(t, r.Intersects(p.Mapping.MappedRect))
		}
	}
	assert.Equal(t, bin.TotalArea(), bin.UsedArea()+free)
}

func TestOptimize_DynamicMode(t *testing.T) {
	settings := defaultTestSettings()
	settings.Mode = model.ModeDynamic
	settings.MaxBinDimension = 128
	settings.Padding = 2

	result, err := NewOptimizer(settings).Optimize([]model.Sprite{model.NewSprite("panel", 100, 100, 3)})
	require.NoError(t, err)

	require.Len(t, result.Bins, 3)
	for i, b := range result.Bins {
		assert.Equal(t, i, b.Index)
		assert.Equal(t, model.NewSize(128, 128), b.Size)
		assert.Len(t, b.Placements, 1)
	}
}

func TestOptimize_PropagatesErrors(t *testing.T) {
	settings := defaultTestSettings()
	settings.MaxBinDimension = 64

	_, err := NewOptimizer(settings).Optimize([]model.Sprite{model.NewSprite("big", 65, 10, 1)})
	assert.ErrorIs(t, err, ErrOversizedInput)

	settings.Mode = model.ModeDynamic
	_, err = NewOptimizer(settings).Optimize([]model.Sprite{model.NewSprite("big", 65, 10, 1)})
	assert.ErrorIs(t, err, ErrOversizedInput)

	settings.Mode = "spiral"
	_, err = NewOptimizer(settings).Optimize(nil)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestOptimize_EmptyInput(t *testing.T) {
	result, err := NewOptimizer(defaultTestSettings()).Optimize(nil)
	require.NoError(t, err)
	assert.Empty(t, result.Bins)
	assert.Equal(t, 0.0, result.TotalEfficiency())
}
