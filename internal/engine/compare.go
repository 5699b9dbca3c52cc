package engine

import (
	"fmt"

	"github.com/piwi3910/AtlasPack/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.PackSettings
}

// ComparisonResult holds the packing result and computed statistics
// for a single scenario.
type ComparisonResult struct {
	Scenario     ComparisonScenario
	Result       model.PackResult
	BinsUsed     int
	SpriteCount  int
	WastePercent float64
	Err          error
}

// CompareScenarios packs the same sprites under each scenario and returns
// the results in scenario order. A scenario whose settings are rejected
// carries the error instead of a result.
func CompareScenarios(scenarios []ComparisonScenario, sprites []model.Sprite) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		opt := NewOptimizer(scenario.Settings)
		result, err := opt.Optimize(sprites)
		if err != nil {
			results = append(results, ComparisonResult{Scenario: scenario, Err: err})
			continue
		}

		results = append(results, ComparisonResult{
			Scenario:     scenario,
			Result:       result,
			BinsUsed:     len(result.Bins),
			SpriteCount:  result.SpriteCount(),
			WastePercent: 100.0 - result.TotalEfficiency(),
		})
	}

	return results
}

// BuildDefaultScenarios generates a set of comparison scenarios based on
// the current settings, varying key parameters to show what-if alternatives.
func BuildDefaultScenarios(baseSettings model.PackSettings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: baseSettings,
		},
	}

	// Scenario: Try the other mode
	altMode := baseSettings
	if baseSettings.Mode == model.ModeDynamic {
		altMode.Mode = model.ModeBatch
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Batch Search",
			Settings: altMode,
		})
	} else {
		altMode.Mode = model.ModeDynamic
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Dynamic First-Fit",
			Settings: altMode,
		})
	}

	// Scenario: Toggle rotation
	rot := baseSettings
	rot.AllowRotation = !baseSettings.AllowRotation
	name := "No Rotation"
	if rot.AllowRotation {
		name = "With Rotation"
	}
	scenarios = append(scenarios, ComparisonScenario{Name: name, Settings: rot})

	// Scenario: Tight packing
	if baseSettings.Padding > 0 {
		noPad := baseSettings
		noPad.Padding = 0
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "No Padding",
			Settings: noPad,
		})
	}

	// Scenario: Bigger bins
	bigger := baseSettings
	bigger.MaxBinDimension = baseSettings.MaxBinDimension * 2
	scenarios = append(scenarios, ComparisonScenario{
		Name:     fmt.Sprintf("Max %dpx", bigger.MaxBinDimension),
		Settings: bigger,
	})

	return scenarios
}
