package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/AtlasPack/internal/model"
)

const (
	placementsSheet = "Placements"
	binsSheet       = "Bins"
)

var placementHeaders = []interface{}{"Bin", "Sprite ID", "Label", "Width", "Height", "X", "Y", "Rotated"}

var binHeaders = []interface{}{"Bin", "Width", "Height", "Sprites", "Used Area", "Efficiency %", "Free Regions"}

// ExportXLSX writes a workbook with one row per placement and a per-bin
// summary sheet. Widths and heights are the sprite's own, unrotated.
func ExportXLSX(path string, result model.PackResult) error {
	if len(result.Bins) == 0 {
		return fmt.Errorf("no bins to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), placementsSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(binsSheet); err != nil {
		return err
	}

	if err := f.SetSheetRow(placementsSheet, "A1", &placementHeaders); err != nil {
		return err
	}
	row := 2
	for _, bin := range result.Bins {
		for _, p := range bin.Placements {
			values := []interface{}{
				bin.Index + 1,
				p.Sprite.ID,
				p.Sprite.Label,
				p.Mapping.InputSize.Width,
				p.Mapping.InputSize.Height,
				p.X(),
				p.Y(),
				yesNo(p.Rotated()),
			}
			if err := setRow(f, placementsSheet, row, values); err != nil {
				return err
			}
			row++
		}
	}

	if err := f.SetSheetRow(binsSheet, "A1", &binHeaders); err != nil {
		return err
	}
	for i, bin := range result.Bins {
		values := []interface{}{
			bin.Index + 1,
			bin.Size.Width,
			bin.Size.Height,
			len(bin.Placements),
			bin.UsedArea(),
			fmt.Sprintf("%.1f", bin.Efficiency()),
			len(bin.FreeRegions),
		}
		if err := setRow(f, binsSheet, i+2, values); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
