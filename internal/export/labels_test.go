package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/AtlasPack/internal/model"
)

func TestCollectLabelInfos(t *testing.T) {
	result := buildTestResult()
	labels := CollectLabelInfos(result)

	if len(labels) != 4 {
		t.Fatalf("expected 4 labels, got %d", len(labels))
	}

	banner := labels[1]
	if banner.SpriteLabel != "banner" {
		t.Fatalf("expected banner second, got %q", banner.SpriteLabel)
	}
	if banner.Width != 32 || banner.Height != 128 {
		t.Errorf("expected unrotated size 32x128, got %dx%d", banner.Width, banner.Height)
	}
	if !banner.Rotated {
		t.Error("expected banner to be marked rotated")
	}
	if banner.X != 0 || banner.Y != 66 {
		t.Errorf("expected position (0,66), got (%d,%d)", banner.X, banner.Y)
	}
	if banner.BinIndex != 1 {
		t.Errorf("expected 1-based bin index 1, got %d", banner.BinIndex)
	}

	if labels[3].BinIndex != 2 {
		t.Errorf("expected last label in bin 2, got %d", labels[3].BinIndex)
	}
	if labels[2].SpriteID != labels[3].SpriteID {
		t.Error("expected both coin copies to share the sprite ID")
	}
}

func TestLabelInfoJSON(t *testing.T) {
	info := CollectLabelInfos(buildTestResult())[0]

	data, err := json.Marshal(info)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	for _, key := range []string{"id", "label", "w", "h", "bin", "x", "y", "rotated"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("expected key %q in label JSON", key)
		}
	}
}

func TestExportLabels_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")

	if err := ExportLabels(path, buildTestResult()); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestExportLabels_MultiplePages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")

	s := model.NewSprite("a very long sprite label that will not fit on the label", 8, 8, 1)
	bin := model.BinResult{Size: model.NewSize(256, 256)}
	for i := 0; i < labelsPerPage+5; i++ {
		bin.Placements = append(bin.Placements, placement(s, i, model.Rect{X: i * 8, Width: 8, Height: 8}, false))
	}

	if err := ExportLabels(path, model.PackResult{Bins: []model.BinResult{bin}}); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}
}

func TestExportLabels_EmptyResult(t *testing.T) {
	dir := t.TempDir()

	if err := ExportLabels(filepath.Join(dir, "empty.pdf"), model.PackResult{}); err == nil {
		t.Fatal("expected error for empty result, got nil")
	}

	noSprites := model.PackResult{Bins: []model.BinResult{{Size: model.NewSize(16, 16)}}}
	if err := ExportLabels(filepath.Join(dir, "none.pdf"), noSprites); err == nil {
		t.Fatal("expected error for result without placements, got nil")
	}
}
