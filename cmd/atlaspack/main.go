// AtlasPack packs sprite lists into power-of-two texture atlas bins.
//
// Build:
//   go build -o atlaspack ./cmd/atlaspack
//
// Usage:
//   atlaspack [flags] sprites.csv|sprites.xlsx|shapes.dxf
//
// Defaults come from ~/.atlaspack/config.json, then ATLASPACK_* environment
// variables, then flags.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"k8s.io/klog/v2"

	"github.com/piwi3910/AtlasPack/internal/config"
	"github.com/piwi3910/AtlasPack/internal/engine"
	"github.com/piwi3910/AtlasPack/internal/export"
	"github.com/piwi3910/AtlasPack/internal/importer"
	"github.com/piwi3910/AtlasPack/internal/model"
	"github.com/piwi3910/AtlasPack/internal/project"
)

// recentProjectsLimit caps AppConfig.RecentProjects.
const recentProjectsLimit = 10

type options struct {
	configPath string
	maxDim     int
	padding    int
	rotate     bool
	dynamic    bool
	out        string
	pdf        string
	labels     string
	xlsx       string
	backup     string
	compare    bool
}

func main() {
	klog.InitFlags(nil)
	defer klog.Flush()

	var opts options
	flag.StringVar(&opts.configPath, "config", "", "application config path (default ~/.atlaspack/config.json)")
	flag.IntVar(&opts.maxDim, "max", 0, "maximum bin dimension, a power of two")
	flag.IntVar(&opts.padding, "padding", 0, "gap between sprites in px")
	flag.BoolVar(&opts.rotate, "rotate", true, "allow sprites to be rotated 90 degrees")
	flag.BoolVar(&opts.dynamic, "dynamic", false, "place sprites one at a time into fixed-size bins")
	flag.StringVar(&opts.out, "out", "", "save the project with its result as JSON")
	flag.StringVar(&opts.pdf, "pdf", "", "write a PDF layout report")
	flag.StringVar(&opts.labels, "labels", "", "write a PDF sheet of QR sprite labels")
	flag.StringVar(&opts.xlsx, "xlsx", "", "write the placements to an Excel workbook")
	flag.StringVar(&opts.backup, "backup", "", "write the config and recent projects to a backup file")
	flag.BoolVar(&opts.compare, "compare", false, "compare the default scenarios instead of packing once")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <sprites.csv|.xlsx|.dxf>\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(opts, flag.Args()); err != nil {
		klog.Errorf("%v", err)
		klog.Flush()
		os.Exit(1)
	}
}

func run(opts options, args []string) error {
	env, err := config.Load()
	if err != nil {
		return fmt.Errorf("reading environment: %w", err)
	}

	cfgPath := project.DefaultConfigPath()
	if env.ConfigPath != "" {
		cfgPath = env.ConfigPath
	}
	if opts.configPath != "" {
		cfgPath = opts.configPath
	}
	appCfg, err := project.LoadAppConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("loading %s: %w", cfgPath, err)
	}
	env.Apply(&appCfg)

	if opts.backup != "" {
		if err := project.ExportAllData(opts.backup, appCfg); err != nil {
			return err
		}
		klog.Infof("wrote backup to %s", opts.backup)
		if len(args) == 0 {
			return nil
		}
	}

	if len(args) != 1 {
		flag.Usage()
		return errors.New("expected exactly one input file")
	}

	settings := model.DefaultSettings()
	appCfg.ApplyToSettings(&settings)
	applyFlags(opts, &settings)

	sprites, err := importSprites(args[0], env.PixelsPerUnit)
	if err != nil {
		return err
	}

	if opts.compare {
		return compare(settings, sprites)
	}

	result, err := engine.NewOptimizer(settings).Optimize(sprites)
	if err != nil {
		return err
	}
	printResult(result)

	return writeOutputs(opts, appCfg, cfgPath, args[0], sprites, result)
}

// applyFlags overrides settings with the flags given on the command line.
func applyFlags(opts options, s *model.PackSettings) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "max":
			s.MaxBinDimension = opts.maxDim
		case "padding":
			s.Padding = opts.padding
		case "rotate":
			s.AllowRotation = opts.rotate
		case "dynamic":
			if opts.dynamic {
				s.Mode = model.ModeDynamic
			} else {
				s.Mode = model.ModeBatch
			}
		}
	})
}

func importSprites(path string, pixelsPerUnit float64) ([]model.Sprite, error) {
	var res importer.ImportResult
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv", ".txt":
		res = importer.ImportCSV(path)
	case ".xlsx":
		res = importer.ImportExcel(path)
	case ".dxf":
		res = importer.ImportDXF(path, pixelsPerUnit)
	default:
		return nil, fmt.Errorf("unsupported input format %q", filepath.Ext(path))
	}

	for _, w := range res.Warnings {
		klog.Warningf("%s: %s", path, w)
	}
	for _, e := range res.Errors {
		klog.Errorf("%s: %s", path, e)
	}
	if len(res.Sprites) == 0 {
		return nil, fmt.Errorf("no sprites imported from %s", path)
	}
	klog.V(1).Infof("imported %d sprites from %s", len(res.Sprites), path)
	return res.Sprites, nil
}

func compare(settings model.PackSettings, sprites []model.Sprite) error {
	results := engine.CompareScenarios(engine.BuildDefaultScenarios(settings), sprites)
	fmt.Printf("%-22s %6s %8s %8s\n", "Scenario", "Bins", "Sprites", "Waste")
	for _, r := range results {
		if r.Err != nil {
			fmt.Printf("%-22s error: %v\n", r.Scenario.Name, r.Err)
			continue
		}
		fmt.Printf("%-22s %6d %8d %7.1f%%\n", r.Scenario.Name, r.BinsUsed, r.SpriteCount, r.WastePercent)
	}
	return nil
}

func printResult(result model.PackResult) {
	for _, b := range result.Bins {
		fmt.Printf("bin %d: %s, %d sprites, %.1f%% used, %d px free in %d regions\n",
			b.Index, b.Size, len(b.Placements), b.Efficiency(), b.FreeArea(), len(b.FreeRegions))
		for _, p := range b.Placements {
			rot := ""
			if p.Rotated() {
				rot = " rotated"
			}
			fmt.Printf("  %-24s %s%s\n", p.Sprite.Label, p.Mapping.MappedRect, rot)
		}
	}
	fmt.Printf("%d sprites in %d bins, %.1f%% overall\n", result.SpriteCount(), len(result.Bins), result.TotalEfficiency())
}

func writeOutputs(opts options, appCfg model.AppConfig, cfgPath, input string, sprites []model.Sprite, result model.PackResult) error {
	if opts.out != "" {
		p := model.NewProject()
		p.Name = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		p.Sprites = sprites
		p.Settings = result.Settings
		p.Result = &result
		if err := project.SaveProject(opts.out, p); err != nil {
			return err
		}
		appCfg.AddRecentProject(opts.out, recentProjectsLimit)
		if err := project.SaveAppConfig(cfgPath, appCfg); err != nil {
			klog.Warningf("could not update recent projects: %v", err)
		}
		klog.Infof("saved project to %s", opts.out)
	}
	if opts.pdf != "" {
		if err := export.ExportPDF(opts.pdf, appCfg.ReportTitle, result); err != nil {
			return fmt.Errorf("writing PDF: %w", err)
		}
		klog.Infof("wrote report to %s", opts.pdf)
	}
	if opts.labels != "" {
		if err := export.ExportLabels(opts.labels, result); err != nil {
			return fmt.Errorf("writing labels: %w", err)
		}
		klog.Infof("wrote labels to %s", opts.labels)
	}
	if opts.xlsx != "" {
		if err := export.ExportXLSX(opts.xlsx, result); err != nil {
			return fmt.Errorf("writing workbook: %w", err)
		}
		klog.Infof("wrote workbook to %s", opts.xlsx)
	}
	return nil
}
