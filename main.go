package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/soocke/circlemark/capture"
	"github.com/soocke/circlemark/config"
	"github.com/soocke/circlemark/editor"
	"github.com/soocke/circlemark/imageio"
	"github.com/soocke/circlemark/ui/presenter"
	"github.com/soocke/circlemark/ui/theme"
	"github.com/soocke/circlemark/ui/view"
)

func main() {
	input := flag.String("input", ".", "folder with images to annotate")
	output := flag.String("output", "", "output folder (default labeled_output_<timestamp> beside the input)")
	cfgPath := flag.String("config", "circlemark.json", "path to the config file")
	screenshotMode := flag.Bool("screenshot", false, "capture the screen and annotate it instead of a folder")
	debug := flag.Bool("debug", false, "verbose logging")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := NewLogger(level)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logger.Warn("config load failed, using defaults", "path", *cfgPath, "error", err)
	}

	outDir := *output
	if outDir == "" {
		outDir = filepath.Join(filepath.Dir(*input), "labeled_output_"+time.Now().Format("20060102_150405"))
	}

	var files []string
	if *screenshotMode {
		path, err := grabScreenshot(*input)
		if err != nil {
			logger.Error("screenshot failed", "error", err)
			os.Exit(1)
		}
		logger.Info("screen captured", "path", path)
		files = []string{path}
	} else {
		files, err = imageio.ListImages(*input)
		if err != nil {
			logger.Error("listing images failed", "folder", *input, "error", err)
			os.Exit(1)
		}
		if len(files) == 0 {
			logger.Error("no images found", "folder", *input)
			os.Exit(1)
		}
	}

	ed, err := editor.New(cfg, logger, files, outDir)
	if err != nil {
		logger.Error("editor start failed", "error", err)
		os.Exit(1)
	}

	theme.InitStyles()
	v := view.NewEditorView(logger)
	p := presenter.NewEditorPresenter(ed, v, logger)
	v.Build("Annotate", p)
	p.Attach()
	v.Run()
}

// grabScreenshot captures the screen into dir and returns the file path.
// The annotated result still lands in the output folder, keeping the raw
// capture untouched.
func grabScreenshot(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	img, err := capture.Grab()
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, "screenshot_"+time.Now().Format("20060102_150405")+".png")
	if err := imageio.Save(img, path); err != nil {
		return "", err
	}
	return path, nil
}
