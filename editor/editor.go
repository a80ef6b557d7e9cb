// Package editor drives a batch annotation run: one editing session per
// image, navigation with auto-save, and export of committed regions at
// source resolution.
package editor

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/soocke/circlemark/compose"
	"github.com/soocke/circlemark/config"
	"github.com/soocke/circlemark/domain/annotation"
	"github.com/soocke/circlemark/domain/session"
	"github.com/soocke/circlemark/export"
	"github.com/soocke/circlemark/imageio"
	"github.com/soocke/circlemark/layout"
	"github.com/soocke/circlemark/render"
)

// Editor owns the batch state and the current image's editing session. It
// is single-threaded: the display front-end feeds it one event at a time.
type Editor struct {
	cfg    *config.Config
	logger *slog.Logger
	comp   *compose.Compositor
	rend   *render.Renderer

	files  []string
	idx    int
	outDir string

	sess        *session.Session
	source      *image.NRGBA
	scaled      *image.NRGBA
	composite   *image.NRGBA
	scaleFactor float64
	lastRev     uint64

	saved map[string]bool
	docs  map[string]export.Document
}

// New builds an editor over the given image files, writing results to
// outDir, and loads the first image.
func New(cfg *config.Config, logger *slog.Logger, files []string, outDir string) (*Editor, error) {
	if len(files) == 0 {
		return nil, errors.New("no images to annotate")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output folder: %w", err)
	}
	eng, err := layout.New()
	if err != nil {
		return nil, err
	}
	comp := compose.New(logger)
	if err := comp.SetBlurKernel(cfg.BlurKernel); err != nil {
		return nil, err
	}
	if err := comp.SetPixelateSize(cfg.PixelateSize); err != nil {
		return nil, err
	}
	if err := comp.SetHighlightAlpha(cfg.HighlightAlpha); err != nil {
		return nil, err
	}
	e := &Editor{
		cfg:    cfg,
		logger: logger,
		comp:   comp,
		rend:   render.NewRenderer(eng, logger),
		files:  files,
		outDir: outDir,
		saved:  make(map[string]bool),
		docs:   make(map[string]export.Document),
	}
	if err := e.loadCurrent(); err != nil {
		return nil, err
	}
	return e, nil
}

// Session returns the current image's session.
func (e *Editor) Session() *session.Session { return e.sess }

// Compositor returns the effect compositor for parameter changes.
func (e *Editor) Compositor() *compose.Compositor { return e.comp }

// Handle feeds one input event through the session and rebuilds the
// composite when the region store changed. Returns whether a redraw is
// needed.
func (e *Editor) Handle(ev session.Event, now time.Time) bool {
	redraw := e.sess.Handle(ev, now)
	if e.sess.Store().Revision() != e.lastRev {
		e.rebuild()
		redraw = true
	}
	return redraw
}

// Frame renders the current display frame.
func (e *Editor) Frame() *image.NRGBA {
	return e.rend.Frame(e.composite, e.sess, e.Status())
}

// Status reports the HUD fields for the current image.
func (e *Editor) Status() render.Status {
	name := e.currentName()
	return render.Status{
		Index:    e.idx,
		Total:    len(e.files),
		Filename: name,
		Saved:    e.saved[name],
		Edited:   e.sess.Store().Len() > 0,
	}
}

// SetMode switches the effect mode by 0-based index (keys 1-7).
func (e *Editor) SetMode(n int) error {
	m, ok := annotation.ModeAt(n)
	if !ok {
		return fmt.Errorf("no mode at index %d", n)
	}
	return e.sess.SetMode(m)
}

// Undo removes the most recent region.
func (e *Editor) Undo() error {
	r, ok, err := e.sess.Undo()
	if err != nil {
		return err
	}
	if !ok {
		e.logger.Info("nothing to undo")
		return nil
	}
	e.logger.Info("region removed", "label", r.Label, "mode", r.Mode.String())
	e.rebuild()
	return nil
}

// Clear removes every region of the current image.
func (e *Editor) Clear() error {
	n, err := e.sess.Clear()
	if err != nil {
		return err
	}
	if n > 0 {
		e.logger.Info("cleared regions", "count", n)
		e.rebuild()
	}
	return nil
}

// EditLastLabel replaces the label of the most recent region.
func (e *Editor) EditLastLabel(label string) error {
	if err := e.sess.EditLastLabel(label); err != nil {
		return err
	}
	e.rebuild()
	return nil
}

// ToggleLabels flips label visibility and reports the new state.
func (e *Editor) ToggleLabels() bool {
	e.rend.ShowLabels = !e.rend.ShowLabels
	return e.rend.ShowLabels
}

// ToggleHUD flips the status overlay and reports the new state.
func (e *Editor) ToggleHUD() bool {
	e.rend.ShowHUD = !e.rend.ShowHUD
	return e.rend.ShowHUD
}

// ResetView restores zoom 1.0 and zero pan.
func (e *Editor) ResetView() {
	e.sess.Viewport().Reset()
}

// Next moves to the next image, auto-saving current work. Rejected while a
// gesture is in progress.
func (e *Editor) Next(now time.Time) error {
	if err := e.sess.NavigationAllowed(); err != nil {
		return err
	}
	if e.idx >= len(e.files)-1 {
		return errors.New("already at last image")
	}
	e.autoSave(now)
	e.idx++
	return e.loadCurrent()
}

// Prev moves to the previous image, auto-saving current work. Rejected
// while a gesture is in progress.
func (e *Editor) Prev(now time.Time) error {
	if err := e.sess.NavigationAllowed(); err != nil {
		return err
	}
	if e.idx <= 0 {
		return errors.New("already at first image")
	}
	e.autoSave(now)
	e.idx--
	return e.loadCurrent()
}

// Save exports the current image: the annotated frame at source resolution
// plus the JSON label document. With auto set, an empty store is silently
// skipped.
func (e *Editor) Save(auto bool, now time.Time) error {
	name := e.currentName()
	if e.sess.Store().Len() == 0 {
		// A previously exported image whose regions were all removed
		// still gets written, so the stale document is overwritten
		// rather than resurrected on the next visit.
		if _, exported := e.docs[name]; !exported {
			if !auto {
				e.logger.Info("no objects to save")
			}
			return nil
		}
	}

	// Project back to source resolution when the working image was
	// downscaled for display.
	regions := e.sess.Store().Regions()
	target := e.scaled
	if e.scaleFactor != 1.0 {
		regions = e.sess.Store().Rescaled(1 / e.scaleFactor)
		target = e.source
	}
	final := e.comp.Render(target, regions)
	final = e.rend.Annotated(final, regions)

	imgPath := filepath.Join(e.outDir, name)
	if err := imageio.Save(final, imgPath); err != nil {
		return err
	}
	doc := export.NewDocument(name, regions, now)
	jsonPath := strings.TrimSuffix(imgPath, filepath.Ext(imgPath)) + ".json"
	if err := export.WriteDocument(jsonPath, doc); err != nil {
		return err
	}

	e.saved[name] = true
	e.docs[name] = doc
	e.logger.Info("saved", "image", name, "objects", len(doc.Objects), "auto", auto)
	return nil
}

// Close auto-saves outstanding work and writes the batch summary CSV for
// every saved image.
func (e *Editor) Close(now time.Time) error {
	if e.sess.NavigationAllowed() == nil {
		e.autoSave(now)
	}
	if len(e.docs) == 0 {
		e.logger.Info("no images were saved")
		return nil
	}
	names := make([]string, 0, len(e.docs))
	for name := range e.docs {
		names = append(names, name)
	}
	sort.Strings(names)
	rows := make([]export.SummaryRow, 0, len(names))
	for _, name := range names {
		rows = append(rows, export.SummaryFromDocument(e.docs[name]))
	}
	path := filepath.Join(e.outDir, "processing_summary.csv")
	if err := export.WriteSummaryCSV(path, rows); err != nil {
		return err
	}
	e.logger.Info("summary written", "path", path, "images", len(rows))
	return nil
}

func (e *Editor) currentName() string {
	return filepath.Base(e.files[e.idx])
}

func (e *Editor) autoSave(now time.Time) {
	name := e.currentName()
	if e.saved[name] {
		return
	}
	if e.sess.Store().Len() == 0 {
		if _, exported := e.docs[name]; !exported {
			return
		}
	}
	if err := e.Save(true, now); err != nil {
		e.logger.Error("auto-save failed", "image", name, "error", err)
	}
}

// loadCurrent replaces the session, viewport and buffers for the image at
// the current index. Previously exported regions are restored so work can
// be resumed across navigation.
func (e *Editor) loadCurrent() error {
	path := e.files[e.idx]
	src, err := imageio.Open(path)
	if err != nil {
		return err
	}
	e.source = src
	e.scaled, e.scaleFactor = imageio.FitToDisplay(src, e.cfg.MaxDisplayWidth, e.cfg.MaxDisplayHeight)

	store := annotation.NewStore()
	e.restoreRegions(store)
	view := session.NewViewport(e.cfg.MinZoom, e.cfg.MaxZoom,
		time.Duration(e.cfg.ZoomDebounceMS)*time.Millisecond)
	e.sess = session.NewSession(store, view, e.logger)
	e.lastRev = store.Revision()
	e.composite = e.comp.Render(e.scaled, store.Regions())

	e.logger.Info("image loaded",
		"image", e.currentName(),
		"index", e.idx+1, "total", len(e.files),
		"scale", e.scaleFactor)
	return nil
}

// restoreRegions reloads regions from a previously written label document,
// projected into working-image coordinates.
func (e *Editor) restoreRegions(store *annotation.Store) {
	name := e.currentName()
	jsonPath := filepath.Join(e.outDir, strings.TrimSuffix(name, filepath.Ext(name))+".json")
	doc, err := export.ReadDocument(jsonPath)
	if err != nil {
		return // nothing exported yet
	}
	for _, r := range doc.Regions() {
		if e.scaleFactor != 1.0 {
			r.Center.X = int(float64(r.Center.X) * e.scaleFactor)
			r.Center.Y = int(float64(r.Center.Y) * e.scaleFactor)
			r.Radius = int(float64(r.Radius) * e.scaleFactor)
		}
		store.Append(r)
	}
	// An empty document still counts as exported, so later edits keep
	// overwriting it instead of skipping the save.
	e.saved[name] = true
	e.docs[name] = doc
	if store.Len() > 0 {
		e.logger.Info("restored regions", "image", name, "count", store.Len())
	}
}

func (e *Editor) rebuild() {
	e.composite = e.comp.Render(e.scaled, e.sess.Store().Regions())
	e.lastRev = e.sess.Store().Revision()
	e.saved[e.currentName()] = false
}
