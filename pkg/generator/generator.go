// Package generator orchestrates a sticker run: compose each sticker at
// supersampled resolution, export it at every published size, then render
// the set icon when one is configured. The first error aborts the run;
// files already written stay on disk.
package generator

import (
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/xob0t/GoSticker/pkg/config"
	"github.com/xob0t/GoSticker/pkg/export"
	"github.com/xob0t/GoSticker/pkg/render"
)

// Generator renders and exports a whole sticker set.
type Generator struct {
	cfg      *config.GenerationConfig
	composer render.Composer
	exporter *export.Exporter
	log      *logrus.Logger

	// Parallel > 1 renders that many stickers concurrently. Composition is
	// pure per sticker; only the face cache needs isolating, which workers
	// get by cloning the font manager.
	Parallel int
}

// New wires a generator from a loaded config. Relative asset and output
// paths resolve against baseDir.
func New(cfg *config.GenerationConfig, baseDir string, log *logrus.Logger) (*Generator, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	fontPath := ""
	if cfg.FontPath != "" {
		resolved, err := config.ResolvePath(baseDir, cfg.FontPath)
		if err != nil {
			return nil, fmt.Errorf("font: %w", err)
		}
		fontPath = resolved
	}

	fonts, err := render.NewFontManager(fontPath)
	if err != nil {
		return nil, err
	}
	if fonts.Path() == "" {
		log.Warn("no usable system font found, falling back to embedded Go Regular")
	} else {
		log.WithField("font", fonts.Path()).Debug("font resolved")
	}

	outDir := cfg.OutputDir
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(baseDir, outDir)
	}
	exporter, err := export.NewExporter(outDir)
	if err != nil {
		return nil, err
	}

	w, h := cfg.BaseSize()
	return &Generator{
		cfg: cfg,
		composer: render.Composer{
			Fonts:    fonts,
			BaseDir:  baseDir,
			FontSize: cfg.FontSize,
			Width:    w,
			Height:   h,
		},
		exporter: exporter,
		log:      log,
		Parallel: 1,
	}, nil
}

// OutputDir returns the resolved output root.
func (g *Generator) OutputDir() string {
	return g.exporter.Root()
}

// Run renders every sticker and the optional set icon.
func (g *Generator) Run() error {
	if g.Parallel > 1 {
		if err := g.runParallel(); err != nil {
			return err
		}
	} else {
		for i := range g.cfg.Stickers {
			if err := g.renderOne(g.composer, i); err != nil {
				return err
			}
		}
	}

	if g.cfg.SetIconText != "" {
		if err := g.renderSetIcon(); err != nil {
			return err
		}
	}

	g.log.WithFields(logrus.Fields{
		"stickers": len(g.cfg.Stickers),
		"output":   g.exporter.Root(),
	}).Info("sticker set generated")
	return nil
}

// runParallel fans the sticker loop out over an errgroup. Each worker gets
// its own composer copy with a cloned font manager; exports touch disjoint
// files (identical slugs race on the same path, matching the sequential
// last-writer-wins behavior in effect if not in order).
func (g *Generator) runParallel() error {
	var eg errgroup.Group
	eg.SetLimit(g.Parallel)

	for i := range g.cfg.Stickers {
		i := i
		composer := g.composer
		composer.Fonts = g.composer.Fonts.Clone()
		eg.Go(func() error {
			return g.renderOne(composer, i)
		})
	}
	return eg.Wait()
}

// renderOne composes sticker i and exports its three sizes.
func (g *Generator) renderOne(composer render.Composer, i int) error {
	spec := &g.cfg.Stickers[i]
	slug := slugFor(spec, i)

	img, err := composer.RenderSticker(spec)
	if err != nil {
		return fmt.Errorf("sticker %q: %w", slug, err)
	}

	for _, target := range []struct {
		category string
		size     []int
	}{
		{"main", g.cfg.MainSize},
		{"store", g.cfg.StoreSize},
		{"tab", g.cfg.TabSize},
	} {
		if err := g.exporter.Export(img, slug, target.category, target.size[0], target.size[1]); err != nil {
			return fmt.Errorf("sticker %q: %w", slug, err)
		}
	}

	g.log.WithField("slug", slug).Info("sticker exported")
	return nil
}

func (g *Generator) renderSetIcon() error {
	img, err := g.composer.RenderSetIcon(g.cfg)
	if err != nil {
		return fmt.Errorf("set icon: %w", err)
	}
	side := max(g.cfg.StoreSize[0], g.cfg.StoreSize[1])
	if err := g.exporter.ExportSetIcon(img, side); err != nil {
		return fmt.Errorf("set icon: %w", err)
	}
	g.log.Info("set icon exported")
	return nil
}

// slugFor picks the explicit slug, a slug derived from the text, or an
// index-based fallback, in that order. Uniqueness is the config author's
// job; collisions overwrite.
func slugFor(spec *config.StickerSpec, index int) string {
	if spec.Slug != "" {
		return spec.Slug
	}
	if derived := render.Slugify(spec.Text); derived != "" {
		return derived
	}
	return fmt.Sprintf("sticker_%02d", index+1)
}
