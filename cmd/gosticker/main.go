// GoSticker — Sticker set generator.
//
// Usage:
//
//	gosticker <config.(json|yaml)> [--font path] [--output dir] [options]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/xob0t/GoSticker/pkg/config"
	"github.com/xob0t/GoSticker/pkg/generator"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "help", "-h", "--help":
		printUsage()
		return
	}

	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	configPath := args[0]

	fs := flag.NewFlagSet("gosticker", flag.ExitOnError)

	var (
		fontPath       string
		outputDir      string
		setIconText    string
		disableSetIcon bool
		parallel       int
		verbose        bool
	)

	fs.StringVar(&fontPath, "font", "", "Override font path (TTF/OTF/TTC)")
	fs.StringVar(&outputDir, "output", "", "Override the output directory")
	fs.StringVar(&setIconText, "set-icon-text", "", "Override the set icon text")
	fs.BoolVar(&disableSetIcon, "disable-set-icon", false, "Skip the set icon even if configured")
	fs.IntVar(&parallel, "parallel", 1, "Number of stickers to render concurrently")
	fs.BoolVar(&verbose, "v", false, "Verbose logging")

	fs.Usage = printUsage
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}

	log := logrus.New()
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	cfg, baseDir, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if fontPath != "" {
		cfg.FontPath = fontPath
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if setIconText != "" {
		cfg.SetIconText = setIconText
	}
	if disableSetIcon {
		cfg.SetIconText = ""
	}

	gen, err := generator.New(cfg, baseDir, log)
	if err != nil {
		return err
	}
	gen.Parallel = max(parallel, 1)

	if err := gen.Run(); err != nil {
		return err
	}

	fmt.Printf("Generated %d stickers in '%s'\n", len(cfg.Stickers), gen.OutputDir())
	return nil
}

func printUsage() {
	fmt.Print(`GoSticker — Sticker Set Generator

USAGE:
    gosticker <config.(json|yaml)> [options]

OPTIONS:
    --font <path>          Override font path; useful for supplying a font
                           that covers the sticker text's language
    --output <dir>         Override the output directory
    --set-icon-text <s>    Override the text used for the set icon graphic
    --disable-set-icon     Skip the set icon asset even if configured
    --parallel <n>         Render n stickers concurrently (default: 1)
    -v                     Verbose logging

OUTPUT:
    <output>/main/<slug>_main.png      one per sticker
    <output>/tab/<slug>_tab.png
    <output>/store/<slug>_store.png
    <output>/set_icon/set_icon.png     only when set icon text is configured

EXAMPLES:
    gosticker stickers.yaml
    gosticker stickers.json --output build/out --parallel 4
    gosticker stickers.yaml --font fonts/NotoSansJP-Regular.ttf
`)
}
