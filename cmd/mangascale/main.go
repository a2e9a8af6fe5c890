// Command mangascale prepares manga and comic line-art for size reduction.
//
// Usage:
//
//	mangascale blur      [options] <input>...   Gaussian blur
//	mangascale dotgain   [options] <input>...   Dot gain simulation
//	mangascale downscale [options] <input>...   Area-averaging resize
//	mangascale scale     [options] <input>...   Dot gain, then downscale by a factor
//
// Numeric filter options accept comma-separated lists; every combination is
// written as its own output file, named after the input plus a suffix that
// records the parameters (page.jpg -> page_blur_1.50.jpg).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/mangascale"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "mangascale: %v\n", err)
		os.Exit(1)
	}
}

var errUsage = errors.New("missing command")

func printUsage(w io.Writer) {
	fmt.Fprintf(w, `Usage:
  mangascale blur      [options] <input>...   Gaussian blur
  mangascale dotgain   [options] <input>...   Dot gain simulation
  mangascale downscale [options] <input>...   Area-averaging resize
  mangascale scale     [options] <input>...   Dot gain, then downscale by a factor

Run "mangascale <command> -h" for command-specific options.
`)
}

// run parses args and processes every input file.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) < 1 {
		printUsage(stderr)
		return errUsage
	}

	var define func(*flag.FlagSet) func() ([]variant, error)
	switch args[0] {
	case "blur":
		define = blurFlags
	case "dotgain":
		define = dotGainFlags
	case "downscale":
		define = downscaleFlags
	case "scale":
		define = scaleFlags
	case "-h", "-help", "--help", "help":
		printUsage(stdout)
		return flag.ErrHelp
	default:
		printUsage(stderr)
		return fmt.Errorf("unknown command %q", args[0])
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(stderr)
	var cfg config
	cfg.register(fs)
	build := define(fs)

	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("%s: missing input file", args[0])
	}
	variants, err := build()
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	tag, err := language.Parse(cfg.lang)
	if err != nil {
		return fmt.Errorf("invalid -lang %q: %w", cfg.lang, err)
	}

	logger := newLogger(stderr, cfg.verbose)
	mangascale.SetLogger(logger)

	proc := mangascale.NewProcessor(mangascale.WithWorkers(cfg.workers), mangascale.WithLogger(logger))
	defer proc.Close()

	b := &batch{
		cfg:      &cfg,
		proc:     proc,
		variants: variants,
		logger:   logger,
		out:      message.NewPrinter(tag),
		w:        stdout,
	}
	start := time.Now()
	if err := b.run(ctx, fs.Args()); err != nil {
		return err
	}
	b.summary(time.Since(start))
	return nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// config holds the options shared by every command.
type config struct {
	outDir  string
	ext     string
	suffix  string
	quality int
	workers int
	jobs    int
	gray    bool
	verbose bool
	lang    string
}

func (c *config) register(fs *flag.FlagSet) {
	fs.StringVar(&c.outDir, "o", "", "output directory (default: next to the input)")
	fs.StringVar(&c.ext, "ext", "", "output extension: .jpg, .png, .bmp or .tif (default: input's, .png if unsupported)")
	fs.StringVar(&c.suffix, "suffix", "", "extra text appended to every output name")
	fs.IntVar(&c.quality, "q", mangascale.DefaultJPEGQuality, "JPEG quality 1-100")
	fs.IntVar(&c.workers, "workers", 0, "filter worker goroutines (0 = one per CPU)")
	fs.IntVar(&c.jobs, "jobs", 2, "input files processed at the same time")
	fs.BoolVar(&c.gray, "gray", false, "convert to grayscale before filtering")
	fs.BoolVar(&c.verbose, "v", false, "log every filter call")
	fs.StringVar(&c.lang, "lang", "en", "language tag for number formatting in the summary")
}

// variant is one filter configuration applied to every input.
type variant struct {
	suffix string
	apply  func(p *mangascale.Processor, img *mangascale.Image) (*mangascale.Image, error)
}

func blurFlags(fs *flag.FlagSet) func() ([]variant, error) {
	radii := newFloatList(1)
	fs.Var(radii, "radius", "blur radius in pixels (list)")

	return func() ([]variant, error) {
		var vs []variant
		for _, r := range radii.values {
			vs = append(vs, variant{
				suffix: blurSuffix(r),
				apply: func(p *mangascale.Processor, img *mangascale.Image) (*mangascale.Image, error) {
					return p.Blur(img, r)
				},
			})
		}
		return vs, nil
	}
}

func dotGainFlags(fs *flag.FlagSet) func() ([]variant, error) {
	strengths := newIntList(mangascale.DefaultStrength)
	spreads := newIntList(mangascale.DefaultSpread)
	factor := fs.Float64("factor", 0.5, "scaling factor the result is prepared for")
	fs.Var(strengths, "strength", "dot gain strength (list)")
	fs.Var(spreads, "spread", "dot gain spread (list)")

	return func() ([]variant, error) {
		var vs []variant
		for _, st := range strengths.values {
			for _, sp := range spreads.values {
				vs = append(vs, variant{
					suffix: dotGainSuffix(st, sp, *factor),
					apply: func(p *mangascale.Processor, img *mangascale.Image) (*mangascale.Image, error) {
						return p.SimulateDotGain(img, st, sp, *factor)
					},
				})
			}
		}
		return vs, nil
	}
}

func downscaleFlags(fs *flag.FlagSet) func() ([]variant, error) {
	width := fs.Int("width", 0, "target width (0 = keep aspect ratio)")
	height := fs.Int("height", 0, "target height (0 = keep aspect ratio)")

	return func() ([]variant, error) {
		if *width == 0 && *height == 0 {
			return nil, errors.New("-width or -height is required")
		}
		w, h := *width, *height
		return []variant{{
			suffix: resizeSuffix(w, h),
			apply: func(p *mangascale.Processor, img *mangascale.Image) (*mangascale.Image, error) {
				tw, th := targetSize(img.Width(), img.Height(), w, h)
				return p.Downscale(img, th, tw)
			},
		}}, nil
	}
}

func scaleFlags(fs *flag.FlagSet) func() ([]variant, error) {
	factors := newFloatList(0.5)
	strengths := newIntList(mangascale.DefaultStrength)
	spreads := newIntList(mangascale.DefaultSpread)
	dotGain := fs.Bool("dotgain", true, "simulate dot gain before downscaling")
	fs.Var(factors, "factor", "scaling factor in (0, 1] (list)")
	fs.Var(strengths, "strength", "dot gain strength (list)")
	fs.Var(spreads, "spread", "dot gain spread (list)")

	return func() ([]variant, error) {
		var vs []variant
		for _, f := range factors.values {
			if !*dotGain {
				vs = append(vs, variant{
					suffix: scaleSuffix(f, nil),
					apply: func(p *mangascale.Processor, img *mangascale.Image) (*mangascale.Image, error) {
						return p.Scale(img, f, nil)
					},
				})
				continue
			}
			for _, st := range strengths.values {
				for _, sp := range spreads.values {
					dg := &mangascale.DotGainParams{Strength: st, Spread: sp}
					vs = append(vs, variant{
						suffix: scaleSuffix(f, dg),
						apply: func(p *mangascale.Processor, img *mangascale.Image) (*mangascale.Image, error) {
							return p.Scale(img, f, dg)
						},
					})
				}
			}
		}
		return vs, nil
	}
}

// targetSize fills in a zero target dimension from the source aspect ratio.
func targetSize(srcW, srcH, w, h int) (int, int) {
	switch {
	case w == 0:
		w = int(float64(srcW) * float64(h) / float64(srcH))
	case h == 0:
		h = int(float64(srcH) * float64(w) / float64(srcW))
	}
	return w, h
}

// batch processes input files concurrently and reports each output.
type batch struct {
	cfg      *config
	proc     *mangascale.Processor
	variants []variant
	logger   *slog.Logger

	mu     sync.Mutex
	out    *message.Printer
	w      io.Writer
	files  int
	pixels int
}

func (b *batch) run(ctx context.Context, inputs []string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(b.cfg.jobs, 1))

	for _, input := range inputs {
		g.Go(func() error {
			return b.process(ctx, input)
		})
	}
	return g.Wait()
}

func (b *batch) process(ctx context.Context, input string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	img, err := mangascale.Load(input)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}
	b.logger.Debug("loaded", "file", input, "height", img.Height(), "width", img.Width(), "format", img.Format())

	if b.cfg.gray {
		if img, err = mangascale.ToGray(img); err != nil {
			return fmt.Errorf("%s: %w", input, err)
		}
	}

	for _, v := range b.variants {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := time.Now()
		res, err := v.apply(b.proc, img)
		if err != nil {
			return fmt.Errorf("%s: %w", input, err)
		}

		suffix := v.suffix
		if b.cfg.gray {
			suffix += "_gray"
		}
		path := outputPath(input, b.cfg.outDir, suffix+b.cfg.suffix, b.cfg.ext)
		if err := mangascale.Save(path, res, b.cfg.quality); err != nil {
			return fmt.Errorf("%s: %w", input, err)
		}
		b.report(path, res, time.Since(start))
	}
	return nil
}

func (b *batch) report(path string, img *mangascale.Image, elapsed time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	px := img.Width() * img.Height()
	b.files++
	b.pixels += px
	b.out.Fprintf(b.w, "%s: %d x %d (%d px) in %v\n",
		path, img.Width(), img.Height(), px, elapsed.Round(time.Millisecond))
}

func (b *batch) summary(elapsed time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.out.Fprintf(b.w, "wrote %d files, %d px in %v\n", b.files, b.pixels, elapsed.Round(time.Millisecond))
}

// encodable lists the extensions Save can write.
var encodable = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".bmp": true, ".tif": true, ".tiff": true,
}

// outputPath names the output for input: the input's base name plus
// suffix, in outDir (or the input's directory) with extension ext (or the
// input's, falling back to .png for formats that cannot be written).
func outputPath(input, outDir, suffix, ext string) string {
	dir, base := filepath.Split(input)
	inExt := filepath.Ext(base)
	stem := strings.TrimSuffix(base, inExt)

	if outDir != "" {
		dir = outDir
	}
	if ext == "" {
		ext = inExt
		if !encodable[strings.ToLower(ext)] {
			ext = ".png"
		}
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return filepath.Join(dir, stem+suffix+ext)
}
