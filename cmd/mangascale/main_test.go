package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/mangascale"
)

func TestSuffixes(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"blur", blurSuffix(1.5), "_blur_1.50"},
		{"blur rounds", blurSuffix(0.833), "_blur_0.83"},
		{"dot gain", dotGainSuffix(50, 60, 0.5), "_dotgain_St50_Sp60_Sc0.50"},
		{"scale with dot gain", scaleSuffix(0.45, &mangascale.DotGainParams{Strength: 50, Spread: 50}), "_down_0.45_dg_st50_sp50"},
		{"scale without dot gain", scaleSuffix(0.45, nil), "_down_0.45_nodg"},
		{"scale whole factor", scaleSuffix(1, nil), "_down_1_nodg"},
		{"resize both", resizeSuffix(800, 1200), "_down_800x1200"},
		{"resize width", resizeSuffix(800, 0), "_down_w800"},
		{"resize height", resizeSuffix(0, 1200), "_down_h1200"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("suffix = %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name                    string
		input, dir, suffix, ext string
		want                    string
	}{
		{"same dir", filepath.Join("in", "page.jpg"), "", "_blur_1.00", "", filepath.Join("in", "page_blur_1.00.jpg")},
		{"out dir", filepath.Join("in", "page.jpg"), "out", "_x", "", filepath.Join("out", "page_x.jpg")},
		{"ext override", "page.jpg", "", "_x", ".png", "page_x.png"},
		{"ext without dot", "page.jpg", "", "_x", "tif", "page_x.tif"},
		{"unwritable input format", "page.webp", "", "_x", "", "page_x.png"},
		{"upper case ext kept", "PAGE.JPG", "", "_x", "", "PAGE_x.JPG"},
		{"dots in name", "vol.1.page.png", "", "_x", "", "vol.1.page_x.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(tt.input, tt.dir, tt.suffix, tt.ext); got != tt.want {
				t.Errorf("outputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestListFlag(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	radii := newFloatList(1)
	counts := newIntList(50)
	fs.Var(radii, "radius", "")
	fs.Var(counts, "n", "")

	if err := fs.Parse([]string{"-radius", "0.5, 2", "-radius", "3"}); err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	want := []float64{0.5, 2, 3}
	if len(radii.values) != len(want) {
		t.Fatalf("radius = %v, want %v", radii.values, want)
	}
	for i := range want {
		if radii.values[i] != want[i] {
			t.Errorf("radius[%d] = %v, want %v", i, radii.values[i], want[i])
		}
	}
	if radii.String() != "0.5,2,3" {
		t.Errorf("String() = %q, want %q", radii.String(), "0.5,2,3")
	}
	if len(counts.values) != 1 || counts.values[0] != 50 {
		t.Errorf("unset list = %v, want default [50]", counts.values)
	}

	if err := counts.Set("7,x"); err == nil {
		t.Error("Set(\"7,x\") succeeded, want error")
	}
}

func TestTargetSize(t *testing.T) {
	tests := []struct {
		srcW, srcH, w, h int
		wantW, wantH     int
	}{
		{1000, 1500, 500, 0, 500, 750},
		{1000, 1500, 0, 300, 200, 300},
		{1000, 1500, 10, 20, 10, 20},
	}
	for _, tt := range tests {
		w, h := targetSize(tt.srcW, tt.srcH, tt.w, tt.h)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("targetSize(%d, %d, %d, %d) = %d, %d; want %d, %d",
				tt.srcW, tt.srcH, tt.w, tt.h, w, h, tt.wantW, tt.wantH)
		}
	}
}

// writeInput saves a small line-art test image and returns its path.
func writeInput(t *testing.T, dir, name string) string {
	t.Helper()
	img, err := mangascale.NewImage(20, 30, mangascale.FormatRGB8)
	if err != nil {
		t.Fatal(err)
	}
	img.Fill(mangascale.RGB(255, 255, 255))
	for row := range 20 {
		img.Set(row, 10, mangascale.RGB(0, 0, 0))
	}
	path := filepath.Join(dir, name)
	if err := mangascale.Save(path, img, 100); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	return path
}

func TestRunScale(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "page.png")
	out := t.TempDir()

	var stdout, stderr bytes.Buffer
	args := []string{"scale", "-o", out, "-factor", "0.5", "-spread", "40,60", in}
	if err := run(context.Background(), args, &stdout, &stderr); err != nil {
		t.Fatalf("run() error: %v\nstderr: %s", err, stderr.String())
	}

	for _, name := range []string{"page_down_0.5_dg_st50_sp40.png", "page_down_0.5_dg_st50_sp60.png"} {
		img, err := mangascale.Load(filepath.Join(out, name))
		if err != nil {
			t.Fatalf("Load(%s) error: %v", name, err)
		}
		if img.Width() != 15 || img.Height() != 10 {
			t.Errorf("%s: %dx%d, want 15x10", name, img.Width(), img.Height())
		}
	}
	if !strings.Contains(stdout.String(), "wrote 2 files") {
		t.Errorf("summary missing from output:\n%s", stdout.String())
	}
}

func TestRunBlurGrayBatch(t *testing.T) {
	dir := t.TempDir()
	inputs := []string{writeInput(t, dir, "a.png"), writeInput(t, dir, "b.bmp")}

	var stdout, stderr bytes.Buffer
	args := append([]string{"blur", "-radius", "1,2", "-gray", "-jobs", "2", "-workers", "2"}, inputs...)
	if err := run(context.Background(), args, &stdout, &stderr); err != nil {
		t.Fatalf("run() error: %v\nstderr: %s", err, stderr.String())
	}

	for _, name := range []string{"a_blur_1.00_gray.png", "a_blur_2.00_gray.png", "b_blur_1.00_gray.bmp", "b_blur_2.00_gray.bmp"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing output %s: %v", name, err)
		}
	}
	if !strings.Contains(stdout.String(), "wrote 4 files, 2,400 px") {
		t.Errorf("summary = %q, want 4 files and 2,400 px", stdout.String())
	}
}

func TestRunDownscaleAspect(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "page.png")

	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"downscale", "-width", "12", in}, &stdout, &stderr); err != nil {
		t.Fatalf("run() error: %v", err)
	}
	img, err := mangascale.Load(filepath.Join(dir, "page_down_w12.png"))
	if err != nil {
		t.Fatal(err)
	}
	if img.Width() != 12 || img.Height() != 8 {
		t.Errorf("result %dx%d, want 12x8", img.Width(), img.Height())
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "page.png")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no command", nil, "missing command"},
		{"unknown command", []string{"sharpen", in}, "unknown command"},
		{"no input", []string{"blur"}, "missing input"},
		{"downscale without size", []string{"downscale", in}, "-width or -height"},
		{"bad flag value", []string{"blur", "-radius", "x", in}, "invalid value"},
		{"bad language", []string{"blur", "-lang", "!!", in}, "invalid -lang"},
		{"missing file", []string{"blur", filepath.Join(dir, "none.png")}, "none.png"},
		{"upscale", []string{"downscale", "-width", "60", in}, "exceeds source size"},
		{"invalid radius", []string{"blur", "-radius", "0", in}, "radius"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := run(context.Background(), tt.args, &stdout, &stderr)
			if err == nil {
				t.Fatal("run() succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.want) && !strings.Contains(stderr.String(), tt.want) {
				t.Errorf("error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestRunHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"help"}, &stdout, &stderr)
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("run(help) error = %v, want flag.ErrHelp", err)
	}
	if !strings.Contains(stdout.String(), "mangascale scale") {
		t.Errorf("usage missing from output:\n%s", stdout.String())
	}
}

func TestRunCanceled(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "page.png")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout, stderr bytes.Buffer
	err := run(ctx, []string{"blur", in}, &stdout, &stderr)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("run() error = %v, want context.Canceled", err)
	}
}
