// Package mangascale provides a filter chain for preparing manga and comic
// line-art for size reduction.
//
// # Overview
//
// Downscaling line-art with a plain area filter thins strokes and lets
// screentone wash out. mangascale compensates by first simulating dot gain,
// the spread of ink on paper, so dark strokes thicken by about the amount the
// downscale will thin them, and then resizing with exact pixel-area
// averaging.
//
// # Quick Start
//
//	import "github.com/gogpu/mangascale"
//
//	img, err := mangascale.Load("page.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Dot gain tuned for a 0.5 downscale, then the downscale itself.
//	dg := mangascale.DefaultDotGain()
//	small, err := mangascale.Scale(img, 0.5, &dg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	_ = mangascale.Save("page_small.jpg", small, mangascale.DefaultJPEGQuality)
//
// # Filters
//
//   - [Blur]: separable Gaussian blur with edge clamping
//   - [SimulateDotGain]: brightness-selective 2D convolution; darker pixels
//     bleed onto brighter ones, never the reverse
//   - [Downscale]: area-averaging resize with fractional pixel coverage
//   - [Scale]: optional dot gain followed by a downscale by a single factor
//
// Filters never modify their input and always return a new [Image].
//
// # Concurrency
//
// Every filter pass is split into one task per row or column and run on a
// worker pool. Results are identical for any worker count. Package-level
// functions share a lazily created default [Processor]; create your own with
// [NewProcessor] to control the number of workers or the logger.
//
// # Logging
//
// mangascale is silent by default. Call [SetLogger] to receive debug records
// for every filter call.
package mangascale
