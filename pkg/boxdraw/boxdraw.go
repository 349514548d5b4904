// Package boxdraw draws annotation rectangles onto raster images.
//
// The draw primitive is a single-pixel outline, so a configurable stroke
// width is emulated by drawing concentric outlines, each pass inflated one
// pixel further outward. The combined PDF output depends on this exact
// inflation behavior, so it is kept rather than replaced with a thick-line
// primitive.
package boxdraw

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"
	"strings"
)

// Box draws an outlined rectangle onto img. width passes are drawn; pass k
// is inflated outward by k pixels, so the outer boundary ends up width-1
// pixels beyond rect on each side. A width of zero or less draws nothing.
// Pixels falling outside the image bounds are clipped by the raster
// boundary.
func Box(img draw.Image, rect image.Rectangle, c color.Color, width int) {
	for k := 0; k < width; k++ {
		outline(img, rect.Inset(-k), c)
	}
}

// outline draws a one-pixel rectangle outline.
func outline(img draw.Image, r image.Rectangle, c color.Color) {
	bounds := img.Bounds()
	for x := r.Min.X; x <= r.Max.X; x++ {
		setClipped(img, bounds, x, r.Min.Y, c)
		setClipped(img, bounds, x, r.Max.Y, c)
	}
	for y := r.Min.Y; y <= r.Max.Y; y++ {
		setClipped(img, bounds, r.Min.X, y, c)
		setClipped(img, bounds, r.Max.X, y, c)
	}
}

func setClipped(img draw.Image, bounds image.Rectangle, x, y int, c color.Color) {
	if image.Pt(x, y).In(bounds) {
		img.Set(x, y, c)
	}
}

// namedColors covers the color names accepted by the stroke-color option.
var namedColors = map[string]color.RGBA{
	"black":   {0, 0, 0, 255},
	"white":   {255, 255, 255, 255},
	"red":     {255, 0, 0, 255},
	"green":   {0, 128, 0, 255},
	"lime":    {0, 255, 0, 255},
	"blue":    {0, 0, 255, 255},
	"yellow":  {255, 255, 0, 255},
	"orange":  {255, 165, 0, 255},
	"magenta": {255, 0, 255, 255},
	"cyan":    {0, 255, 255, 255},
	"gray":    {128, 128, 128, 255},
	"grey":    {128, 128, 128, 255},
}

// ParseColor resolves a stroke color given as either a name ("red") or a
// hex value ("#f00" or "#ff0000").
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}

	hex := strings.TrimPrefix(s, "#")
	switch len(hex) {
	case 3:
		var c [3]uint8
		for i := 0; i < 3; i++ {
			v, err := strconv.ParseUint(hex[i:i+1], 16, 8)
			if err != nil {
				return color.RGBA{}, fmt.Errorf("invalid color %q", s)
			}
			c[i] = uint8(v * 17)
		}
		return color.RGBA{c[0], c[1], c[2], 255}, nil
	case 6:
		var c [3]uint8
		for i := 0; i < 3; i++ {
			v, err := strconv.ParseUint(hex[2*i:2*i+2], 16, 8)
			if err != nil {
				return color.RGBA{}, fmt.Errorf("invalid color %q", s)
			}
			c[i] = uint8(v)
		}
		return color.RGBA{c[0], c[1], c[2], 255}, nil
	}
	return color.RGBA{}, fmt.Errorf("unknown color %q", s)
}
