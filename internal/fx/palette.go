package fx

import (
	"math"

	"github.com/crazy3lf/colorconv"
)

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

// Fill is a paint colour with a straight (non-premultiplied) alpha in [0, 1].
type Fill struct {
	Col   RGB
	Alpha float64
}

// Palette holds the fixed colours of the overlay.
var Palette = struct {
	Trail RGB // fade rectangle, only its alpha matters under destination-out
}{
	Trail: RGB{R: 0, G: 0, B: 0},
}

// HSL converts hue (degrees), saturation and lightness ([0, 1]) to RGB.
// Hue wraps around 360; saturation and lightness are clamped.
func HSL(h, s, l float64) RGB {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	r, g, b, err := colorconv.HSLToRGB(h, clampF(s, 0, 1), clampF(l, 0, 1))
	if err != nil {
		// Only reachable with NaN input.
		return RGB{}
	}
	return RGB{R: r, G: g, B: b}
}

// hueCache memoises HSL lookups for the particle paint pass. Hues are
// quantised to 0.25 degree which is below 8-bit channel resolution.
type hueCache struct {
	sat, light float64
	cols       map[int32]RGB
}

func newHueCache(sat, light float64) *hueCache {
	return &hueCache{sat: sat, light: light, cols: make(map[int32]RGB, 512)}
}

func (c *hueCache) get(hue float64) RGB {
	k := int32(math.Round(hue * 4))
	if col, ok := c.cols[k]; ok {
		return col
	}
	col := HSL(float64(k)/4, c.sat, c.light)
	c.cols[k] = col
	return col
}
