// Package web runs the fireworks overlay in a browser page.
package web

import (
	"fmt"
	"strconv"

	"fireworks/internal/fx"
)

// cssRGBA formats a fill as a CSS colour for the 2D context fillStyle.
func cssRGBA(f fx.Fill) string {
	a := min(1, max(0, f.Alpha))
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", f.Col.R, f.Col.G, f.Col.B,
		strconv.FormatFloat(a, 'f', 3, 64))
}
