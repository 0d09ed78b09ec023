//go:build !js

package desktop

import "github.com/go-gl/glfw/v3.3/glfw"

// cursorFramebufferPos converts the cursor position from window coordinates
// to framebuffer pixels, which differ on HiDPI displays.
func cursorFramebufferPos(window *glfw.Window) (float64, float64) {
	cx, cy := window.GetCursorPos()
	winW, winH := window.GetSize()
	fbW, fbH := window.GetFramebufferSize()
	return scaleCursor(cx, cy, winW, winH, fbW, fbH)
}

func scaleCursor(cx, cy float64, winW, winH, fbW, fbH int) (float64, float64) {
	if winW <= 0 || winH <= 0 {
		return cx, cy
	}
	return cx * float64(fbW) / float64(winW), cy * float64(fbH) / float64(winH)
}
