//go:build !js

package desktop

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"fireworks/internal/fx"
)

// Each circle: 7 floats (x, y, radius, r, g, b, a), colour premultiplied.
const (
	circleStride = 7
	maxBatch     = 4096
)

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// Surface draws into a persistent offscreen framebuffer so the trail
// survives between frames, and blits it to the window on Present.
type Surface struct {
	win   *glfw.Window
	pacer *framePacer
	w, h  int

	fbo, tex uint32

	circleProg uint32
	circleVAO  uint32
	circleVBO  uint32
	circleURes int32

	rectProg   uint32
	rectVAO    uint32
	rectVBO    uint32
	rectURes   int32
	rectUColor int32

	fill  [4]float32 // premultiplied
	batch []float32
}

func newSurface(win *glfw.Window, pacer *framePacer) (*Surface, error) {
	circleProg, err := linkProgram(circleVertSrc, circleFragSrc)
	if err != nil {
		return nil, fmt.Errorf("circle program: %w", err)
	}
	rectProg, err := linkProgram(rectVertSrc, rectFragSrc)
	if err != nil {
		gl.DeleteProgram(circleProg)
		return nil, fmt.Errorf("rect program: %w", err)
	}

	s := &Surface{
		win:        win,
		pacer:      pacer,
		circleProg: circleProg,
		rectProg:   rectProg,
		batch:      make([]float32, 0, maxBatch*circleStride),
	}

	// Circle VAO/VBO: streaming buffer for point sprites.
	gl.GenVertexArrays(1, &s.circleVAO)
	gl.GenBuffers(1, &s.circleVBO)
	gl.BindVertexArray(s.circleVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.circleVBO)
	stride := int32(circleStride * 4)
	gl.BufferData(gl.ARRAY_BUFFER, maxBatch*int(stride), nil, gl.STREAM_DRAW)
	// aPos (vec2)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, stride, glOffset(0))
	// aRadius (float)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 1, gl.FLOAT, false, stride, glOffset(2*4))
	// aColor (vec4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, stride, glOffset(3*4))

	// Rect VAO/VBO: two triangles rewritten per fill.
	gl.GenVertexArrays(1, &s.rectVAO)
	gl.GenBuffers(1, &s.rectVBO)
	gl.BindVertexArray(s.rectVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.rectVBO)
	gl.BufferData(gl.ARRAY_BUFFER, 12*4, nil, gl.STREAM_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, glOffset(0))
	gl.BindVertexArray(0)

	s.circleURes = gl.GetUniformLocation(circleProg, gl.Str("uResolution\x00"))
	s.rectURes = gl.GetUniformLocation(rectProg, gl.Str("uResolution\x00"))
	s.rectUColor = gl.GetUniformLocation(rectProg, gl.Str("uColor\x00"))

	gl.GenFramebuffers(1, &s.fbo)
	gl.GenTextures(1, &s.tex)

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.Enable(gl.BLEND)
	s.SetComposite(fx.SourceOver)

	if code := gl.GetError(); code != gl.NO_ERROR {
		s.Destroy()
		return nil, fmt.Errorf("gl surface setup: error 0x%x", code)
	}
	return s, nil
}

func (s *Surface) Size() (int, int) { return s.w, s.h }

// Resize reallocates the offscreen target, clearing it.
func (s *Surface) Resize(w, h int) {
	if w == s.w && h == s.h {
		return
	}
	s.flush()
	s.w, s.h = w, h

	gl.BindTexture(gl.TEXTURE_2D, s.tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)

	gl.BindFramebuffer(gl.FRAMEBUFFER, s.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, s.tex, 0)
	gl.Viewport(0, 0, int32(w), int32(h))
	gl.ClearColor(0, 0, 0, 0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// SetComposite maps composite ops to premultiplied-alpha blend functions.
func (s *Surface) SetComposite(op fx.CompositeOp) {
	s.flush()
	switch op {
	case fx.DestinationOut:
		gl.BlendFunc(gl.ZERO, gl.ONE_MINUS_SRC_ALPHA)
	case fx.Lighter:
		gl.BlendFunc(gl.ONE, gl.ONE)
	default:
		gl.BlendFunc(gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	}
}

func (s *Surface) SetFill(f fx.Fill) {
	a := float32(f.Alpha)
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	s.fill = [4]float32{
		float32(f.Col.R) / 255 * a,
		float32(f.Col.G) / 255 * a,
		float32(f.Col.B) / 255 * a,
		a,
	}
}

func (s *Surface) FillRect(x, y, w, h float64) {
	s.flush()
	x0, y0 := float32(x), float32(y)
	x1, y1 := float32(x+w), float32(y+h)
	verts := [12]float32{
		x0, y0, x1, y0, x1, y1,
		x0, y0, x1, y1, x0, y1,
	}
	s.bindTarget()
	gl.UseProgram(s.rectProg)
	gl.Uniform2f(s.rectURes, float32(s.w), float32(s.h))
	gl.Uniform4f(s.rectUColor, s.fill[0], s.fill[1], s.fill[2], s.fill[3])
	gl.BindVertexArray(s.rectVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.rectVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(verts)*4, gl.Ptr(&verts[0]))
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

// FillCircle queues a disc; queued discs are drawn in one call on the next
// state change or Present.
func (s *Surface) FillCircle(cx, cy, r float64) {
	s.batch = append(s.batch,
		float32(cx), float32(cy), float32(r),
		s.fill[0], s.fill[1], s.fill[2], s.fill[3],
	)
	if len(s.batch) >= maxBatch*circleStride {
		s.flush()
	}
}

func (s *Surface) flush() {
	n := len(s.batch) / circleStride
	if n == 0 {
		return
	}
	s.bindTarget()
	gl.UseProgram(s.circleProg)
	gl.Uniform2f(s.circleURes, float32(s.w), float32(s.h))
	gl.BindVertexArray(s.circleVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.circleVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(s.batch)*4, gl.Ptr(&s.batch[0]))
	gl.DrawArrays(gl.POINTS, 0, int32(n))
	s.batch = s.batch[:0]
}

func (s *Surface) bindTarget() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, s.fbo)
	gl.Viewport(0, 0, int32(s.w), int32(s.h))
}

// Present copies the offscreen target to the window and swaps buffers.
func (s *Surface) Present() error {
	s.flush()
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, s.fbo)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(s.w), int32(s.h))
	gl.ClearColor(0, 0, 0, 0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	w, h := int32(s.w), int32(s.h)
	gl.BlitFramebuffer(0, 0, w, h, 0, 0, w, h, gl.COLOR_BUFFER_BIT, gl.NEAREST)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("gl error 0x%x", code)
	}
	s.win.SwapBuffers()
	s.pacer.Swapped()
	return nil
}

func (s *Surface) Destroy() {
	for _, id := range []uint32{s.circleVBO, s.rectVBO} {
		if id != 0 {
			gl.DeleteBuffers(1, &id)
		}
	}
	for _, id := range []uint32{s.circleVAO, s.rectVAO} {
		if id != 0 {
			gl.DeleteVertexArrays(1, &id)
		}
	}
	for _, id := range []uint32{s.circleProg, s.rectProg} {
		if id != 0 {
			gl.DeleteProgram(id)
		}
	}
	if s.tex != 0 {
		gl.DeleteTextures(1, &s.tex)
	}
	if s.fbo != 0 {
		gl.DeleteFramebuffers(1, &s.fbo)
	}
}
