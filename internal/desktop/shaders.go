//go:build !js

package desktop

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Circle vertex shader: one point sprite per particle, pixel coordinates
// with a top-left origin.
const circleVertSrc = `#version 410 core

layout(location = 0) in vec2 aPos;
layout(location = 1) in float aRadius;
layout(location = 2) in vec4 aColor;

uniform vec2 uResolution;

out vec4 vColor;
out float vRadius;
out float vSize;

void main() {
    vec2 ndc = (aPos / uResolution) * 2.0 - 1.0;
    ndc.y = -ndc.y;
    gl_Position = vec4(ndc, 0.0, 1.0);
    float size = ceil(aRadius * 2.0 + 2.0);
    gl_PointSize = size;
    vColor = aColor;
    vRadius = aRadius;
    vSize = size;
}
` + "\x00"

// Circle fragment shader: anti-aliased disc, premultiplied output.
const circleFragSrc = `#version 410 core

in vec4 vColor;
in float vRadius;
in float vSize;
out vec4 FragColor;

void main() {
    float dist = length(gl_PointCoord - vec2(0.5)) * vSize;
    float cov = clamp(vRadius + 0.5 - dist, 0.0, 1.0);
    if (cov <= 0.0) discard;
    FragColor = vColor * cov;
}
` + "\x00"

// Rect shaders: solid premultiplied fill in pixel coordinates.
const rectVertSrc = `#version 410 core

layout(location = 0) in vec2 aPos;

uniform vec2 uResolution;

void main() {
    vec2 ndc = (aPos / uResolution) * 2.0 - 1.0;
    ndc.y = -ndc.y;
    gl_Position = vec4(ndc, 0.0, 1.0);
}
` + "\x00"

const rectFragSrc = `#version 410 core

uniform vec4 uColor;
out vec4 FragColor;

void main() {
    FragColor = uColor;
}
` + "\x00"

// linkProgram compiles both stages and links them. The shader objects are
// released once the program holds them.
func linkProgram(vertSrc, fragSrc string) (uint32, error) {
	program := gl.CreateProgram()
	for _, st := range []struct {
		kind uint32
		src  string
	}{{gl.VERTEX_SHADER, vertSrc}, {gl.FRAGMENT_SHADER, fragSrc}} {
		sh := gl.CreateShader(st.kind)
		csrc, free := gl.Strs(st.src)
		gl.ShaderSource(sh, 1, csrc, nil)
		free()
		gl.CompileShader(sh)

		var ok int32
		gl.GetShaderiv(sh, gl.COMPILE_STATUS, &ok)
		if ok == gl.FALSE {
			msg := infoLog(func(n *int32) { gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, n) },
				func(n int32, buf *uint8) { gl.GetShaderInfoLog(sh, n, nil, buf) })
			gl.DeleteShader(sh)
			gl.DeleteProgram(program)
			return 0, fmt.Errorf("compile shader: %s", msg)
		}
		gl.AttachShader(program, sh)
		// Flagged for deletion; freed with the program.
		gl.DeleteShader(sh)
	}

	gl.LinkProgram(program)
	var ok int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &ok)
	if ok == gl.FALSE {
		msg := infoLog(func(n *int32) { gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, n) },
			func(n int32, buf *uint8) { gl.GetProgramInfoLog(program, n, nil, buf) })
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link program: %s", msg)
	}
	return program, nil
}

func infoLog(length func(*int32), read func(int32, *uint8)) string {
	var n int32
	length(&n)
	if n <= 0 {
		return "no info log"
	}
	buf := make([]uint8, n+1)
	read(n, &buf[0])
	return strings.TrimRight(string(buf), "\x00")
}
