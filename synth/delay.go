package synth

import "math"

const (
	echoMaxDelaySeconds = 0.2
	echoGain            = 0.8
	echoDampHz          = 2000
)

// echo is a feedback delay on the stereo mix, with a one-pole lowpass
// damping the loop and a DC blocking filter keeping offsets from
// accumulating.
type echo struct {
	enabled     bool
	buf         [][2]float32
	pos         int
	damp        [2]float32
	dampCoef    float32
	dcIn, dcOut [2]float32
}

func (e *echo) init(sampleRate int) {
	e.buf = make([][2]float32, int(echoMaxDelaySeconds*float32(sampleRate)))
	e.dampCoef = 1 - float32(math.Exp(-2*math.Pi*echoDampHz/float64(sampleRate)))
}

// process adds the echo to a stereo frame in place. The delay line keeps
// running even when the echo is disabled so that toggling it back on does
// not click.
func (e *echo) process(frame *[2]float32) {
	read := e.buf[e.pos]
	var wet [2]float32
	for c := 0; c < 2; c++ {
		e.damp[c] += e.dampCoef * (read[c] - e.damp[c])
		w := e.damp[c] * echoGain
		y := w - e.dcIn[c] + 0.99*e.dcOut[c]
		e.dcIn[c] = w
		e.dcOut[c] = y
		wet[c] = y
	}
	e.buf[e.pos] = [2]float32{frame[0] + wet[0], frame[1] + wet[1]}
	e.pos++
	if e.pos >= len(e.buf) {
		e.pos = 0
	}
	if e.enabled {
		frame[0] += wet[0]
		frame[1] += wet[1]
	}
}
