package synth

import "math"

// follower is a one-pole envelope follower smoothing the absolute value of
// the voice output. Its decayed value gates voice reuse and drives the GUI
// voice lights.
type follower struct {
	value float32
	alpha float32
}

// followerTimeConstant is the smoothing time constant in seconds.
const followerTimeConstant = 0.02

func (f *follower) init(sampleRate int) {
	f.alpha = 1 - float32(math.Exp(-1/(followerTimeConstant*float64(sampleRate))))
}

func (f *follower) next(sample float32) float32 {
	if sample < 0 {
		sample = -sample
	}
	f.value += f.alpha * (sample - f.value)
	return f.value
}
