package synth

import "math"

// oscillator is a sine oscillator with a phase accumulator in [0,1).
type oscillator struct {
	phase float32
	delta float32
}

func (o *oscillator) setFreq(freq float32, sampleRate int) {
	o.delta = freq / float32(sampleRate)
}

func (o *oscillator) reset() {
	o.phase = 0
}

func (o *oscillator) next() float32 {
	v := float32(math.Sin(2 * math.Pi * float64(o.phase)))
	o.phase += o.delta
	if o.phase >= 1 {
		o.phase -= 1
	}
	return v
}
