// Package synth implements the sine+envelope voice pool in pure Go.
package synth

import (
	"errors"
	"math"

	"github.com/wavetooth/sinepad"
)

// freeLevel is the follower level below which a voice with a finished
// envelope counts as free.
const freeLevel = 1e-3

type (
	// Synther implements sinepad.Synther.
	Synther struct{}

	Synth struct {
		voices     [sinepad.MaxVoices]voice
		echo       echo
		sampleRate int
	}

	voice struct {
		osc       oscillator
		env       envelope
		fol       follower
		params    sinepad.Params
		panL      float32
		panR      float32
		note      byte
		sustained bool
		// samplesSinceEvent is the age used for voice stealing
		samplesSinceEvent int
	}
)

func (s Synther) Synth(sampleRate int) sinepad.Synth {
	ret := &Synth{sampleRate: sampleRate}
	for i := range ret.voices {
		ret.voices[i].env.sampleRate = sampleRate
		ret.voices[i].fol.init(sampleRate)
	}
	ret.echo.init(sampleRate)
	return ret
}

func (s *Synth) Render(buffer sinepad.AudioBuffer) error {
	if s.sampleRate <= 0 {
		return errors.New("synth has invalid sample rate")
	}
	for i := range buffer {
		var frame [2]float32
		for v := range s.voices {
			s.voices[v].render(&frame)
		}
		s.echo.process(&frame)
		buffer[i] = frame
	}
	return nil
}

func (v *voice) render(frame *[2]float32) {
	v.samplesSinceEvent++
	if v.free() {
		return
	}
	sample := v.osc.next() * v.env.next() * v.params.Amplitude
	v.fol.next(sample)
	frame[0] += sample * v.panL
	frame[1] += sample * v.panR
}

// free is the two-part condition for reusing a voice: the envelope has run
// to completion and the follower has decayed to silence.
func (v *voice) free() bool {
	return v.env.done() && v.fol.value < freeLevel
}

func (s *Synth) Trigger(note byte, params sinepad.Params) {
	var oldestVoice int
	for i := range s.voices {
		// find a free voice, or failing that, steal the oldest, preferring
		// released voices over sustained ones
		v := &s.voices[i]
		if v.free() {
			oldestVoice = i
			break
		}
		o := &s.voices[oldestVoice]
		if (!v.sustained && o.sustained) ||
			(v.sustained == o.sustained && v.samplesSinceEvent > o.samplesSinceEvent) {
			oldestVoice = i
		}
	}
	v := &s.voices[oldestVoice]
	v.params = params
	v.note = note
	v.sustained = true
	v.samplesSinceEvent = 0
	v.osc.reset()
	v.osc.setFreq(params.Frequency, s.sampleRate)
	v.env.trigger(params.AttackTime)
	v.setPan(params.Pan)
}

func (s *Synth) Release(note byte) {
	for i := range s.voices {
		v := &s.voices[i]
		if v.sustained && v.note == note {
			v.sustained = false
			v.samplesSinceEvent = 0
			v.env.release(v.params.ReleaseTime)
		}
	}
}

func (s *Synth) ReleaseAll() {
	for i := range s.voices {
		v := &s.voices[i]
		if v.sustained {
			v.sustained = false
			v.samplesSinceEvent = 0
			v.env.release(v.params.ReleaseTime)
		}
	}
}

// Update applies pan and amplitude changes to sounding voices. Pitch and
// envelope times only affect voices triggered afterwards.
func (s *Synth) Update(params sinepad.Params) {
	for i := range s.voices {
		v := &s.voices[i]
		if v.free() {
			continue
		}
		v.params.Amplitude = params.Amplitude
		v.params.Pan = params.Pan
		v.setPan(params.Pan)
	}
}

func (s *Synth) SetEcho(on bool) {
	s.echo.enabled = on
}

func (s *Synth) VoiceLevels(buf []float32) int {
	n := len(s.voices)
	if n > len(buf) {
		n = len(buf)
	}
	for i := 0; i < n; i++ {
		buf[i] = s.voices[i].fol.value
	}
	return n
}

// setPan sets the equal power panning gains for pan position p in [-1,1].
func (v *voice) setPan(p float32) {
	angle := float64(p+1) * math.Pi / 4
	v.panL = float32(math.Cos(angle))
	v.panR = float32(math.Sin(angle))
}
