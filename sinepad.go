// Package sinepad is a small polyphonic sine synthesizer meant for jamming
// with the computer keyboard or a MIDI keyboard. This root package has the
// domain types only; the DSP lives in synth, the realtime plumbing in jam and
// the audio output in oto.
package sinepad

import (
	"fmt"
	"io"
	"math"
)

// SampleRate is the only sample rate the engine runs at.
const SampleRate = 48000

// MaxVoices is the size of the voice pool.
const MaxVoices = 32

type (
	// AudioBuffer is a buffer of stereo audio samples of the form
	// [[left1,right1],[left2,right2],...]
	AudioBuffer [][2]float32

	// AudioContext represents the platform audio drivers. Play starts
	// playing, pulling audio from the callback until the returned
	// CloserWaiter is closed.
	AudioContext interface {
		Play(callback func(buf AudioBuffer) error) CloserWaiter
		Close() error
	}

	// CloserWaiter is the handle for ongoing playback: Close stops it, Wait
	// blocks until it stops on its own.
	CloserWaiter interface {
		io.Closer
		Wait()
	}

	// Synth renders a pool of voices into stereo buffers. All calls happen
	// from the audio goroutine.
	Synth interface {
		// Render fills the whole buffer with audio
		Render(buffer AudioBuffer) error
		// Trigger starts a voice with its parameters copied from params. The
		// voice takes its pitch from params.Frequency; note is only the
		// identity that a later Release call matches against.
		Trigger(note byte, params Params)
		// Release lets go of all sustaining voices playing the note
		Release(note byte)
		// ReleaseAll lets go of every sustaining voice
		ReleaseAll()
		// Update changes the parameters of all future and, where the
		// parameter allows it, currently sounding voices
		Update(params Params)
		// SetEcho toggles the echo effect on the stereo mix
		SetEcho(on bool)
		// VoiceLevels copies the envelope follower value of each voice into
		// buf and returns the number of values copied
		VoiceLevels(buf []float32) int
	}

	// Synther compiles Synths; the extra layer exists so that the player can
	// be handed something that constructs a synth at the right sample rate.
	Synther interface {
		Synth(sampleRate int) Synth
	}
)

// Fill fills the AudioBuffer using a Synth, and returns an error if the
// synth errored.
func (buffer AudioBuffer) Fill(synth Synth) error {
	if err := synth.Render(buffer); err != nil {
		return fmt.Errorf("synth.Render failed: %w", err)
	}
	return nil
}

// Source returns an AudioBuffer playback callback that consumes the buffer
// and then returns io.EOF, for playing back a fully rendered buffer.
func (buffer AudioBuffer) Source() func(buf AudioBuffer) error {
	remaining := buffer
	return func(buf AudioBuffer) error {
		n := copy(buf, remaining)
		remaining = remaining[n:]
		for i := n; i < len(buf); i++ {
			buf[i] = [2]float32{}
		}
		if len(remaining) == 0 && n == 0 {
			return io.EOF
		}
		return nil
	}
}

// NoteToFreq returns the frequency in Hz of a MIDI note, in the 432 Hz
// tuning: 2**((note-69)/12) * 432.
func NoteToFreq(note byte) float32 {
	return float32(math.Exp2(float64(int(note)-69)/12) * 432)
}

// FreqToNote returns the MIDI note nearest to a frequency in the 432 Hz
// tuning.
func FreqToNote(freq float32) byte {
	n := math.Round(69 + 12*math.Log2(float64(freq)/432))
	if n < 0 {
		n = 0
	}
	if n > 127 {
		n = 127
	}
	return byte(n)
}

var notes = []string{"C-", "C#", "D-", "D#", "E-", "F-", "F#", "G-", "G#", "A-", "A#", "B-"}

// NoteAsString returns a tracker style string representation of a MIDI note
// e.g. "A-4" for note 69.
func NoteAsString(note byte) string {
	return fmt.Sprintf("%s%d", notes[note%12], note/12-1)
}
