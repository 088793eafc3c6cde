package jam

import "time"

type (
	// NoteEvent is a note on/off event from the keyboard or a MIDI device.
	// The Timestamp is in frames, in the same clock as Now(), and is used to
	// spread events within an audio block; keyboard events use Timestamp 0,
	// which means "as soon as possible". Source identifies who triggered the
	// note so that the matching release can be found.
	NoteEvent struct {
		Timestamp int64
		On        bool
		Note      byte
		Source    any
	}
)

// Now returns the current time in the NoteEvent timestamp clock.
func Now() int64 {
	return time.Now().UnixMilli() * 48
}
