package jam

type (
	// Keyboard is used to associate the keys of a keyboard (e.g. computer or
	// a MIDI keyboard) to currently playing notes. You can use any type T to
	// identify each key; T should be a comparable type.
	Keyboard[T comparable] struct {
		broker  *Broker
		pressed map[T]NoteEvent
	}
)

func MakeKeyboard[T comparable](broker *Broker) Keyboard[T] {
	return Keyboard[T]{
		broker:  broker,
		pressed: make(map[T]NoteEvent),
	}
}

func (t *Keyboard[T]) Press(key T, ev NoteEvent) {
	if _, ok := t.pressed[key]; ok {
		return // already playing a note with this key, do not send a new event
	}
	ev.Source = t
	ev.On = true
	ev.Timestamp = Now()
	if TrySend(t.broker.ToPlayer, any(&ev)) {
		t.pressed[key] = ev
	}
}

func (t *Keyboard[T]) Release(key T) {
	if ev, ok := t.pressed[key]; ok {
		ev.Timestamp = Now()
		ev.On = false // the pressed contains the event we need to send to release the note
		TrySend(t.broker.ToPlayer, any(&ev))
		delete(t.pressed, key)
	}
}

func (t *Keyboard[T]) ReleaseAll() {
	for key := range t.pressed {
		t.Release(key)
	}
}

// keyNoteOffsets maps key names to semitone offsets from the C of the
// current octave. Two rows: Z is the C of the octave, Q the C one octave up,
// with the number and home rows as the black keys.
var keyNoteOffsets = map[string]int{
	"Z": 0, "S": 1, "X": 2, "D": 3, "C": 4, "V": 5, "G": 6,
	"B": 7, "H": 8, "N": 9, "J": 10, "M": 11,
	"Q": 12, "2": 13, "W": 14, "3": 15, "E": 16, "R": 17, "5": 18,
	"T": 19, "6": 20, "Y": 21, "7": 22, "U": 23,
}

// KeyNote returns the MIDI note a key name plays in the given octave, with
// ok false when the key is not part of the playing layout or the note falls
// outside the MIDI range.
func KeyNote(name string, octave int) (note byte, ok bool) {
	offset, ok := keyNoteOffsets[name]
	if !ok {
		return 0, false
	}
	n := 12*(octave+1) + offset
	if n < 0 || n > 127 {
		return 0, false
	}
	return byte(n), true
}
