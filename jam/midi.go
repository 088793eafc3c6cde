package jam

type (
	// MIDIContext gives access to the MIDI input devices of the system. The
	// opened device sends its note events straight to the player, so MIDI
	// notes do not go through the model.
	MIDIContext interface {
		InputDevices() []string
		Open(name string) error
		HasDeviceOpen() bool
		Close()
	}

	NullMIDIContext struct{}
)

func (NullMIDIContext) InputDevices() []string { return nil }
func (NullMIDIContext) Open(name string) error { return nil }
func (NullMIDIContext) HasDeviceOpen() bool    { return false }
func (NullMIDIContext) Close()                 {}
