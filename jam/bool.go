package jam

type (
	// Bool is a view to a boolean value in the model, usually tied to a
	// toggle button or a checkbox in the GUI. Changing the value via the view
	// takes care of notifying the player.
	Bool struct {
		BoolData
	}

	BoolData interface {
		Value() bool
		setValue(bool)
	}
)

func MakeBool(data BoolData) Bool { return Bool{data} }

func (v Bool) Toggle() { v.SetValue(!v.Value()) }

func (v Bool) SetValue(value bool) {
	if v.BoolData == nil || value == v.Value() {
		return
	}
	v.setValue(value)
}

func (v Bool) Value() bool {
	if v.BoolData == nil {
		return false
	}
	return v.BoolData.Value()
}

// Model methods to create the Bool views

func (m *Model) Panic() Bool     { return MakeBool((*panicState)(m)) }
func (m *Model) Echo() Bool      { return MakeBool((*echoState)(m)) }
func (m *Model) Playing() Bool   { return MakeBool((*playingState)(m)) }
func (m *Model) Recording() Bool { return MakeBool((*recordingState)(m)) }

// panicState

type panicState Model

func (m *panicState) Value() bool { return m.panicked }
func (m *panicState) setValue(val bool) {
	m.panicked = val
	TrySend(m.broker.ToPlayer, any(PanicMsg{val}))
}

// echoState

type echoState Model

func (m *echoState) Value() bool { return m.echo }
func (m *echoState) setValue(val bool) {
	m.echo = val
	TrySend(m.broker.ToPlayer, any(EchoMsg{val}))
}

// playingState

type playingState Model

func (m *playingState) Value() bool { return m.playing }
func (m *playingState) setValue(val bool) {
	m.playing = val
	if val {
		if len(m.seq.Events) == 0 {
			m.playing = false
			return
		}
		m.playFrame = 0
		TrySend(m.broker.ToPlayer, any(StartSequenceMsg{m.seq}))
	} else {
		TrySend(m.broker.ToPlayer, any(PlayingSequenceMsg{false}))
	}
}

// recordingState

type recordingState Model

func (m *recordingState) Value() bool { return m.recording }
func (m *recordingState) setValue(val bool) {
	m.recording = val
	TrySend(m.broker.ToPlayer, any(RecordingMsg{val}))
}
