package jam

import (
	"fmt"

	"github.com/wavetooth/sinepad"
)

type (
	// Action describes a user action that can be performed on the model,
	// initiated by calling the Do() method, usually from a button press or a
	// key binding. Action advertises whether it is enabled, so the UI can
	// gray out buttons when the underlying action is not allowed. The
	// underlying Doer can optionally implement the Enabler interface; if it
	// does not, the action is always allowed.
	Action struct {
		doer Doer
	}

	Doer interface {
		Do()
	}

	Enabler interface {
		Enabled() bool
	}
)

func MakeAction(doer Doer) Action {
	return Action{doer: doer}
}

func (a Action) Do() {
	e, ok := a.doer.(Enabler)
	if ok && !e.Enabled() {
		return
	}
	if a.doer != nil {
		a.doer.Do()
	}
}

func (a Action) Enabled() bool {
	if a.doer == nil {
		return false
	}
	e, ok := a.doer.(Enabler)
	if !ok {
		return true
	}
	return e.Enabled()
}

// loadSequence
type loadSequence Model

func (m *Model) LoadSequence() Action { return MakeAction((*loadSequence)(m)) }
func (m *loadSequence) Do()           { m.dialog = LoadSequenceExplorer }

// saveSequence
type saveSequence Model

func (m *Model) SaveSequence() Action { return MakeAction((*saveSequence)(m)) }
func (m *saveSequence) Enabled() bool { return len(m.seq.Events) > 0 }
func (m *saveSequence) Do()           { m.dialog = SaveSequenceExplorer }

// exportWav
type exportWav Model

func (m *Model) ExportWav() Action { return MakeAction((*exportWav)(m)) }
func (m *exportWav) Enabled() bool { return len(m.seq.Events) > 0 }
func (m *exportWav) Do()           { m.dialog = ExportWavExplorer }

// cancel
type cancel Model

func (m *Model) Cancel() Action { return MakeAction((*cancel)(m)) }
func (m *cancel) Do()           { m.dialog = NoDialog }

// requestQuit
type requestQuit Model

func (m *Model) RequestQuit() Action { return MakeAction((*requestQuit)(m)) }
func (m *requestQuit) Do()           { m.quitted = true }

// resetParams
type resetParams Model

func (m *Model) ResetParams() Action { return MakeAction((*resetParams)(m)) }
func (m *resetParams) Do()           { (*Model)(m).setParams(sinepad.DefaultParams()) }

// selectMidiInput
type selectMidiInput struct {
	Item string
	*Model
}

func (m *Model) SelectMidiInput(item string) Action {
	return MakeAction(selectMidiInput{Item: item, Model: m})
}
func (s selectMidiInput) Do() {
	m := s.Model
	if err := m.midi.Open(s.Item); err == nil {
		m.Alerts().Add(fmt.Sprintf("Opened MIDI device: %s", s.Item), Info)
	} else {
		m.Alerts().Add(fmt.Sprintf("Could not open MIDI device: %s", s.Item), Error)
	}
}
