package jam

import (
	"fmt"

	"github.com/wavetooth/sinepad"
)

type (
	// Model is the GUI side of the jam app. It is not thread safe; only one
	// goroutine should be accessing it at a time, usually the GUI event loop.
	// It communicates with the player through the broker, never calling the
	// synth directly.
	Model struct {
		params    sinepad.Params
		octaveNum int
		echo      bool
		panicked  bool
		playing   bool
		recording bool

		seq       sinepad.Sequence
		filePath  string
		playFrame int

		voiceLevels    [sinepad.MaxVoices]float32
		detectorResult DetectorResult

		alerts  []Alert
		dialog  Dialog
		quitted bool

		presets []sinepad.Preset

		broker  *Broker
		synther sinepad.Synther
		midi    MIDIContext
	}

	// Dialog is the modal dialog currently open in the GUI, if any.
	Dialog int
)

const (
	NoDialog Dialog = iota
	LoadSequenceExplorer
	SaveSequenceExplorer
	ExportWavExplorer
)

func NewModel(broker *Broker, synther sinepad.Synther, midi MIDIContext) *Model {
	m := &Model{
		params:    sinepad.DefaultParams(),
		octaveNum: 4,
		broker:    broker,
		synther:   synther,
		midi:      midi,
		presets:   loadPresets(),
	}
	return m
}

// ProcessMsg handles one message from the player or the detector.
func (m *Model) ProcessMsg(msg MsgToModel) {
	if msg.HasPanicPosLevels {
		m.panicked = msg.Panic
		m.playFrame = msg.PlayFrame
		m.voiceLevels = msg.VoiceLevels
	}
	if msg.HasDetectorResult {
		m.detectorResult = msg.DetectorResult
	}
	switch e := msg.Data.(type) {
	case Recording:
		m.seq = e.ToSequence(m.params)
		m.filePath = ""
		m.Alerts().Add(fmt.Sprintf("Recorded %d notes", len(m.seq.Events)), Info)
	case PlayingSequenceMsg:
		m.playing = e.bool
	case Alert:
		m.addAlert(e)
	case func():
		e()
	}
}

func (m *Model) Broker() *Broker           { return m.broker }
func (m *Model) MIDI() MIDIContext         { return m.midi }
func (m *Model) Dialog() Dialog            { return m.dialog }
func (m *Model) Quitted() bool             { return m.quitted }
func (m *Model) FilePath() string          { return m.filePath }
func (m *Model) PlayPosition() float64     { return float64(m.playFrame) / sinepad.SampleRate }
func (m *Model) SequenceLen() int          { return len(m.seq.Events) }
func (m *Model) SequenceDuration() float64 { return m.seq.Duration() }

// VoiceLevels returns the envelope follower levels of the synth voices, for
// the voice activity lights.
func (m *Model) VoiceLevels() [sinepad.MaxVoices]float32 { return m.voiceLevels }

func (m *Model) DetectorResult() DetectorResult { return m.detectorResult }

func (m *Model) setParams(params sinepad.Params) {
	params.Clamp()
	m.params = params
	m.sendParams()
}

func (m *Model) sendParams() {
	TrySend(m.broker.ToPlayer, any(ParamsMsg{m.params}))
}
