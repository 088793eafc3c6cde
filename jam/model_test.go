package jam

import (
	"testing"
	"time"

	"github.com/wavetooth/sinepad"
	"github.com/wavetooth/sinepad/synth"
)

func newTestModel() *Model {
	return NewModel(NewBroker(), synth.Synther{}, NullMIDIContext{})
}

func drainToPlayer(broker *Broker) (msgs []any) {
	for {
		select {
		case msg := <-broker.ToPlayer:
			msgs = append(msgs, msg)
		default:
			return
		}
	}
}

func TestParameterSetSendsParams(t *testing.T) {
	m := newTestModel()
	p := m.Param(1) // frequency
	p.SetValue(440)
	if got := p.Value(); got != 440 {
		t.Errorf("expected value 440, got %v", got)
	}
	msgs := drainToPlayer(m.broker)
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message to the player, got %d", len(msgs))
	}
	pm, ok := msgs[0].(ParamsMsg)
	if !ok {
		t.Fatalf("expected ParamsMsg, got %T", msgs[0])
	}
	if pm.Params.Frequency != 440 {
		t.Errorf("expected frequency 440, got %v", pm.Params.Frequency)
	}
	p.SetValue(440) // no change, no message
	if msgs := drainToPlayer(m.broker); len(msgs) != 0 {
		t.Errorf("expected no message when the value does not change, got %d", len(msgs))
	}
}

func TestParameterClampsToRange(t *testing.T) {
	m := newTestModel()
	p := m.Param(1)
	p.SetValue(99999)
	if got := p.Value(); got != 5000 {
		t.Errorf("expected value clamped to 5000, got %v", got)
	}
	p.SetNormalized(-1)
	if got := p.Value(); got != 20 {
		t.Errorf("expected value clamped to 20, got %v", got)
	}
}

func TestOctaveRange(t *testing.T) {
	m := newTestModel()
	if got := m.Octave().Value(); got != 4 {
		t.Fatalf("expected default octave 4, got %v", got)
	}
	m.Octave().Add(100)
	if got := m.Octave().Value(); got != 9 {
		t.Errorf("expected octave clamped to 9, got %v", got)
	}
	m.Octave().SetValue(-3)
	if got := m.Octave().Value(); got != 0 {
		t.Errorf("expected octave clamped to 0, got %v", got)
	}
}

func TestEchoToggleSendsEchoMsg(t *testing.T) {
	m := newTestModel()
	m.Echo().Toggle()
	if !m.Echo().Value() {
		t.Fatal("expected echo on after toggle")
	}
	msgs := drainToPlayer(m.broker)
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message to the player, got %d", len(msgs))
	}
	if em, ok := msgs[0].(EchoMsg); !ok || !em.bool {
		t.Errorf("expected EchoMsg{true}, got %+v", msgs[0])
	}
}

func TestPlayingRequiresSequence(t *testing.T) {
	m := newTestModel()
	m.Playing().SetValue(true)
	if m.Playing().Value() {
		t.Error("expected playing to stay off with no sequence loaded")
	}
	if msgs := drainToPlayer(m.broker); len(msgs) != 0 {
		t.Errorf("expected no messages to the player, got %d", len(msgs))
	}
	m.seq = shortTestSequence()
	m.Playing().SetValue(true)
	if !m.Playing().Value() {
		t.Error("expected playing on with a sequence loaded")
	}
	msgs := drainToPlayer(m.broker)
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message to the player, got %d", len(msgs))
	}
	if _, ok := msgs[0].(StartSequenceMsg); !ok {
		t.Errorf("expected StartSequenceMsg, got %T", msgs[0])
	}
}

func TestProcessMsgRecording(t *testing.T) {
	m := newTestModel()
	recording := Recording{
		Events: []MIDINoteEvent{
			{Frame: 0, On: true, Note: 69},
			{Frame: 48000, On: false, Note: 69},
		},
		TotalFrames: 48000,
	}
	m.ProcessMsg(MsgToModel{Data: recording})
	if m.SequenceLen() != 1 {
		t.Fatalf("expected 1 event in the sequence, got %d", m.SequenceLen())
	}
	if m.Alerts().Count() == 0 {
		t.Error("expected an alert about the recording")
	}
}

func TestSelectPreset(t *testing.T) {
	m := newTestModel()
	if m.PresetCount() == 0 {
		t.Fatal("expected built-in presets")
	}
	m.SelectPreset(0).Do()
	if def := sinepad.DefaultParams(); m.params != def {
		t.Errorf("expected the first preset to be the defaults, got %+v", m.params)
	}
	msgs := drainToPlayer(m.broker)
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message to the player, got %d", len(msgs))
	}
	m.SelectPreset(m.PresetCount()).Do() // out of range, no-op
	if msgs := drainToPlayer(m.broker); len(msgs) != 0 {
		t.Errorf("expected no messages for an out of range preset, got %d", len(msgs))
	}
}

func TestPresetName(t *testing.T) {
	m := newTestModel()
	if got := m.PresetName(0); got != "Default" {
		t.Errorf("expected the first preset to be named Default, got %q", got)
	}
	if got := m.PresetName(-1); got != "" {
		t.Errorf("expected an empty name for a negative index, got %q", got)
	}
	if got := m.PresetName(m.PresetCount()); got != "" {
		t.Errorf("expected an empty name past the end, got %q", got)
	}
}

func TestSaveUserPreset(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	m := newTestModel()
	if m.SaveUserPreset("").Enabled() {
		t.Error("expected saving a nameless preset to be disabled")
	}
	count := m.PresetCount()
	m.Param(1).SetValue(440)
	m.SaveUserPreset("My Patch").Do()
	if m.PresetCount() != count+1 {
		t.Fatalf("expected %d presets after saving, got %d", count+1, m.PresetCount())
	}
	if got := m.PresetName(count); got != "My Patch" {
		t.Errorf("expected the saved preset to be named My Patch, got %q", got)
	}
	// the saved preset comes back in a fresh model
	m2 := newTestModel()
	if m2.PresetCount() != count+1 || m2.PresetName(count) != "My Patch" {
		t.Fatalf("expected the saved preset to be loaded back, got %d presets", m2.PresetCount())
	}
	m2.SelectPreset(count).Do()
	if got := m2.Param(1).Value(); got != 440 {
		t.Errorf("expected the saved preset to recall frequency 440, got %v", got)
	}
}

func TestSaveActionsRequireSequence(t *testing.T) {
	m := newTestModel()
	if m.SaveSequence().Enabled() || m.ExportWav().Enabled() {
		t.Error("expected save and export to be disabled with no sequence")
	}
	m.seq = shortTestSequence()
	if !m.SaveSequence().Enabled() || !m.ExportWav().Enabled() {
		t.Error("expected save and export to be enabled with a sequence")
	}
	m.SaveSequence().Do()
	if m.Dialog() != SaveSequenceExplorer {
		t.Errorf("expected save dialog, got %v", m.Dialog())
	}
	m.Cancel().Do()
	if m.Dialog() != NoDialog {
		t.Errorf("expected no dialog after cancel, got %v", m.Dialog())
	}
}

func TestAlertsFadeAndExpire(t *testing.T) {
	m := newTestModel()
	m.Alerts().Add("hello", Info)
	if m.Alerts().Count() != 1 {
		t.Fatalf("expected 1 alert, got %d", m.Alerts().Count())
	}
	if !m.Alerts().Update(100 * time.Millisecond) {
		t.Error("expected the alert to be animating while fading in")
	}
	if got := m.Alerts().Item(0).FadeLevel; got <= 0 {
		t.Errorf("expected fade level to rise, got %v", got)
	}
	m.Alerts().Update(defaultAlertDuration) // use up the remaining duration
	for i := 0; i < 100 && m.Alerts().Count() > 0; i++ {
		m.Alerts().Update(100 * time.Millisecond)
	}
	if m.Alerts().Count() != 0 {
		t.Error("expected the alert to expire")
	}
}

func TestNamedAlertsReplace(t *testing.T) {
	m := newTestModel()
	m.Alerts().AddNamed("X", "first", Info)
	m.Alerts().AddNamed("X", "second", Warning)
	if m.Alerts().Count() != 1 {
		t.Fatalf("expected 1 alert, got %d", m.Alerts().Count())
	}
	if got := m.Alerts().Item(0).Message; got != "second" {
		t.Errorf("expected the alert to be replaced, got %q", got)
	}
}
