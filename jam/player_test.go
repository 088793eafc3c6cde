package jam

import (
	"math"
	"testing"

	"github.com/wavetooth/sinepad"
	"github.com/wavetooth/sinepad/synth"
)

type fakeMIDIContext struct {
	events []MIDINoteEvent
	index  int
}

func (c *fakeMIDIContext) NextEvent(frame int) (event MIDINoteEvent, ok bool) {
	if c.index < len(c.events) {
		event, ok = c.events[c.index], true
		c.index++
	}
	return
}

func (c *fakeMIDIContext) FinishBlock(frame int) {}

func energy(buf sinepad.AudioBuffer) float64 {
	var sum float64
	for _, frame := range buf {
		sum += float64(frame[0])*float64(frame[0]) + float64(frame[1])*float64(frame[1])
	}
	return sum
}

func drainToModel(broker *Broker) (msgs []MsgToModel) {
	for {
		select {
		case msg := <-broker.ToModel:
			msgs = append(msgs, msg)
		default:
			return
		}
	}
}

func TestPlayerRendersNotes(t *testing.T) {
	broker := NewBroker()
	player := NewPlayer(broker, synth.Synther{})
	buf := make(sinepad.AudioBuffer, 4800)
	TrySend(broker.ToPlayer, any(&NoteEvent{On: true, Note: 69}))
	player.Process(buf, &fakeMIDIContext{})
	if energy(buf) == 0 {
		t.Fatal("expected audio after a note on event")
	}
	msgs := drainToModel(broker)
	if len(msgs) == 0 {
		t.Fatal("expected a status message to the model")
	}
	last := msgs[len(msgs)-1]
	if !last.HasPanicPosLevels || last.Panic {
		t.Fatalf("expected a non-panic status message, got %+v", last)
	}
	sounding := 0
	for _, l := range last.VoiceLevels {
		if l > 0 {
			sounding++
		}
	}
	if sounding != 1 {
		t.Fatalf("expected 1 sounding voice, got %d", sounding)
	}
}

func TestPlayerMIDIEventTiming(t *testing.T) {
	broker := NewBroker()
	player := NewPlayer(broker, synth.Synther{})
	context := &fakeMIDIContext{events: []MIDINoteEvent{
		{Frame: 2400, On: true, Note: 60},
	}}
	buf := make(sinepad.AudioBuffer, 4800)
	player.Process(buf, context)
	if e := energy(buf[:2400]); e != 0 {
		t.Errorf("expected silence before the event, got energy %v", e)
	}
	if e := energy(buf[2400:]); e == 0 {
		t.Error("expected audio after the event")
	}
}

func TestPlayerPanic(t *testing.T) {
	broker := NewBroker()
	player := NewPlayer(broker, synth.Synther{})
	TrySend(broker.ToPlayer, any(&NoteEvent{On: true, Note: 69}))
	TrySend(broker.ToPlayer, any(PanicMsg{true}))
	buf := make(sinepad.AudioBuffer, 4800)
	player.Process(buf, &fakeMIDIContext{})
	if e := energy(buf); e != 0 {
		t.Errorf("expected silence after panic, got energy %v", e)
	}
	msgs := drainToModel(broker)
	if len(msgs) == 0 || !msgs[len(msgs)-1].Panic {
		t.Error("expected the player to report panic")
	}
	TrySend(broker.ToPlayer, any(PanicMsg{false}))
	TrySend(broker.ToPlayer, any(&NoteEvent{On: true, Note: 69}))
	player.Process(buf, &fakeMIDIContext{})
	if energy(buf) == 0 {
		t.Error("expected audio after panic was released")
	}
}

func shortTestSequence() sinepad.Sequence {
	params := sinepad.DefaultParams()
	params.Frequency = sinepad.NoteToFreq(69)
	params.AttackTime = 0.01
	params.ReleaseTime = 0.1
	return sinepad.Sequence{Events: []sinepad.SequenceEvent{
		{Time: 0, Duration: 0.05, Params: params},
	}}
}

func TestPlayerSequencePlayback(t *testing.T) {
	broker := NewBroker()
	player := NewPlayer(broker, synth.Synther{})
	TrySend(broker.ToPlayer, any(StartSequenceMsg{shortTestSequence()}))
	buf := make(sinepad.AudioBuffer, 4800)
	player.Process(buf, &fakeMIDIContext{})
	if energy(buf) == 0 {
		t.Fatal("expected audio during sequence playback")
	}
	stopped := false
	for _, msg := range drainToModel(broker) {
		if m, ok := msg.Data.(PlayingSequenceMsg); ok && !m.bool {
			stopped = true
		}
	}
	if !stopped {
		t.Error("expected the player to report that the sequence finished")
	}
}

func TestPlayerRecording(t *testing.T) {
	broker := NewBroker()
	player := NewPlayer(broker, synth.Synther{})
	buf := make(sinepad.AudioBuffer, 4800)

	TrySend(broker.ToPlayer, any(RecordingMsg{true}))
	player.Process(buf, &fakeMIDIContext{}) // recording waits for the first note
	drainToModel(broker)

	context := &fakeMIDIContext{events: []MIDINoteEvent{
		{Frame: 0, On: true, Note: 60},
		{Frame: 2400, On: false, Note: 60},
	}}
	player.Process(buf, context)
	TrySend(broker.ToPlayer, any(RecordingMsg{false}))
	player.Process(buf, &fakeMIDIContext{})

	var recording *Recording
	for _, msg := range drainToModel(broker) {
		if r, ok := msg.Data.(Recording); ok {
			recording = &r
		}
	}
	if recording == nil {
		t.Fatal("expected a finished recording")
	}
	seq := recording.ToSequence(sinepad.DefaultParams())
	if len(seq.Events) != 1 {
		t.Fatalf("expected 1 recorded note, got %d", len(seq.Events))
	}
	e := seq.Events[0]
	if math.Abs(e.Duration-0.05) > 1e-6 {
		t.Errorf("expected duration 0.05, got %v", e.Duration)
	}
	wantFreq := sinepad.NoteToFreq(60)
	if e.Params.Frequency != wantFreq {
		t.Errorf("expected frequency %v, got %v", wantFreq, e.Params.Frequency)
	}
}
