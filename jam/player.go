package jam

import (
	"fmt"
	"sort"

	"github.com/wavetooth/sinepad"
)

type (
	// Player is the audio side of the jam app, run in the audio thread. It
	// owns the synth and is controlled by messages from the model and by
	// MIDI events via the context. All its sends to the model are
	// non-blocking so the audio thread can never deadlock.
	Player struct {
		synth       sinepad.Synth
		params      sinepad.Params
		echo        bool
		voiceLevels [sinepad.MaxVoices]float32

		playing  bool // is a sequence playing
		seq      []timedNote
		seqIndex int
		seqFrame int

		recState  recState
		recording Recording

		synther sinepad.Synther
		broker  *Broker
	}

	// PlayerProcessContext tells the player which MIDI events happen during
	// the current buffer. Frames are relative to the buffer start.
	PlayerProcessContext interface {
		NextEvent(frame int) (event MIDINoteEvent, ok bool)
		FinishBlock(frame int)
	}

	// MIDINoteEvent is a MIDI event triggering or releasing a note. In
	// processing, the Frame is relative to the start of the current buffer.
	// In a Recording, the Frame is relative to the start of the recording.
	MIDINoteEvent struct {
		Frame int
		On    bool
		Note  byte
	}

	timedNote struct {
		frame  int
		on     bool
		note   byte
		params sinepad.Params
	}

	recState int

	// messages the model sends to the player
	PanicMsg           struct{ bool }
	ParamsMsg          struct{ sinepad.Params }
	EchoMsg            struct{ bool }
	RecordingMsg       struct{ bool }
	StartSequenceMsg   struct{ sinepad.Sequence }
	PlayingSequenceMsg struct{ bool }
)

const (
	recStateNone recState = iota
	recStateWaitingForNote
	recStateRecording
)

func NewPlayer(broker *Broker, synther sinepad.Synther) *Player {
	p := &Player{
		broker:  broker,
		synther: synther,
		params:  sinepad.DefaultParams(),
	}
	p.makeSynth()
	return p
}

// Process renders audio to the given buffer, handling MIDI events, sequence
// playback and model messages at their exact frames.
func (p *Player) Process(buffer sinepad.AudioBuffer, context PlayerProcessContext) {
	p.processMessages()

	frame := 0
	midi, midiOk := context.NextEvent(frame)

	if p.recState == recStateRecording {
		p.recording.TotalFrames += len(buffer)
	}

	for len(buffer) > 0 {
		for midiOk && frame >= midi.Frame {
			p.recordEvent(midi.On, midi.Note, len(buffer))
			p.handleNote(midi.On, midi.Note)
			midi, midiOk = context.NextEvent(frame)
		}
		for p.playing && p.seqIndex < len(p.seq) && p.seqFrame >= p.seq[p.seqIndex].frame {
			n := p.seq[p.seqIndex]
			p.seqIndex++
			if p.synth != nil {
				if n.on {
					p.synth.Trigger(n.note, n.params)
				} else {
					p.synth.Release(n.note)
				}
			}
		}
		if p.playing && p.seqIndex >= len(p.seq) {
			p.playing = false
			p.send(PlayingSequenceMsg{false})
		}
		rendered := len(buffer)
		if midiOk && midi.Frame-frame < rendered {
			rendered = midi.Frame - frame
		}
		if p.playing && p.seqIndex < len(p.seq) {
			if until := p.seq[p.seqIndex].frame - p.seqFrame; until < rendered {
				rendered = until
			}
		}
		if rendered <= 0 {
			rendered = 1 // always make progress, events cannot be more sample accurate than this
		}
		if p.synth != nil {
			if err := p.synth.Render(buffer[:rendered]); err != nil {
				p.synth = nil
				p.send(Alert{Name: "PlayerCrash", Message: fmt.Sprintf("synth.Render: %v", err), Priority: Error})
			}
		} else {
			for i := 0; i < rendered; i++ {
				buffer[i] = [2]float32{}
			}
		}
		p.shipToDetector(buffer[:rendered])
		buffer = buffer[rendered:]
		frame += rendered
		if p.playing {
			p.seqFrame += rendered
		}
	}
	if p.synth != nil {
		p.synth.VoiceLevels(p.voiceLevels[:])
	} else {
		p.voiceLevels = [sinepad.MaxVoices]float32{}
	}
	p.send(nil)
	context.FinishBlock(frame)
}

// NullPlayerProcessContext is the context to use when there is no MIDI
// device.
type NullPlayerProcessContext struct{}

func (NullPlayerProcessContext) NextEvent(frame int) (event MIDINoteEvent, ok bool) { return }
func (NullPlayerProcessContext) FinishBlock(frame int)                              {}

// shipToDetector borrows a pooled buffer and sends a copy of the rendered
// audio to the detector goroutine for loudness analysis.
func (p *Player) shipToDetector(rendered sinepad.AudioBuffer) {
	bufPtr := p.broker.GetAudioBuffer()
	*bufPtr = append(*bufPtr, rendered...)
	if len(*bufPtr) == 0 || !TrySend(p.broker.ToDetector, MsgToDetector{Data: bufPtr}) {
		p.broker.PutAudioBuffer(bufPtr)
	}
}

func (p *Player) handleNote(on bool, note byte) {
	if p.synth == nil {
		return
	}
	if on {
		params := p.params
		params.Frequency = sinepad.NoteToFreq(note)
		p.synth.Trigger(note, params)
	} else {
		p.synth.Release(note)
	}
}

func (p *Player) recordEvent(on bool, note byte, bufferRemaining int) {
	if p.recState == recStateWaitingForNote && on {
		p.recording.TotalFrames = bufferRemaining
		p.recState = recStateRecording
	}
	if p.recState == recStateRecording {
		p.recording.Events = append(p.recording.Events, MIDINoteEvent{
			Frame: p.recording.TotalFrames - bufferRemaining,
			On:    on,
			Note:  note,
		})
	}
}

func (p *Player) processMessages() {
loop:
	for {
		select {
		case msg := <-p.broker.ToPlayer:
			switch m := msg.(type) {
			case PanicMsg:
				if m.bool {
					p.synth = nil
				} else {
					p.makeSynth()
				}
			case ParamsMsg:
				p.params = m.Params
				if p.synth != nil {
					p.synth.Update(p.params)
				}
			case EchoMsg:
				p.echo = m.bool
				if p.synth != nil {
					p.synth.SetEcho(p.echo)
				}
			case StartSequenceMsg:
				p.seq = flattenSequence(m.Sequence)
				p.seqIndex = 0
				p.seqFrame = 0
				p.playing = true
				if p.synth == nil {
					p.makeSynth()
				}
				TrySend(p.broker.ToModel, MsgToModel{Reset: true})
				TrySend(p.broker.ToDetector, MsgToDetector{Reset: true})
			case PlayingSequenceMsg:
				p.playing = m.bool
				if !p.playing && p.synth != nil {
					p.synth.ReleaseAll()
				}
			case *NoteEvent:
				p.recordEvent(m.On, m.Note, 0)
				p.handleNote(m.On, m.Note)
			case RecordingMsg:
				if m.bool {
					p.recState = recStateWaitingForNote
					p.recording = Recording{}
				} else {
					if p.recState == recStateRecording && len(p.recording.Events) > 0 {
						p.send(p.recording)
					}
					p.recState = recStateNone
				}
			default:
				// ignore unknown messages
			}
		default:
			break loop
		}
	}
}

// flattenSequence converts a sequence into a frame-sorted list of note
// on/off events.
func flattenSequence(seq sinepad.Sequence) []timedNote {
	notes := make([]timedNote, 0, len(seq.Events)*2)
	for _, e := range seq.Events {
		note := sinepad.FreqToNote(e.Params.Frequency)
		notes = append(notes,
			timedNote{frame: int(e.Time * sinepad.SampleRate), on: true, note: note, params: e.Params},
			timedNote{frame: int((e.Time + e.Duration) * sinepad.SampleRate), on: false, note: note})
	}
	sort.SliceStable(notes, func(i, j int) bool { return notes[i].frame < notes[j].frame })
	return notes
}

func (p *Player) makeSynth() {
	p.synth = p.synther.Synth(sinepad.SampleRate)
	p.synth.Update(p.params)
	p.synth.SetEcho(p.echo)
}

// send ships the voice levels and panic status to the model, with message
// boxed in Data. Always non-blocking.
func (p *Player) send(message any) {
	TrySend(p.broker.ToModel, MsgToModel{
		HasPanicPosLevels: true,
		Panic:             p.synth == nil,
		PlayFrame:         p.seqFrame,
		VoiceLevels:       p.voiceLevels,
		Data:              message,
	})
}
