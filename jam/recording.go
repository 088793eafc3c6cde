package jam

import "github.com/wavetooth/sinepad"

// Recording is a recorded jam session: note events with frames relative to
// the first note on. The player sends a finished Recording to the model,
// which converts it into a sequence with the parameters in effect.
type Recording struct {
	Events      []MIDINoteEvent
	TotalFrames int
}

// ToSequence pairs each note on with its note off and converts the result
// into a sequence. Notes still held at the end of the recording are given
// the remaining recorded time as their duration. The given params supply
// everything except the frequency, which comes from the recorded note.
func (r Recording) ToSequence(params sinepad.Params) sinepad.Sequence {
	var seq sinepad.Sequence
	type held struct {
		frame int
		index int
	}
	active := map[byte][]held{}
	for _, e := range r.Events {
		if e.On {
			p := params
			p.Frequency = sinepad.NoteToFreq(e.Note)
			seq.Events = append(seq.Events, sinepad.SequenceEvent{
				Time:   float64(e.Frame) / sinepad.SampleRate,
				Params: p,
			})
			active[e.Note] = append(active[e.Note], held{frame: e.Frame, index: len(seq.Events) - 1})
		} else {
			stack := active[e.Note]
			if len(stack) == 0 {
				continue
			}
			h := stack[len(stack)-1]
			active[e.Note] = stack[:len(stack)-1]
			seq.Events[h.index].Duration = float64(e.Frame-h.frame) / sinepad.SampleRate
		}
	}
	for _, stack := range active {
		for _, h := range stack {
			seq.Events[h.index].Duration = float64(r.TotalFrames-h.frame) / sinepad.SampleRate
		}
	}
	seq.Sort()
	return seq
}
