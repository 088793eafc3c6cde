package sinepad

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

type (
	// Sequence is a list of timed notes, read from and written to the
	// plain-text .synthSequence format:
	//
	//	@ <time> <duration> SineEnv <amplitude> <frequency> <attacktime> <releasetime> <pan>
	//
	// Times and durations are in seconds. Lines starting with # are comments.
	Sequence struct {
		Events []SequenceEvent
	}

	SequenceEvent struct {
		Time     float64
		Duration float64
		Params   Params
	}
)

const sequenceVoiceName = "SineEnv"

// ReadSequence parses a .synthSequence from r. Events come out sorted by
// start time.
func ReadSequence(r io.Reader) (Sequence, error) {
	var seq Sequence
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if fields[0] != "@" {
			return Sequence{}, fmt.Errorf("line %d: unknown directive %q", lineno, fields[0])
		}
		if len(fields) != 9 {
			return Sequence{}, fmt.Errorf("line %d: expected 9 fields, got %d", lineno, len(fields))
		}
		if fields[3] != sequenceVoiceName {
			return Sequence{}, fmt.Errorf("line %d: unknown voice %q", lineno, fields[3])
		}
		var nums [7]float64
		for i, f := range fields[1:3] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return Sequence{}, fmt.Errorf("line %d: %w", lineno, err)
			}
			nums[i] = v
		}
		for i, f := range fields[4:] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return Sequence{}, fmt.Errorf("line %d: %w", lineno, err)
			}
			nums[i+2] = v
		}
		if nums[0] < 0 || nums[1] < 0 {
			return Sequence{}, fmt.Errorf("line %d: negative time", lineno)
		}
		params := Params{
			Amplitude:   float32(nums[2]),
			Frequency:   float32(nums[3]),
			AttackTime:  float32(nums[4]),
			ReleaseTime: float32(nums[5]),
			Pan:         float32(nums[6]),
		}
		params.Clamp()
		seq.Events = append(seq.Events, SequenceEvent{Time: nums[0], Duration: nums[1], Params: params})
	}
	if err := scanner.Err(); err != nil {
		return Sequence{}, fmt.Errorf("reading sequence: %w", err)
	}
	seq.Sort()
	return seq, nil
}

// WriteSequence writes the sequence in the .synthSequence format.
func (s Sequence) WriteSequence(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, e := range s.Events {
		p := e.Params
		_, err := fmt.Fprintf(bw, "@ %.4f %.4f %s %.4f %.4f %.4f %.4f %.4f\n",
			e.Time, e.Duration, sequenceVoiceName,
			p.Amplitude, p.Frequency, p.AttackTime, p.ReleaseTime, p.Pan)
		if err != nil {
			return fmt.Errorf("writing sequence: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing sequence: %w", err)
	}
	return nil
}

// Copy returns a copy of the sequence that does not share event storage
// with the original.
func (s Sequence) Copy() Sequence {
	return Sequence{Events: append([]SequenceEvent(nil), s.Events...)}
}

// Sort orders the events by start time, keeping the relative order of
// simultaneous events.
func (s *Sequence) Sort() {
	sort.SliceStable(s.Events, func(i, j int) bool {
		return s.Events[i].Time < s.Events[j].Time
	})
}

// Duration returns the time in seconds when the last note is released. The
// release tails ring longer than this.
func (s Sequence) Duration() float64 {
	var end float64
	for _, e := range s.Events {
		if t := e.Time + e.Duration; t > end {
			end = t
		}
	}
	return end
}

// maxTailSeconds caps how long Play waits for release tails to fade.
const maxTailSeconds = 30

// Play renders a sequence offline and returns the full buffer, release
// tails included.
func Play(synther Synther, seq Sequence) (AudioBuffer, error) {
	type timedNote struct {
		frame int
		on    bool
		note  byte
		event SequenceEvent
	}
	notes := make([]timedNote, 0, len(seq.Events)*2)
	for _, e := range seq.Events {
		note := FreqToNote(e.Params.Frequency)
		notes = append(notes,
			timedNote{frame: int(e.Time * SampleRate), on: true, note: note, event: e},
			timedNote{frame: int((e.Time + e.Duration) * SampleRate), on: false, note: note, event: e})
	}
	sort.SliceStable(notes, func(i, j int) bool { return notes[i].frame < notes[j].frame })
	synth := synther.Synth(SampleRate)
	buffer := make(AudioBuffer, 0, int(seq.Duration()*SampleRate))
	chunk := make(AudioBuffer, SampleRate/10)
	render := func(upto int) error {
		for len(buffer) < upto {
			part := chunk
			if n := upto - len(buffer); n < len(part) {
				part = part[:n]
			}
			if err := part.Fill(synth); err != nil {
				return err
			}
			buffer = append(buffer, part...)
		}
		return nil
	}
	for _, n := range notes {
		if err := render(n.frame); err != nil {
			return nil, err
		}
		if n.on {
			synth.Trigger(n.note, n.event.Params)
		} else {
			synth.Release(n.note)
		}
	}
	// render the tail until every voice has faded out
	levels := make([]float32, MaxVoices)
	for i := 0; i < maxTailSeconds*10; i++ {
		numVoices := synth.VoiceLevels(levels)
		silent := true
		for _, l := range levels[:numVoices] {
			if l >= 1e-3 {
				silent = false
				break
			}
		}
		if silent {
			break
		}
		if err := chunk.Fill(synth); err != nil {
			return nil, err
		}
		buffer = append(buffer, chunk...)
	}
	return buffer, nil
}
