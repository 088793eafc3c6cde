package jam

import (
	"fmt"
	"io"

	"github.com/wavetooth/sinepad"
)

// ReadSequenceFrom loads a sequence from the reader, taking ownership of it.
// The path is only remembered for the window title and the next save.
func (m *Model) ReadSequenceFrom(r io.ReadCloser, path string) {
	m.dialog = NoDialog
	defer r.Close()
	seq, err := sinepad.ReadSequence(r)
	if err != nil {
		m.Alerts().Add(fmt.Sprintf("Error loading sequence: %v", err), Error)
		return
	}
	m.seq = seq
	m.filePath = path
	m.Alerts().Add(fmt.Sprintf("Loaded %d notes", len(seq.Events)), Info)
}

// WriteSequenceTo saves the current sequence to the writer, taking ownership
// of it.
func (m *Model) WriteSequenceTo(w io.WriteCloser, path string) {
	m.dialog = NoDialog
	defer w.Close()
	if err := m.seq.WriteSequence(w); err != nil {
		m.Alerts().Add(fmt.Sprintf("Error saving sequence: %v", err), Error)
		return
	}
	m.filePath = path
	m.Alerts().Add("Sequence saved", Info)
}

// ExportWavTo renders the current sequence offline and writes it as a wav
// file. Rendering happens in a goroutine so a long sequence does not freeze
// the GUI; the result is reported through the broker.
func (m *Model) ExportWavTo(w io.WriteCloser, pcm16 bool) {
	m.dialog = NoDialog
	seq := m.seq.Copy()
	synther := m.synther
	broker := m.broker
	go func() {
		defer w.Close()
		buffer, err := sinepad.Play(synther, seq)
		if err != nil {
			alert(broker, Alert{Message: fmt.Sprintf("Error rendering sequence: %v", err), Priority: Error})
			return
		}
		wav, err := buffer.Wav(pcm16)
		if err != nil {
			alert(broker, Alert{Message: fmt.Sprintf("Error converting to wav: %v", err), Priority: Error})
			return
		}
		if _, err := w.Write(wav); err != nil {
			alert(broker, Alert{Message: fmt.Sprintf("Error writing wav: %v", err), Priority: Error})
			return
		}
		alert(broker, Alert{Message: "Wav exported", Priority: Info})
	}()
}

func alert(broker *Broker, a Alert) {
	TrySend(broker.ToModel, MsgToModel{Data: a})
}
