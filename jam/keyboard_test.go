package jam

import "testing"

func TestKeyNote(t *testing.T) {
	tests := []struct {
		key    string
		octave int
		note   byte
		ok     bool
	}{
		{"Z", 4, 60, true},
		{"M", 4, 71, true},
		{"Q", 4, 72, true},
		{"U", 4, 83, true},
		{"2", 4, 73, true},
		{"Z", 0, 12, true},
		{"Z", 9, 120, true},
		{"U", 9, 0, false}, // above the MIDI range
		{"P", 4, 0, false}, // not a note key
		{"Space", 4, 0, false},
	}
	for _, test := range tests {
		note, ok := KeyNote(test.key, test.octave)
		if ok != test.ok || note != test.note {
			t.Errorf("KeyNote(%q, %d) = %v, %v; want %v, %v", test.key, test.octave, note, ok, test.note, test.ok)
		}
	}
}

func TestKeyboardPressRelease(t *testing.T) {
	broker := NewBroker()
	kb := MakeKeyboard[string](broker)
	kb.Press("Z", NoteEvent{Note: 60})
	kb.Press("Z", NoteEvent{Note: 60}) // repeated press is ignored
	kb.Press("X", NoteEvent{Note: 62})
	kb.Release("Z")
	kb.ReleaseAll()
	var events []*NoteEvent
loop:
	for {
		select {
		case msg := <-broker.ToPlayer:
			if ev, ok := msg.(*NoteEvent); ok {
				events = append(events, ev)
			}
		default:
			break loop
		}
	}
	if len(events) != 4 {
		t.Fatalf("expected 4 note events, got %d", len(events))
	}
	if !events[0].On || events[0].Note != 60 {
		t.Errorf("expected note 60 on, got %+v", events[0])
	}
	if !events[1].On || events[1].Note != 62 {
		t.Errorf("expected note 62 on, got %+v", events[1])
	}
	if events[2].On || events[2].Note != 60 {
		t.Errorf("expected note 60 off, got %+v", events[2])
	}
	if events[3].On || events[3].Note != 62 {
		t.Errorf("expected note 62 off, got %+v", events[3])
	}
}
