package sinepad_test

import (
	"math"
	"testing"

	"github.com/wavetooth/sinepad"
)

func TestNoteToFreq(t *testing.T) {
	tests := []struct {
		note byte
		freq float64
	}{
		{69, 432},
		{81, 864},
		{57, 216},
		{60, 256.8687},
	}
	for _, test := range tests {
		got := float64(sinepad.NoteToFreq(test.note))
		if math.Abs(got-test.freq) > 1e-3*test.freq {
			t.Errorf("NoteToFreq(%v) = %v, expected %v", test.note, got, test.freq)
		}
	}
}

func TestFreqToNoteInvertsNoteToFreq(t *testing.T) {
	for note := byte(20); note < 110; note++ {
		if got := sinepad.FreqToNote(sinepad.NoteToFreq(note)); got != note {
			t.Errorf("FreqToNote(NoteToFreq(%v)) = %v", note, got)
		}
	}
}

func TestNoteAsString(t *testing.T) {
	tests := []struct {
		note byte
		str  string
	}{
		{69, "A-4"},
		{60, "C-4"},
		{61, "C#4"},
		{59, "B-3"},
	}
	for _, test := range tests {
		if got := sinepad.NoteAsString(test.note); got != test.str {
			t.Errorf("NoteAsString(%v) = %v, expected %v", test.note, got, test.str)
		}
	}
}

func TestDefaultParams(t *testing.T) {
	p := sinepad.DefaultParams()
	if p.Amplitude != 0.3 || p.Frequency != 60 || p.AttackTime != 1 || p.ReleaseTime != 3 || p.Pan != 0 {
		t.Errorf("unexpected defaults: %+v", p)
	}
}

func TestParamsClamp(t *testing.T) {
	p := sinepad.Params{Amplitude: 2, Frequency: 1, AttackTime: -5, ReleaseTime: 100, Pan: -3}
	p.Clamp()
	want := sinepad.Params{Amplitude: 1, Frequency: 20, AttackTime: 0.01, ReleaseTime: 10, Pan: -1}
	if p != want {
		t.Errorf("Clamp() = %+v, expected %+v", p, want)
	}
}

func TestParamsSetGetFollowDefOrder(t *testing.T) {
	var p sinepad.Params
	for i, d := range sinepad.ParamDefs {
		p.Set(i, d.Default)
		if got := p.Get(i); got != d.Default {
			t.Errorf("param %v: Get after Set = %v, expected %v", d.Name, got, d.Default)
		}
	}
	if p != sinepad.DefaultParams() {
		t.Errorf("setting all defaults by index = %+v, expected %+v", p, sinepad.DefaultParams())
	}
}
