package synth

import (
	"math"
	"testing"

	"github.com/wavetooth/sinepad"
)

func testParams() sinepad.Params {
	p := sinepad.DefaultParams()
	p.Frequency = 440
	p.AttackTime = 0.01
	p.ReleaseTime = 0.1
	return p
}

func render(t *testing.T, s sinepad.Synth, frames int) sinepad.AudioBuffer {
	t.Helper()
	buf := make(sinepad.AudioBuffer, frames)
	if err := s.Render(buf); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	return buf
}

func energy(buf sinepad.AudioBuffer) (left, right float64) {
	for _, frame := range buf {
		left += float64(frame[0]) * float64(frame[0])
		right += float64(frame[1]) * float64(frame[1])
	}
	return
}

func TestTriggerProducesSound(t *testing.T) {
	s := Synther{}.Synth(testSampleRate)
	buf := render(t, s, 512)
	if l, r := energy(buf); l != 0 || r != 0 {
		t.Errorf("untriggered synth is not silent: %v %v", l, r)
	}
	s.Trigger(69, testParams())
	buf = render(t, s, 4800)
	if l, r := energy(buf); l == 0 || r == 0 {
		t.Errorf("triggered synth is silent: %v %v", l, r)
	}
}

func TestVoiceFreeRequiresEnvelopeDoneAndFollowerDecay(t *testing.T) {
	s := Synther{}.Synth(testSampleRate).(*Synth)
	p := testParams()
	p.ReleaseTime = 0.1
	s.Trigger(69, p)
	render(t, s, 4800) // past the attack
	s.Release(69)
	// render exactly to the end of the release ramp: the envelope is done
	// but the follower has not yet decayed to silence
	render(t, s, int(0.1*testSampleRate)+1)
	v := &s.voices[0]
	if !v.env.done() {
		t.Fatal("envelope should be done after the release time")
	}
	if v.fol.value < freeLevel {
		t.Fatal("follower decayed suspiciously fast; test cannot distinguish the conditions")
	}
	if v.free() {
		t.Error("voice free while follower still above the threshold")
	}
	render(t, s, testSampleRate)
	if v.fol.value >= freeLevel {
		t.Fatal("follower did not decay in a second")
	}
	if !v.free() {
		t.Error("voice not free after envelope done and follower decayed")
	}
}

func TestUpdatePansSoundingVoices(t *testing.T) {
	s := Synther{}.Synth(testSampleRate)
	p := testParams()
	p.Pan = 0
	s.Trigger(69, p)
	buf := render(t, s, 4800)
	l, r := energy(buf)
	if math.Abs(l-r) > 0.01*(l+r) {
		t.Fatalf("center pan not balanced: left %v right %v", l, r)
	}
	p.Pan = -1
	s.Update(p)
	buf = render(t, s, 4800)
	l, r = energy(buf)
	if r > 1e-9 || l == 0 {
		t.Errorf("hard left pan did not silence the right channel in the next buffer: left %v right %v", l, r)
	}
}

func TestTriggerPrefersFreeVoices(t *testing.T) {
	s := Synther{}.Synth(testSampleRate).(*Synth)
	p := testParams()
	s.Trigger(60, p)
	s.Trigger(61, p)
	if s.voices[0].note != 60 || s.voices[1].note != 61 {
		t.Fatalf("voices not allocated in order: %v %v", s.voices[0].note, s.voices[1].note)
	}
}

func TestVoiceStealingPrefersReleasedThenOldest(t *testing.T) {
	s := Synther{}.Synth(testSampleRate).(*Synth)
	p := testParams()
	p.ReleaseTime = 10 // long tails so nothing frees up during the test
	for i := 0; i < sinepad.MaxVoices; i++ {
		s.Trigger(byte(40+i), p)
		render(t, s, 16)
	}
	s.Release(45)
	render(t, s, 16)
	s.Trigger(100, p)
	if s.voices[5].note != 100 {
		t.Errorf("expected the released voice to be stolen, voice 5 has note %v", s.voices[5].note)
	}
	// all sustained again; the oldest (voice 0) goes next
	s.Trigger(101, p)
	if s.voices[0].note != 101 {
		t.Errorf("expected the oldest voice to be stolen, voice 0 has note %v", s.voices[0].note)
	}
}

func TestReleaseAll(t *testing.T) {
	s := Synther{}.Synth(testSampleRate).(*Synth)
	p := testParams()
	for _, n := range []byte{60, 64, 67} {
		s.Trigger(n, p)
	}
	s.ReleaseAll()
	for i := 0; i < 3; i++ {
		if s.voices[i].sustained {
			t.Errorf("voice %d still sustained after ReleaseAll", i)
		}
	}
}

func TestEchoAddsDelayedSignal(t *testing.T) {
	var e echo
	e.init(testSampleRate)
	e.enabled = true
	delayFrames := int(echoMaxDelaySeconds * testSampleRate)
	var peak float32
	for i := 0; i < delayFrames*2; i++ {
		frame := [2]float32{0, 0}
		if i == 0 {
			frame = [2]float32{1, 1}
		}
		e.process(&frame)
		if i >= delayFrames && frame[0] > peak {
			peak = frame[0]
		}
	}
	if peak < 0.1 {
		t.Errorf("echo of the impulse too quiet: %v", peak)
	}
}

func TestVoiceLevels(t *testing.T) {
	s := Synther{}.Synth(testSampleRate)
	levels := make([]float32, sinepad.MaxVoices)
	if n := s.VoiceLevels(levels); n != sinepad.MaxVoices {
		t.Fatalf("VoiceLevels returned %d, expected %d", n, sinepad.MaxVoices)
	}
	s.Trigger(69, testParams())
	render(t, s, 4800)
	s.VoiceLevels(levels)
	if levels[0] <= 0 {
		t.Error("sounding voice has zero level")
	}
	for _, l := range levels[1:] {
		if l != 0 {
			t.Error("silent voice has nonzero level")
		}
	}
}
