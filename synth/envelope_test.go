package synth

import (
	"math"
	"testing"
)

const testSampleRate = 48000

func TestEnvelopeAttackIsLinear(t *testing.T) {
	e := envelope{sampleRate: testSampleRate}
	e.trigger(0.1)
	n := int(0.1 * testSampleRate)
	for i := 0; i < n/2; i++ {
		e.next()
	}
	if got := e.level; math.Abs(float64(got)-0.5) > 1e-3 {
		t.Errorf("attack midpoint level = %v, expected 0.5", got)
	}
	for i := n / 2; i < n; i++ {
		e.next()
	}
	if got := e.level; math.Abs(float64(got)-1) > 1e-3 {
		t.Errorf("level after attack = %v, expected 1", got)
	}
}

func TestEnvelopeSustainsUntilRelease(t *testing.T) {
	e := envelope{sampleRate: testSampleRate}
	e.trigger(0.01)
	for i := 0; i < testSampleRate; i++ {
		e.next()
	}
	if got := e.level; got != 1 {
		t.Errorf("sustain level = %v, expected 1", got)
	}
	if e.done() {
		t.Error("envelope done during sustain")
	}
	e.release(0.1)
	n := int(0.1 * testSampleRate)
	for i := 0; i < n/2; i++ {
		e.next()
	}
	if got := e.level; math.Abs(float64(got)-0.5) > 1e-3 {
		t.Errorf("release midpoint level = %v, expected 0.5", got)
	}
	for i := n / 2; i < n+1; i++ {
		e.next()
	}
	if !e.done() {
		t.Error("envelope not done after release time")
	}
	if got := e.level; got != 0 {
		t.Errorf("level after release = %v, expected 0", got)
	}
}

func TestEnvelopeReleaseFromMidAttack(t *testing.T) {
	e := envelope{sampleRate: testSampleRate}
	e.trigger(1)
	for i := 0; i < testSampleRate/2; i++ {
		e.next()
	}
	start := e.level
	if math.Abs(float64(start)-0.5) > 1e-3 {
		t.Fatalf("mid-attack level = %v, expected 0.5", start)
	}
	e.release(0.1)
	n := int(0.1 * testSampleRate)
	for i := 0; i < n/2; i++ {
		e.next()
	}
	if got := e.level; math.Abs(float64(got-start/2)) > 1e-3 {
		t.Errorf("release midpoint level = %v, expected %v", got, start/2)
	}
	for i := n / 2; i < n+1; i++ {
		e.next()
	}
	if !e.done() {
		t.Error("envelope not done after releasing from mid-attack")
	}
}

func TestFreshEnvelopeIsDone(t *testing.T) {
	var e envelope
	if !e.done() {
		t.Error("zero value envelope should count as done")
	}
}
