package jam

import (
	"math"
	"testing"
	"time"
)

func TestDetectorReportsLoudnessAndPeaks(t *testing.T) {
	broker := NewBroker()
	detector := NewDetector(broker)
	go detector.Run()

	buf := broker.GetAudioBuffer()
	for i := 0; i < detectorChunkFrames; i++ {
		*buf = append(*buf, [2]float32{0.5, 0.5})
	}
	TrySend(broker.ToDetector, MsgToDetector{Data: buf})

	msg, ok := TimeoutReceive(broker.ToModel, time.Second)
	if !ok || !msg.HasDetectorResult {
		t.Fatalf("expected a detector result, got %+v (ok=%v)", msg, ok)
	}
	// one chunk of DC 0.5 on both channels: total power 0.5, averaged over
	// the 4 slot momentary window
	wantLoudness := 10 * math.Log10(0.5/4)
	if got := float64(msg.DetectorResult.Loudness[LoudnessMomentary]); math.Abs(got-wantLoudness) > 0.1 {
		t.Errorf("expected momentary loudness %.2f dB, got %.2f dB", wantLoudness, got)
	}
	wantPeak := 20 * math.Log10(0.5)
	for chn := 0; chn < 2; chn++ {
		if got := float64(msg.DetectorResult.Peaks[PeakMomentary][chn]); math.Abs(got-wantPeak) > 0.1 {
			t.Errorf("expected momentary peak %.2f dB on channel %d, got %.2f dB", wantPeak, chn, got)
		}
	}

	TrySend(broker.CloseDetector, struct{}{})
	select {
	case <-broker.FinishedDetector:
	case <-time.After(time.Second):
		t.Error("detector did not close")
	}
}
