package jam

import (
	"math"

	"github.com/viterin/vek/vek32"
	"github.com/wavetooth/sinepad"
)

type (
	// Detector runs in its own goroutine, analyzing the rendered audio the
	// player ships to it and sending loudness and true peak results to the
	// model for the level meters. Results are calculated in 100 ms chunks,
	// with sliding windows of 400 ms (momentary) and 3 s (short-term).
	Detector struct {
		broker           *Broker
		loudnessDetector loudnessDetector
		peakDetector     peakDetector
	}

	LoudnessType int
	PeakType     int

	Decibel float32

	LoudnessResult [NumLoudnessTypes]Decibel
	PeakResult     [NumPeakTypes][2]Decibel

	DetectorResult struct {
		Loudness LoudnessResult
		Peaks    PeakResult
	}

	loudnessDetector struct {
		powers    [2]RingBuffer[float32] // 0 = momentary, 1 = short-term
		maxPowers [2]float32
		tmp, tmp2 []float32
	}

	peakDetector struct {
		windows  [2][2]RingBuffer[float32]
		maxPower [2]float32
		tmp      []float32
	}

	// RingBuffer is a fixed-size buffer with a cursor wrapping around.
	RingBuffer[T any] struct {
		Buffer []T
		Cursor int
	}
)

const (
	LoudnessMomentary LoudnessType = iota
	LoudnessShortTerm
	LoudnessMaxMomentary
	LoudnessMaxShortTerm
	NumLoudnessTypes
)

const (
	PeakMomentary PeakType = iota
	PeakShortTerm
	PeakIntegrated
	NumPeakTypes
)

const detectorChunkFrames = sinepad.SampleRate / 10 // 100 ms

func NewDetector(b *Broker) *Detector {
	return &Detector{
		broker:           b,
		loudnessDetector: makeLoudnessDetector(),
		peakDetector:     makePeakDetector(),
	}
}

func (s *Detector) Run() {
	defer close(s.broker.FinishedDetector)
	var chunkHistory sinepad.AudioBuffer
	for {
		select {
		case msg := <-s.broker.ToDetector:
			if msg.Reset {
				s.loudnessDetector.reset()
				s.peakDetector.reset()
				chunkHistory = chunkHistory[:0]
			}
			switch data := msg.Data.(type) {
			case *sinepad.AudioBuffer:
				buf := *data
				for {
					var chunk sinepad.AudioBuffer
					if len(chunkHistory) > 0 && len(chunkHistory) < detectorChunkFrames {
						l := min(len(buf), detectorChunkFrames-len(chunkHistory))
						chunkHistory = append(chunkHistory, buf[:l]...)
						if len(chunkHistory) < detectorChunkFrames {
							break
						}
						chunk = chunkHistory
						buf = buf[l:]
					} else {
						if len(buf) >= detectorChunkFrames {
							chunk = buf[:detectorChunkFrames]
							buf = buf[detectorChunkFrames:]
						} else {
							chunkHistory = chunkHistory[:0]
							chunkHistory = append(chunkHistory, buf...)
							break
						}
					}
					TrySend(s.broker.ToModel, MsgToModel{
						HasDetectorResult: true,
						DetectorResult: DetectorResult{
							Loudness: s.loudnessDetector.update(chunk),
							Peaks:    s.peakDetector.update(chunk),
						},
					})
				}
				s.broker.PutAudioBuffer(data)
			case func():
				data()
			}
		case <-s.broker.CloseDetector:
			return
		}
	}
}

func makeLoudnessDetector() loudnessDetector {
	return loudnessDetector{
		powers: [2]RingBuffer[float32]{
			{Buffer: make([]float32, 4)},  // momentary loudness
			{Buffer: make([]float32, 30)}, // short-term loudness
		},
	}
}

func makePeakDetector() peakDetector {
	return peakDetector{
		windows: [2][2]RingBuffer[float32]{
			{{Buffer: make([]float32, 4)}, {Buffer: make([]float32, 4)}},   // momentary peaks
			{{Buffer: make([]float32, 30)}, {Buffer: make([]float32, 30)}}, // short-term peaks
		},
	}
}

func (d *loudnessDetector) update(chunk sinepad.AudioBuffer) LoudnessResult {
	setSliceLength(&d.tmp, len(chunk))
	setSliceLength(&d.tmp2, len(chunk))
	var total float32
	for chn := 0; chn < 2; chn++ {
		// deinterleave the channels
		for i := 0; i < len(chunk); i++ {
			d.tmp[i] = chunk[i][chn]
		}
		// square the samples
		res := vek32.Mul_Into(d.tmp2, d.tmp, d.tmp)
		// calculate the mean power and add it to the total
		total += vek32.Mean(res)
	}
	var ret LoudnessResult
	for i := range d.powers {
		d.powers[i].WriteWrapSingle(total)
		mean := vek32.Mean(d.powers[i].Buffer)
		if d.maxPowers[i] < mean {
			d.maxPowers[i] = mean
		}
		ret[i+int(LoudnessMomentary)] = power2loudness(mean)
		ret[i+int(LoudnessMaxMomentary)] = power2loudness(d.maxPowers[i])
	}
	return ret
}

func (d *loudnessDetector) reset() {
	for i := range d.powers {
		d.powers[i].Cursor = 0
		l := len(d.powers[i].Buffer)
		d.powers[i].Buffer = d.powers[i].Buffer[:0]
		d.powers[i].Buffer = append(d.powers[i].Buffer, make([]float32, l)...)
		d.maxPowers[i] = 0
	}
}

func (d *peakDetector) update(chunk sinepad.AudioBuffer) (ret PeakResult) {
	setSliceLength(&d.tmp, len(chunk))
	for chn := 0; chn < 2; chn++ {
		for i := range chunk {
			d.tmp[i] = chunk[i][chn]
		}
		vek32.Abs_Inplace(d.tmp)
		p := vek32.Max(d.tmp)
		for i := range d.windows {
			d.windows[i][chn].WriteWrapSingle(p)
			windowPeak := vek32.Max(d.windows[i][chn].Buffer)
			ret[i+int(PeakMomentary)][chn] = Decibel(20 * math.Log10(float64(windowPeak)))
		}
		if d.maxPower[chn] < p {
			d.maxPower[chn] = p
		}
		ret[int(PeakIntegrated)][chn] = Decibel(20 * math.Log10(float64(d.maxPower[chn])))
	}
	return
}

func (d *peakDetector) reset() {
	for chn := 0; chn < 2; chn++ {
		for i := range d.windows {
			d.windows[i][chn].Cursor = 0
			l := len(d.windows[i][chn].Buffer)
			d.windows[i][chn].Buffer = d.windows[i][chn].Buffer[:0]
			d.windows[i][chn].Buffer = append(d.windows[i][chn].Buffer, make([]float32, l)...)
		}
		d.maxPower[chn] = 0
	}
}

func power2loudness(power float32) Decibel {
	return Decibel(10 * math.Log10(float64(power)))
}

func (r *RingBuffer[T]) WriteWrapSingle(value T) {
	r.Cursor = (r.Cursor + 1) % len(r.Buffer)
	r.Buffer[r.Cursor] = value
}

func setSliceLength[T any](slice *[]T, length int) {
	if len(*slice) < length {
		*slice = append(*slice, make([]T, length-len(*slice))...)
	}
	*slice = (*slice)[:length]
}
