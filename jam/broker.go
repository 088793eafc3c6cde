package jam

import (
	"sync"
	"time"

	"github.com/wavetooth/sinepad"
)

type (
	// Broker is the centralized message broker for the jam app. It is used to
	// communicate between the player, the model, and the loudness detector.
	// The broker is just many-to-one communication, implemented with one
	// channel for each recipient. Additionally, the broker has a sync.Pool
	// for *sinepad.AudioBuffers, from which the player can get and return
	// buffers to pass audio around without allocating new memory every time.
	//
	// For closing goroutines, the broker has two channels for each goroutine:
	// CloseXXX and FinishedXXX. The CloseXXX channel has a capacity of 1, so
	// you can always send an empty message (struct{}{}) to it without
	// blocking. If the channel is already full, someone else has already
	// requested its closure and the goroutine is already closing, so dropping
	// the message is fine. FinishedXXX signals that a goroutine has closed
	// and cleaned up; nothing is ever sent to it, it is only closed. Waiting
	// on it should be combined with a timeout to avoid deadlocks.
	Broker struct {
		ToModel    chan MsgToModel
		ToPlayer   chan any
		ToDetector chan MsgToDetector
		ToGUI      chan any

		CloseDetector chan struct{}
		CloseGUI      chan struct{}

		FinishedGUI      chan struct{}
		FinishedDetector chan struct{}

		bufferPool sync.Pool
	}

	// MsgToModel is a message sent to the model. The most often sent data
	// (voice levels, playback position, detector results) is not boxed, to
	// avoid allocations; infrequent messages travel boxed in Data.
	MsgToModel struct {
		HasPanicPosLevels bool
		Panic             bool
		PlayFrame         int
		VoiceLevels       [sinepad.MaxVoices]float32

		HasDetectorResult bool
		DetectorResult    DetectorResult

		Reset bool // playback started, reset the detector state

		Data any
	}

	// MsgToDetector carries either an audio buffer to analyze or a func()
	// that gets executed in the detector goroutine.
	MsgToDetector struct {
		Reset bool
		Data  any
	}
)

func NewBroker() *Broker {
	return &Broker{
		ToPlayer:         make(chan any, 1024),
		ToModel:          make(chan MsgToModel, 1024),
		ToDetector:       make(chan MsgToDetector, 1024),
		ToGUI:            make(chan any, 1024),
		CloseDetector:    make(chan struct{}, 1),
		CloseGUI:         make(chan struct{}, 1),
		FinishedGUI:      make(chan struct{}),
		FinishedDetector: make(chan struct{}),
		bufferPool:       sync.Pool{New: func() any { return &sinepad.AudioBuffer{} }},
	}
}

// GetAudioBuffer returns an empty audio buffer from the buffer pool. After
// use, it should be returned with PutAudioBuffer.
func (b *Broker) GetAudioBuffer() *sinepad.AudioBuffer {
	return b.bufferPool.Get().(*sinepad.AudioBuffer)
}

// PutAudioBuffer returns an audio buffer to the buffer pool, resetting its
// length (but keeping its capacity) if needed.
func (b *Broker) PutAudioBuffer(buf *sinepad.AudioBuffer) {
	if len(*buf) > 0 {
		*buf = (*buf)[:0]
	}
	b.bufferPool.Put(buf)
}

// TrySend sends a value to a channel if it is not full. It is guaranteed to
// be non-blocking. Returns true if the value was sent.
func TrySend[T any](c chan<- T, v T) bool {
	select {
	case c <- v:
	default:
		return false
	}
	return true
}

// TimeoutReceive blocks until a value is received from the channel or until
// the timeout; ok is false on timeout or when the channel is closed.
func TimeoutReceive[T any](c <-chan T, t time.Duration) (v T, ok bool) {
	select {
	case v, ok = <-c:
		return v, ok
	case <-time.After(t):
		return v, false
	}
}
