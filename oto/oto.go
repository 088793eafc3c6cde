// Package oto implements sinepad.AudioContext on top of ebitengine/oto.
package oto

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/wavetooth/sinepad"
)

type (
	Context struct {
		context *oto.Context
	}

	playback struct {
		player *oto.Player
		reader *callbackReader
		once   sync.Once
	}

	// callbackReader adapts the float32 stereo callback into the raw little
	// endian byte stream oto pulls from.
	callbackReader struct {
		callback func(buf sinepad.AudioBuffer) error
		scratch  sinepad.AudioBuffer
		finished chan struct{}
		err      error
	}
)

// NewContext opens the system audio device for 48 kHz stereo float32
// playback.
func NewContext() (*Context, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sinepad.SampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
	}
	context, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("oto.NewContext failed: %w", err)
	}
	<-ready
	return &Context{context: context}, nil
}

func (c *Context) Play(callback func(buf sinepad.AudioBuffer) error) sinepad.CloserWaiter {
	r := &callbackReader{callback: callback, finished: make(chan struct{})}
	p := c.context.NewPlayer(r)
	p.Play()
	return &playback{player: p, reader: r}
}

func (c *Context) Close() error {
	return c.context.Suspend()
}

func (p *playback) Close() error {
	var err error
	p.once.Do(func() {
		err = p.player.Close()
	})
	return err
}

func (p *playback) Wait() {
	<-p.reader.finished
	p.Close()
}

const bytesPerFrame = 8 // two float32 channels

func (r *callbackReader) Read(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	frames := len(p) / bytesPerFrame
	if frames == 0 {
		return 0, nil
	}
	if len(r.scratch) < frames {
		r.scratch = make(sinepad.AudioBuffer, frames)
	}
	buf := r.scratch[:frames]
	if err := r.callback(buf); err != nil {
		r.err = err
		close(r.finished)
		if err == io.EOF {
			return 0, io.EOF
		}
		return 0, fmt.Errorf("playback callback failed: %w", err)
	}
	for i, frame := range buf {
		binary.LittleEndian.PutUint32(p[i*bytesPerFrame:], math.Float32bits(frame[0]))
		binary.LittleEndian.PutUint32(p[i*bytesPerFrame+4:], math.Float32bits(frame[1]))
	}
	return frames * bytesPerFrame, nil
}
