// Package gomidi implements jam.MIDIContext on top of rtmidi.
package gomidi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/wavetooth/sinepad"
	"github.com/wavetooth/sinepad/jam"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

type (
	RTMIDIContext struct {
		driver    *rtmididrv.Driver
		currentIn drivers.In
		stop      func()

		events        chan timestampedMsg
		eventsBuf     []timestampedMsg
		eventIndex    int
		startFrame    int
		startFrameSet bool

		held    [128]bool
		pending []jam.MIDINoteEvent
	}

	timestampedMsg struct {
		frame int
		msg   midi.Message
	}
)

// NewContext opens the rtmidi driver. If the driver is not available, the
// context still works, it just has no input devices.
func NewContext() *RTMIDIContext {
	m := RTMIDIContext{events: make(chan timestampedMsg, 1024)}
	m.driver, _ = rtmididrv.New()
	return &m
}

func (c *RTMIDIContext) InputDevices() []string {
	if c.driver == nil {
		return nil
	}
	ins, err := c.driver.Ins()
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(ins))
	for _, in := range ins {
		names = append(names, in.String())
	}
	return names
}

// Open opens the input device with the given name, closing the currently
// open one if necessary.
func (c *RTMIDIContext) Open(name string) error {
	if c.driver == nil {
		return errors.New("no driver available")
	}
	ins, err := c.driver.Ins()
	if err != nil {
		return fmt.Errorf("listing MIDI inputs failed: %w", err)
	}
	for _, in := range ins {
		if in.String() == name {
			return c.open(in)
		}
	}
	return fmt.Errorf("no MIDI input named %q", name)
}

// TryToOpenBy opens the first input device whose name starts with the given
// prefix, or just the first device if takeFirst is set. Failing to find one
// is not an error; jamming works fine without MIDI.
func (c *RTMIDIContext) TryToOpenBy(namePrefix string, takeFirst bool) {
	if namePrefix == "" && !takeFirst {
		return
	}
	for _, name := range c.InputDevices() {
		if takeFirst || strings.HasPrefix(name, namePrefix) {
			c.Open(name)
			return
		}
	}
}

func (c *RTMIDIContext) open(in drivers.In) error {
	if c.currentIn == in {
		return nil
	}
	if c.HasDeviceOpen() {
		c.stopListening()
		c.currentIn.Close()
	}
	c.currentIn = in
	if err := in.Open(); err != nil {
		c.currentIn = nil
		return fmt.Errorf("opening MIDI input failed: %w", err)
	}
	stop, err := midi.ListenTo(in, c.handleMessage)
	if err != nil {
		in.Close()
		c.currentIn = nil
		return fmt.Errorf("listening to MIDI input failed: %w", err)
	}
	c.stop = stop
	return nil
}

func (c *RTMIDIContext) HasDeviceOpen() bool {
	return c.currentIn != nil && c.currentIn.IsOpen()
}

func (c *RTMIDIContext) Close() {
	if c.driver == nil {
		return
	}
	if c.HasDeviceOpen() {
		c.stopListening()
		c.currentIn.Close()
	}
	c.driver.Close()
}

func (c *RTMIDIContext) stopListening() {
	if c.stop != nil {
		c.stop()
		c.stop = nil
	}
}

// handleMessage runs in the rtmidi callback thread; if the channel is full,
// the message is dropped.
func (c *RTMIDIContext) handleMessage(msg midi.Message, timestampms int32) {
	select {
	case c.events <- timestampedMsg{frame: int(int64(timestampms) * sinepad.SampleRate / 1000), msg: msg}:
	default:
	}
}

// ccAllNotesOff is the controller number of the All Notes Off channel mode
// message.
const ccAllNotesOff = 123

func (c *RTMIDIContext) NextEvent(frame int) (event jam.MIDINoteEvent, ok bool) {
	if len(c.pending) > 0 {
		return c.popPending()
	}
F:
	for {
		select {
		case msg := <-c.events:
			c.eventsBuf = append(c.eventsBuf, msg)
			if !c.startFrameSet {
				c.startFrame = msg.frame
				c.startFrameSet = true
			}
		default:
			break F
		}
	}
	if c.eventIndex > 0 { // an event was consumed, check how badly we need to adjust the timing
		delta := frame + c.startFrame - c.eventsBuf[c.eventIndex-1].frame
		// delta should never be a negative number, because the renderer does
		// not consume an event until current frame is past the frame of the
		// event. However, if it's been a while since we consumed an event,
		// delta may be *positive* i.e. we consume the event too late. So
		// adjust the internal clock in that case.
		c.startFrame -= delta / 5 // adjust the start frame towards the consumed event
	}
	for c.eventIndex < len(c.eventsBuf) {
		var channel uint8
		var velocity uint8
		var key uint8
		m := c.eventsBuf[c.eventIndex]
		f := m.frame - c.startFrame
		c.eventIndex++
		isNoteOn := m.msg.GetNoteOn(&channel, &key, &velocity)
		isNoteOff := !isNoteOn && m.msg.GetNoteOff(&channel, &key, &velocity)
		if isNoteOn || isNoteOff {
			c.held[key] = isNoteOn
			return jam.MIDINoteEvent{
				Frame: f,
				On:    isNoteOn,
				Note:  key,
			}, true
		}
		var controller, value uint8
		if m.msg.GetControlChange(&channel, &controller, &value) && controller == ccAllNotesOff {
			// All Notes Off translates into note offs for every held key
			for n := range c.held {
				if c.held[n] {
					c.held[n] = false
					c.pending = append(c.pending, jam.MIDINoteEvent{Frame: f, On: false, Note: byte(n)})
				}
			}
			if len(c.pending) > 0 {
				return c.popPending()
			}
		}
	}
	c.eventIndex = len(c.eventsBuf) + 1
	return jam.MIDINoteEvent{}, false
}

func (c *RTMIDIContext) popPending() (jam.MIDINoteEvent, bool) {
	event := c.pending[0]
	c.pending = c.pending[1:]
	return event, true
}

func (c *RTMIDIContext) FinishBlock(frame int) {
	c.startFrame += frame
	if c.eventIndex > 0 {
		copy(c.eventsBuf, c.eventsBuf[c.eventIndex-1:])
		c.eventsBuf = c.eventsBuf[:len(c.eventsBuf)-c.eventIndex+1]
		if len(c.eventsBuf) > 0 {
			// Events were not consumed this round; adjust the start frame
			// towards the future events. This tries to render the events at
			// the same time as they were received here. delta will always be
			// a negative number.
			delta := c.startFrame - c.eventsBuf[0].frame
			c.startFrame -= delta / 5
		}
	}
	c.eventIndex = 0
}
