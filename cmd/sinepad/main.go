package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"gioui.org/app"
	"github.com/wavetooth/sinepad"
	"github.com/wavetooth/sinepad/jam"
	"github.com/wavetooth/sinepad/jam/gioui"
	"github.com/wavetooth/sinepad/jam/gomidi"
	"github.com/wavetooth/sinepad/oto"
	"github.com/wavetooth/sinepad/synth"
)

var cpuprofile = flag.String("cpuprofile", "", "write cpu profile to `file`")
var memprofile = flag.String("memprofile", "", "write memory profile to `file`")
var defaultMidiInput = flag.String("midi", "", "connect MIDI input to matching device name prefix")

func main() {
	flag.Parse()
	var f *os.File
	if *cpuprofile != "" {
		var err error
		f, err = os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
	}
	audioContext, err := oto.NewContext()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	broker := jam.NewBroker()
	midiContext := gomidi.NewContext()
	defer midiContext.Close()
	midiContext.TryToOpenBy(*defaultMidiInput, false)
	model := jam.NewModel(broker, synth.Synther{}, midiContext)
	player := jam.NewPlayer(broker, synth.Synther{})
	detector := jam.NewDetector(broker)
	go detector.Run()

	if a := flag.Args(); len(a) > 0 {
		if f, err := os.Open(a[0]); err == nil {
			model.ReadSequenceFrom(f, a[0])
		} else {
			log.Printf("could not open %s: %v", a[0], err)
		}
	}

	ui := gioui.NewJam(model)
	audioCloser := audioContext.Play(func(buf sinepad.AudioBuffer) error {
		player.Process(buf, midiContext)
		return nil
	})

	go func() {
		ui.Main()
		audioCloser.Close()
		jam.TrySend(broker.CloseDetector, struct{}{})
		jam.TimeoutReceive(broker.FinishedDetector, time.Second)
		if *cpuprofile != "" {
			pprof.StopCPUProfile()
			f.Close()
		}
		if *memprofile != "" {
			f, err := os.Create(*memprofile)
			if err != nil {
				log.Fatal("could not create memory profile: ", err)
			}
			defer f.Close() // error handling omitted for example
			runtime.GC()    // get up-to-date statistics
			if err := pprof.WriteHeapProfile(f); err != nil {
				log.Fatal("could not write memory profile: ", err)
			}
		}
		os.Exit(0)
	}()
	app.Main()
}
