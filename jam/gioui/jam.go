package gioui

import (
	"fmt"
	"image"
	"io"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/io/key"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/widget"
	"gioui.org/x/explorer"
	"github.com/wavetooth/sinepad/jam"
)

type (
	// Jam is the GUI of the app: the parameter panel, the transport buttons
	// and the level meters, on top of a jam.Model.
	Jam struct {
		Theme      *Theme
		KeyNoteMap jam.Keyboard[key.Name]
		PopupAlert *PopupAlert
		Explorer   *explorer.Explorer
		Exploring  bool

		sliders   []widget.Float
		resetBtns []widget.Clickable

		presetBtns       []widget.Clickable
		presetList       layout.List
		presetNameEditor widget.Editor
		savePresetBtn    widget.Clickable

		playBtn       widget.Clickable
		recordBtn     widget.Clickable
		panicBtn      widget.Clickable
		echoBtn       widget.Clickable
		loadBtn       widget.Clickable
		saveBtn       widget.Clickable
		exportBtn     widget.Clickable
		midiBtn       widget.Clickable
		octaveUpBtn   widget.Clickable
		octaveDownBtn widget.Clickable

		midiIndex int
		focusSet  bool

		preferences Preferences

		*jam.Model
	}

	C = layout.Context
	D = layout.Dimensions
)

func NewJam(model *jam.Model) *Jam {
	u := &Jam{
		Theme:      NewTheme(),
		KeyNoteMap: jam.MakeKeyboard[key.Name](model.Broker()),
		PopupAlert: NewPopupAlert(model.Alerts()),
		sliders:    make([]widget.Float, model.ParamCount()),
		resetBtns:  make([]widget.Clickable, model.ParamCount()),
		presetList: layout.List{Axis: layout.Horizontal},
		Model:      model,
	}
	u.presetNameEditor.SingleLine = true
	u.preferences = MakePreferences()
	if u.preferences.YmlError != nil {
		model.Alerts().AddNamed("PreferencesYml", u.preferences.YmlError.Error(), jam.Warning)
	}
	return u
}

func (u *Jam) Main() {
	var ops op.Ops
	titlePath := ""
	for !u.Quitted() {
		w := new(app.Window)
		w.Option(app.Title(titleFromPath(titlePath)), app.Size(u.preferences.WindowSize()))
		if u.preferences.Window.Maximized {
			w.Option(app.Maximized.Option())
		}
		u.Explorer = explorer.NewExplorer(w)
		acks := make(chan struct{})
		events := make(chan event.Event)
		go func() {
			for {
				ev := w.Event()
				events <- ev
				<-acks
				if _, ok := ev.(app.DestroyEvent); ok {
					return
				}
			}
		}()
	F:
		for {
			select {
			case e := <-u.Broker().ToModel:
				u.ProcessMsg(e)
				w.Invalidate()
			case <-u.Broker().CloseGUI:
				u.RequestQuit().Do()
				w.Perform(system.ActionClose)
			case e := <-events:
				switch e := e.(type) {
				case app.DestroyEvent:
					u.RequestQuit().Do()
					acks <- struct{}{}
					break F // this window is done, we need to create a new one
				case app.FrameEvent:
					if titlePath != u.FilePath() {
						titlePath = u.FilePath()
						w.Option(app.Title(titleFromPath(titlePath)))
					}
					gtx := app.NewContext(&ops, e)
					u.Layout(gtx, w)
					e.Frame(gtx.Ops)
					if u.Quitted() {
						w.Perform(system.ActionClose)
					}
				}
				acks <- struct{}{}
			}
		}
	}
	u.KeyNoteMap.ReleaseAll()
	close(u.Broker().FinishedGUI)
}

func titleFromPath(path string) string {
	if path == "" {
		return "Sinepad"
	}
	return fmt.Sprintf("Sinepad - %s", path)
}

func (u *Jam) Layout(gtx C, w *app.Window) {
	defer clip.Rect(image.Rectangle{Max: gtx.Constraints.Max}).Push(gtx.Ops).Pop()
	paint.Fill(gtx.Ops, backgroundColor)
	event.Op(gtx.Ops, u) // area for capturing key events
	if !u.focusSet {
		gtx.Execute(key.FocusCmd{Tag: u})
		u.focusSet = true
	}

	u.layoutPanel(gtx)
	u.PopupAlert.Layout(gtx, u.Theme)
	u.showDialog(gtx)

	// top level key event handler; unbound keys play notes
	for {
		ev, ok := gtx.Event(
			key.Filter{Name: "", Optional: key.ModAlt | key.ModCommand | key.ModShift | key.ModShortcut | key.ModSuper},
		)
		if !ok {
			break
		}
		if e, ok := ev.(key.Event); ok {
			u.KeyEvent(e, gtx)
		}
	}
}

func (u *Jam) showDialog(gtx C) {
	if u.Exploring {
		return
	}
	switch u.Dialog() {
	case jam.LoadSequenceExplorer:
		u.explorerChooseFile(func(r io.ReadCloser) {
			u.ReadSequenceFrom(r, "")
		}, ".synthSequence")
	case jam.SaveSequenceExplorer:
		filename := u.FilePath()
		if filename == "" {
			filename = "jam.synthSequence"
		}
		u.explorerCreateFile(func(wc io.WriteCloser) {
			u.WriteSequenceTo(wc, filename)
		}, filename)
	case jam.ExportWavExplorer:
		u.explorerCreateFile(func(wc io.WriteCloser) {
			u.ExportWavTo(wc, true)
		}, "jam.wav")
	}
}

func (u *Jam) explorerChooseFile(success func(io.ReadCloser), extensions ...string) {
	u.Exploring = true
	go func() {
		file, err := u.Explorer.ChooseFile(extensions...)
		u.Broker().ToModel <- jam.MsgToModel{Data: func() {
			u.Exploring = false
			if err == nil {
				success(file)
			} else {
				u.Cancel().Do()
				if err != explorer.ErrUserDecline {
					u.Alerts().Add(err.Error(), jam.Error)
				}
			}
		}}
	}()
}

func (u *Jam) explorerCreateFile(success func(io.WriteCloser), filename string) {
	u.Exploring = true
	go func() {
		file, err := u.Explorer.CreateFile(filename)
		u.Broker().ToModel <- jam.MsgToModel{Data: func() {
			u.Exploring = false
			if err == nil {
				success(file)
			} else {
				u.Cancel().Do()
				if err != explorer.ErrUserDecline {
					u.Alerts().Add(err.Error(), jam.Error)
				}
			}
		}}
	}()
}
