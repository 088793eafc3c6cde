package gioui

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/wavetooth/sinepad/jam"
	"golang.org/x/exp/shiny/materialdesign/icons"
)

var (
	playIcon       = mustIcon(icons.AVPlayArrow)
	stopIcon       = mustIcon(icons.AVStop)
	recordIcon     = mustIcon(icons.AVFiberManualRecord)
	panicIcon      = mustIcon(icons.AVVolumeOff)
	echoIcon       = mustIcon(icons.AVLoop)
	loadIcon       = mustIcon(icons.FileFolderOpen)
	saveIcon       = mustIcon(icons.ContentSave)
	exportIcon     = mustIcon(icons.ImageAudiotrack)
	midiIcon       = mustIcon(icons.HardwareKeyboard)
	octaveUpIcon   = mustIcon(icons.NavigationArrowUpward)
	octaveDownIcon = mustIcon(icons.NavigationArrowDownward)
)

func mustIcon(data []byte) *widget.Icon {
	icon, err := widget.NewIcon(data)
	if err != nil {
		panic(err)
	}
	return icon
}

func (u *Jam) layoutPanel(gtx C) D {
	u.handleClicks(gtx)
	inset := layout.UniformInset(unit.Dp(8))
	return inset.Layout(gtx, func(gtx C) D {
		return layout.Flex{Axis: layout.Vertical, Spacing: layout.SpaceEnd}.Layout(gtx,
			layout.Rigid(u.layoutTransport),
			layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
			layout.Rigid(u.layoutParams),
			layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
			layout.Rigid(u.layoutPresets),
			layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
			layout.Rigid(u.layoutStatus),
			layout.Rigid(layout.Spacer{Height: unit.Dp(8)}.Layout),
			layout.Rigid(u.layoutMeters),
		)
	})
}

func (u *Jam) handleClicks(gtx C) {
	for u.playBtn.Clicked(gtx) {
		u.Playing().Toggle()
	}
	for u.recordBtn.Clicked(gtx) {
		u.Recording().Toggle()
	}
	for u.panicBtn.Clicked(gtx) {
		u.Panic().Toggle()
	}
	for u.echoBtn.Clicked(gtx) {
		u.Echo().Toggle()
	}
	for u.loadBtn.Clicked(gtx) {
		u.LoadSequence().Do()
	}
	for u.saveBtn.Clicked(gtx) {
		u.SaveSequence().Do()
	}
	for u.exportBtn.Clicked(gtx) {
		u.ExportWav().Do()
	}
	for u.octaveUpBtn.Clicked(gtx) {
		u.Octave().Add(1)
	}
	for u.octaveDownBtn.Clicked(gtx) {
		u.Octave().Add(-1)
	}
	for i := range u.presetBtns {
		for u.presetBtns[i].Clicked(gtx) {
			u.SelectPreset(i).Do()
		}
	}
	for u.savePresetBtn.Clicked(gtx) {
		name := strings.TrimSpace(u.presetNameEditor.Text())
		if action := u.SaveUserPreset(name); action.Enabled() {
			action.Do()
			u.presetNameEditor.SetText("")
		}
	}
	for u.midiBtn.Clicked(gtx) {
		devices := u.MIDI().InputDevices()
		if len(devices) == 0 {
			u.Alerts().AddNamed("MIDI", "No MIDI inputs found", jam.Warning)
			continue
		}
		u.SelectMidiInput(devices[u.midiIndex%len(devices)]).Do()
		u.midiIndex++
	}
}

func (u *Jam) layoutTransport(gtx C) D {
	th := u.Theme.Material
	iconBtn := func(btn *widget.Clickable, icon *widget.Icon, desc string, lit bool) layout.Widget {
		return func(gtx C) D {
			style := material.IconButton(th, btn, icon, desc)
			style.Size = unit.Dp(24)
			style.Inset = layout.UniformInset(unit.Dp(6))
			style.Background = surfaceColor
			style.Color = mediumEmphasisTextColor
			if lit {
				style.Color = activeLightColor
			}
			return style.Layout(gtx)
		}
	}
	play := playIcon
	if u.Playing().Value() {
		play = stopIcon
	}
	spacer := layout.Rigid(layout.Spacer{Width: unit.Dp(6)}.Layout)
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(iconBtn(&u.playBtn, play, makeHint("Play", " (%s)", "PlayingToggle"), u.Playing().Value())),
		spacer,
		layout.Rigid(func(gtx C) D {
			style := material.IconButton(th, &u.recordBtn, recordIcon, makeHint("Record", " (%s)", "RecordingToggle"))
			style.Size = unit.Dp(24)
			style.Inset = layout.UniformInset(unit.Dp(6))
			style.Background = surfaceColor
			style.Color = mediumEmphasisTextColor
			if u.Recording().Value() {
				style.Color = recordLightColor
			}
			return style.Layout(gtx)
		}),
		spacer,
		layout.Rigid(iconBtn(&u.panicBtn, panicIcon, makeHint("Panic", " (%s)", "PanicToggle"), u.Panic().Value())),
		spacer,
		layout.Rigid(iconBtn(&u.echoBtn, echoIcon, makeHint("Echo", " (%s)", "EchoToggle"), u.Echo().Value())),
		layout.Flexed(1, func(gtx C) D { return D{Size: gtx.Constraints.Min} }),
		layout.Rigid(iconBtn(&u.loadBtn, loadIcon, makeHint("Load", " (%s)", "LoadSequence"), false)),
		spacer,
		layout.Rigid(iconBtn(&u.saveBtn, saveIcon, makeHint("Save", " (%s)", "SaveSequence"), false)),
		spacer,
		layout.Rigid(iconBtn(&u.exportBtn, exportIcon, makeHint("Export wav", " (%s)", "ExportWav"), false)),
		spacer,
		layout.Rigid(iconBtn(&u.midiBtn, midiIcon, "Next MIDI device", u.MIDI().HasDeviceOpen())),
	)
}

func (u *Jam) layoutParams(gtx C) D {
	th := u.Theme.Material
	rows := make([]layout.FlexChild, 0, u.ParamCount())
	for i := 0; i < u.ParamCount(); i++ {
		i := i
		rows = append(rows, layout.Rigid(func(gtx C) D {
			return u.layoutParamRow(gtx, i)
		}))
	}
	title := material.Body2(th, "Voice parameters")
	title.Color = mediumEmphasisTextColor
	children := append([]layout.FlexChild{layout.Rigid(title.Layout)}, rows...)
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
}

func (u *Jam) layoutParamRow(gtx C, index int) D {
	th := u.Theme.Material
	p := u.Param(index)
	f := &u.sliders[index]
	if f.Update(gtx) {
		p.SetNormalized(f.Value)
	}
	if !f.Dragging() {
		f.Value = p.Normalized()
	}
	for u.resetBtns[index].Clicked(gtx) {
		p.Reset()
	}
	label := material.Body1(th, p.Name())
	label.Color = highEmphasisTextColor
	hint := material.Body2(th, p.Hint())
	hint.Color = secondaryColor
	reset := material.Button(th, &u.resetBtns[index], "reset")
	reset.TextSize = unit.Sp(10)
	reset.Inset = layout.UniformInset(unit.Dp(2))
	reset.Background = surfaceColor
	reset.Color = mediumEmphasisTextColor
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min.X = gtx.Dp(unit.Dp(90))
			return label.Layout(gtx)
		}),
		layout.Flexed(1, material.Slider(th, f).Layout),
		layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min.X = gtx.Dp(unit.Dp(70))
			return hint.Layout(gtx)
		}),
		layout.Rigid(reset.Layout),
	)
}

// layoutPresets is a button per preset plus a name field for saving the
// current panel as a user preset.
func (u *Jam) layoutPresets(gtx C) D {
	th := u.Theme.Material
	if len(u.presetBtns) != u.PresetCount() {
		u.presetBtns = make([]widget.Clickable, u.PresetCount())
	}
	title := material.Body2(th, "Presets")
	title.Color = mediumEmphasisTextColor
	buttons := func(gtx C) D {
		return u.presetList.Layout(gtx, u.PresetCount(), func(gtx C, i int) D {
			btn := material.Button(th, &u.presetBtns[i], u.PresetName(i))
			btn.TextSize = unit.Sp(12)
			btn.Inset = layout.UniformInset(unit.Dp(4))
			btn.Background = surfaceColor
			btn.Color = mediumEmphasisTextColor
			return layout.Inset{Right: unit.Dp(4)}.Layout(gtx, btn.Layout)
		})
	}
	editor := material.Editor(th, &u.presetNameEditor, "Preset name")
	editor.Color = highEmphasisTextColor
	editor.HintColor = disabledTextColor
	save := material.Button(th, &u.savePresetBtn, "Save preset")
	save.TextSize = unit.Sp(12)
	save.Inset = layout.UniformInset(unit.Dp(4))
	save.Background = surfaceColor
	save.Color = mediumEmphasisTextColor
	if strings.TrimSpace(u.presetNameEditor.Text()) == "" {
		save.Color = disabledTextColor
	}
	saveRow := func(gtx C) D {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			layout.Rigid(func(gtx C) D {
				gtx.Constraints.Min.X = gtx.Dp(unit.Dp(120))
				gtx.Constraints.Max.X = gtx.Dp(unit.Dp(200))
				return editor.Layout(gtx)
			}),
			layout.Rigid(layout.Spacer{Width: unit.Dp(8)}.Layout),
			layout.Rigid(save.Layout),
		)
	}
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(title.Layout),
		layout.Rigid(buttons),
		layout.Rigid(layout.Spacer{Height: unit.Dp(4)}.Layout),
		layout.Rigid(saveRow),
	)
}

func (u *Jam) layoutStatus(gtx C) D {
	th := u.Theme.Material
	iconBtn := func(btn *widget.Clickable, icon *widget.Icon, desc string) layout.Widget {
		return func(gtx C) D {
			style := material.IconButton(th, btn, icon, desc)
			style.Size = unit.Dp(16)
			style.Inset = layout.UniformInset(unit.Dp(4))
			style.Background = surfaceColor
			style.Color = mediumEmphasisTextColor
			return style.Layout(gtx)
		}
	}
	octave := material.Body1(th, fmt.Sprintf("Octave %d", u.Octave().Value()))
	octave.Color = highEmphasisTextColor
	status := material.Body2(th, u.statusText())
	status.Color = mediumEmphasisTextColor
	return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(iconBtn(&u.octaveDownBtn, octaveDownIcon, makeHint("Octave down", " (%s)", "OctaveSubtract"))),
		layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
		layout.Rigid(octave.Layout),
		layout.Rigid(layout.Spacer{Width: unit.Dp(4)}.Layout),
		layout.Rigid(iconBtn(&u.octaveUpBtn, octaveUpIcon, makeHint("Octave up", " (%s)", "OctaveAdd"))),
		layout.Flexed(1, func(gtx C) D { return D{Size: gtx.Constraints.Min} }),
		layout.Rigid(status.Layout),
	)
}

func (u *Jam) statusText() string {
	if u.Playing().Value() {
		return fmt.Sprintf("%.1f / %.1f s", u.PlayPosition(), u.SequenceDuration())
	}
	if n := u.SequenceLen(); n > 0 {
		return fmt.Sprintf("%d notes", n)
	}
	return ""
}

func (u *Jam) layoutMeters(gtx C) D {
	res := u.DetectorResult()
	meter := VuMeter{
		Loudness: res.Loudness[jam.LoudnessShortTerm],
		Peak:     res.Peaks[jam.PeakMomentary],
		Range:    100,
	}
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
		layout.Rigid(meter.Layout),
		layout.Rigid(layout.Spacer{Height: unit.Dp(4)}.Layout),
		layout.Rigid(u.layoutVoiceLights),
	)
}

// layoutVoiceLights draws one light per voice, lit by the envelope follower
// level of the voice.
func (u *Jam) layoutVoiceLights(gtx C) D {
	levels := u.VoiceLevels()
	size := gtx.Dp(unit.Dp(10))
	gap := gtx.Dp(unit.Dp(2))
	x := 0
	for _, level := range levels {
		t := min(level*4, 1)
		c := lerpColor(inactiveLightColor, activeLightColor, t)
		paint.FillShape(gtx.Ops, c, clip.Rect(image.Rect(x, 0, x+size, size)).Op())
		x += size + gap
	}
	return D{Size: image.Point{X: x - gap, Y: size}}
}

func lerpColor(a, b color.NRGBA, t float32) color.NRGBA {
	return color.NRGBA{
		R: uint8(float32(a.R) + (float32(b.R)-float32(a.R))*t),
		G: uint8(float32(a.G) + (float32(b.G)-float32(a.G))*t),
		B: uint8(float32(a.B) + (float32(b.B)-float32(a.B))*t),
		A: 255,
	}
}
