package gioui

import (
	"bytes"
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"gioui.org/io/key"
	"github.com/wavetooth/sinepad/jam"
	"gopkg.in/yaml.v3"
)

type (
	KeyAction string

	KeyBinding struct {
		Key                                        string
		Shortcut, Ctrl, Command, Shift, Alt, Super bool
		Action                                     string
	}
)

var keyBindingMap = map[key.Event]string{}
var keyActionMap = map[KeyAction]string{} // holds an informative string of the first key bound to an action

//go:embed keybindings.yml
var defaultKeyBindings []byte

func init() {
	var keyBindings, userKeybindings []KeyBinding
	dec := yaml.NewDecoder(bytes.NewReader(defaultKeyBindings))
	dec.KnownFields(true)
	if err := dec.Decode(&keyBindings); err != nil {
		panic(fmt.Errorf("failed to unmarshal default keybindings: %w", err))
	}
	if exists, err := ReadCustomConfigYml("keybindings.yml", &userKeybindings); exists && err == nil {
		keyBindings = append(keyBindings, userKeybindings...)
	}

	for _, kb := range keyBindings {
		var mods key.Modifiers
		if kb.Shortcut {
			mods |= key.ModShortcut
		}
		if kb.Ctrl {
			mods |= key.ModCtrl
		}
		if kb.Command {
			mods |= key.ModCommand
		}
		if kb.Shift {
			mods |= key.ModShift
		}
		if kb.Alt {
			mods |= key.ModAlt
		}
		if kb.Super {
			mods |= key.ModSuper
		}

		keyEvent := key.Event{Name: key.Name(kb.Key), Modifiers: mods, State: key.Press}
		action, ok := keyBindingMap[keyEvent] // if this key has been previously bound, remove it from the hint map
		if ok {
			delete(keyActionMap, KeyAction(action))
		}
		if kb.Action == "" { // unbind
			delete(keyBindingMap, keyEvent)
		} else { // bind
			keyBindingMap[keyEvent] = kb.Action
			// last binding of the same action wins for displaying the hint
			modString := strings.Replace(mods.String(), "-", "+", -1)
			text := kb.Key
			if modString != "" {
				text = modString + "+" + text
			}
			keyActionMap[KeyAction(kb.Action)] = text
		}
	}
}

func makeHint(hint, format, action string) string {
	if keyActionMap[KeyAction(action)] != "" {
		return hint + fmt.Sprintf(format, keyActionMap[KeyAction(action)])
	}
	return hint
}

// KeyEvent handles incoming key events. Keys that are not bound to an action
// play notes through the two-row layout.
func (u *Jam) KeyEvent(e key.Event, gtx C) {
	if e.State == key.Release {
		u.KeyNoteMap.Release(e.Name)
		return
	}
	action, ok := keyBindingMap[e]
	if !ok {
		if note, ok := jam.KeyNote(string(e.Name), u.Octave().Value()); ok {
			u.KeyNoteMap.Press(e.Name, jam.NoteEvent{Note: note})
		}
		return
	}
	switch action {
	case "PlayingToggle":
		u.Playing().Toggle()
	case "RecordingToggle":
		u.Recording().Toggle()
	case "PanicToggle":
		u.Panic().Toggle()
	case "EchoToggle":
		u.Echo().Toggle()
	case "OctaveAdd":
		u.Octave().Add(1)
	case "OctaveSubtract":
		u.Octave().Add(-1)
	case "LoadSequence":
		u.LoadSequence().Do()
	case "SaveSequence":
		u.SaveSequence().Do()
	case "ExportWav":
		u.ExportWav().Do()
	case "ResetParams":
		u.ResetParams().Do()
	case "Quit":
		u.RequestQuit().Do()
	default:
		if rest, found := strings.CutPrefix(action, "Preset"); found {
			if index, err := strconv.Atoi(rest); err == nil {
				u.SelectPreset(index).Do()
			}
		}
	}
}
