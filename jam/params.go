package jam

import (
	"fmt"

	"github.com/wavetooth/sinepad"
)

// Parameter is a view to one synth parameter in the model, tied to a slider
// in the GUI. Setting the value clamps it to the parameter range and sends
// the new parameters to the player.
type Parameter struct {
	m     *Model
	index int
}

func (m *Model) ParamCount() int           { return len(sinepad.ParamDefs) }
func (m *Model) Param(index int) Parameter { return Parameter{m: m, index: index} }

func (p Parameter) Def() sinepad.ParamDef { return sinepad.ParamDefs[p.index] }
func (p Parameter) Name() string          { return p.Def().Name }
func (p Parameter) Value() float32        { return p.m.params.Get(p.index) }

func (p Parameter) SetValue(value float32) {
	if value == p.m.params.Get(p.index) {
		return
	}
	p.m.params.Set(p.index, value)
	p.m.sendParams()
}

// Normalized maps the value to [0,1] for slider widgets.
func (p Parameter) Normalized() float32 {
	def := p.Def()
	return (p.Value() - def.Min) / (def.Max - def.Min)
}

func (p Parameter) SetNormalized(value float32) {
	def := p.Def()
	p.SetValue(def.Min + value*(def.Max-def.Min))
}

// Hint is the value as shown next to the slider, e.g. "440.0 Hz".
func (p Parameter) Hint() string {
	value, unit := p.Def().DisplayFunc(p.Value())
	if unit == "" {
		return value
	}
	return fmt.Sprintf("%s %s", value, unit)
}

func (p Parameter) Reset() { p.SetValue(p.Def().Default) }
