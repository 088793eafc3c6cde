package sinepad

import "fmt"

type (
	// Params are the live voice parameters, shown in the GUI panel and
	// copied into a voice when it is triggered.
	Params struct {
		Amplitude   float32 `yaml:"amplitude"`
		Frequency   float32 `yaml:"frequency"`
		AttackTime  float32 `yaml:"attacktime"`
		ReleaseTime float32 `yaml:"releasetime"`
		Pan         float32 `yaml:"pan"`
	}

	// Preset is a named snapshot of the panel.
	Preset struct {
		Name   string `yaml:"name"`
		Params Params `yaml:"params"`
	}

	// ParamDef documents one of the parameters: its bounds, default value
	// and how to display it to the user.
	ParamDef struct {
		Name        string
		Min         float32
		Max         float32
		Default     float32
		DisplayFunc func(value float32) (string, string) // value, unit
	}
)

// ParamDefs lists the voice parameters in panel order.
var ParamDefs = []ParamDef{
	{Name: "amplitude", Min: 0, Max: 1, Default: 0.3, DisplayFunc: plainValue},
	{Name: "frequency", Min: 20, Max: 5000, Default: 60, DisplayFunc: func(v float32) (string, string) {
		return fmt.Sprintf("%.0f", v), "Hz"
	}},
	{Name: "attacktime", Min: 0.01, Max: 3, Default: 1, DisplayFunc: seconds},
	{Name: "releasetime", Min: 0.1, Max: 10, Default: 3, DisplayFunc: seconds},
	{Name: "pan", Min: -1, Max: 1, Default: 0, DisplayFunc: plainValue},
}

func plainValue(v float32) (string, string) { return fmt.Sprintf("%.2f", v), "" }
func seconds(v float32) (string, string)    { return fmt.Sprintf("%.2f", v), "s" }

// DefaultParams returns the panel defaults.
func DefaultParams() Params {
	var p Params
	for i, d := range ParamDefs {
		*p.field(i) = d.Default
	}
	return p
}

// field maps ParamDefs indices to struct fields, keeping the two in the same
// order.
func (p *Params) field(index int) *float32 {
	switch index {
	case 0:
		return &p.Amplitude
	case 1:
		return &p.Frequency
	case 2:
		return &p.AttackTime
	case 3:
		return &p.ReleaseTime
	case 4:
		return &p.Pan
	}
	panic("no such parameter")
}

// Get returns the value of the parameter at a ParamDefs index.
func (p Params) Get(index int) float32 { return *p.field(index) }

// Set sets the parameter at a ParamDefs index, clamping to its bounds.
func (p *Params) Set(index int, value float32) {
	d := ParamDefs[index]
	if value < d.Min {
		value = d.Min
	}
	if value > d.Max {
		value = d.Max
	}
	*p.field(index) = value
}

// Clamp forces every parameter within its documented bounds. Used after
// unmarshaling presets from untrusted yaml.
func (p *Params) Clamp() {
	for i := range ParamDefs {
		p.Set(i, p.Get(i))
	}
}
