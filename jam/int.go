package jam

type (
	// Int is a view to an integer value in the model, with a valid range.
	// Setting the value via the view clamps it to the range.
	Int struct {
		IntData
	}

	IntData interface {
		Value() int
		setValue(int)
		Range() intRange
	}

	intRange struct {
		Min, Max int
	}
)

func MakeInt(data IntData) Int { return Int{data} }

func (v Int) Add(delta int) bool { return v.SetValue(v.Value() + delta) }

func (v Int) SetValue(value int) bool {
	if v.IntData == nil {
		return false
	}
	r := v.Range()
	value = r.Clamp(value)
	if value == v.Value() {
		return false
	}
	v.setValue(value)
	return true
}

func (v Int) Value() int {
	if v.IntData == nil {
		return 0
	}
	return v.IntData.Value()
}

func (r intRange) Clamp(value int) int {
	return max(r.Min, min(r.Max, value))
}

// Model methods to create the Int views

func (m *Model) Octave() Int { return MakeInt((*octave)(m)) }

// octave

type octave Model

func (m *octave) Value() int       { return m.octaveNum }
func (m *octave) setValue(val int) { m.octaveNum = val }
func (m *octave) Range() intRange  { return intRange{0, 9} }
