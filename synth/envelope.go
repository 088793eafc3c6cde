package synth

// envStateDone is the zero value so that a fresh voice counts as free.
const (
	envStateDone = iota
	envStateAttack
	envStateSustain
	envStateRelease
)

// envelope is a breakpoint-linear amplitude envelope tracing 0 -> 1 -> 1 ->
// 0: a linear attack to full level, an indefinite sustain until released,
// and a linear release back to zero. Releasing mid-attack ramps down from
// wherever the attack got to.
type envelope struct {
	state      int
	level      float32
	delta      float32 // level change per sample during attack
	relStart   float32 // level the release started from
	relDelta   float32 // relStart fraction released per sample
	sampleRate int
}

func (e *envelope) trigger(attackTime float32) {
	e.state = envStateAttack
	e.level = 0
	e.delta = 1 / (attackTime * float32(e.sampleRate))
}

func (e *envelope) release(releaseTime float32) {
	if e.state == envStateRelease || e.state == envStateDone {
		return
	}
	e.state = envStateRelease
	e.relStart = e.level
	e.relDelta = 1 / (releaseTime * float32(e.sampleRate))
}

func (e *envelope) done() bool {
	return e.state == envStateDone
}

func (e *envelope) next() float32 {
	switch e.state {
	case envStateAttack:
		e.level += e.delta
		if e.level >= 1 {
			e.level = 1
			e.state = envStateSustain
		}
	case envStateSustain:
		// holds until release
	case envStateRelease:
		e.level -= e.relStart * e.relDelta
		if e.level <= 0 {
			e.level = 0
			e.state = envStateDone
		}
	}
	return e.level
}
