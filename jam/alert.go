package jam

import (
	"slices"
	"time"
)

type (
	// Alert is a message to the user in the GUI, with a priority and a fade
	// level for animating its appearance and disappearance. Named alerts
	// replace previous alerts with the same name instead of stacking up, so
	// repeating events (e.g. reopening the same MIDI port) show only once.
	Alert struct {
		Name      string
		Priority  AlertPriority
		Message   string
		Duration  time.Duration
		FadeLevel float64
	}

	AlertPriority int

	// Alerts is a view to the alerts in the model.
	Alerts Model
)

const (
	None AlertPriority = iota
	Info
	Warning
	Error
)

const (
	defaultAlertDuration = 3 * time.Second
	alertFadeSpeed       = 4.0 // alert fade ins & outs, per second
)

func (m *Model) Alerts() *Alerts { return (*Alerts)(m) }

func (a *Alerts) Add(message string, priority AlertPriority) {
	(*Model)(a).addAlert(Alert{Message: message, Priority: priority, Duration: defaultAlertDuration})
}

func (a *Alerts) AddNamed(name, message string, priority AlertPriority) {
	(*Model)(a).addAlert(Alert{Name: name, Message: message, Priority: priority, Duration: defaultAlertDuration})
}

func (a *Alerts) Count() int       { return len(a.alerts) }
func (a *Alerts) Item(i int) Alert { return a.alerts[i] }

func (a *Alerts) Iterate(yield func(alert Alert) bool) {
	for _, alert := range a.alerts {
		if !yield(alert) {
			break
		}
	}
}

// Update fades the alerts in and out and drops the expired ones. Returns
// true if anything changed and the GUI should animate.
func (a *Alerts) Update(d time.Duration) (animating bool) {
	for i := len(a.alerts) - 1; i >= 0; i-- {
		alert := &a.alerts[i]
		if alert.Duration >= d {
			alert.Duration -= d
			if alert.FadeLevel < 1 {
				alert.FadeLevel += alertFadeSpeed * d.Seconds()
				if alert.FadeLevel > 1 {
					alert.FadeLevel = 1
				}
				animating = true
			}
		} else {
			alert.Duration = 0
			alert.FadeLevel -= alertFadeSpeed * d.Seconds()
			animating = true
			if alert.FadeLevel < 0 {
				a.alerts = slices.Delete(a.alerts, i, i+1)
			}
		}
	}
	return animating
}

func (m *Model) addAlert(alert Alert) {
	if alert.Name != "" {
		for i := range m.alerts {
			if m.alerts[i].Name == alert.Name {
				alert.FadeLevel = m.alerts[i].FadeLevel
				m.alerts[i] = alert
				return
			}
		}
	}
	m.alerts = append(m.alerts, alert)
}
