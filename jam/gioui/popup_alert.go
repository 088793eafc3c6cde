package gioui

import (
	"image"
	"image/color"
	"time"

	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget/material"
	"github.com/wavetooth/sinepad/jam"
)

type PopupAlert struct {
	alerts     *jam.Alerts
	prevUpdate time.Time
}

var alertMargin = layout.UniformInset(unit.Dp(6))
var alertInset = layout.UniformInset(unit.Dp(6))

func NewPopupAlert(alerts *jam.Alerts) *PopupAlert {
	return &PopupAlert{alerts: alerts, prevUpdate: time.Now()}
}

func (a *PopupAlert) Layout(gtx C, th *Theme) D {
	now := time.Now()
	if a.alerts.Update(now.Sub(a.prevUpdate)) {
		gtx.Execute(op.InvalidateCmd{At: now.Add(50 * time.Millisecond)})
	}
	a.prevUpdate = now

	var totalY float64 = float64(gtx.Dp(38))
	for alert := range a.alerts.Iterate {
		var bg, fg color.NRGBA
		switch alert.Priority {
		case jam.Warning:
			bg, fg = warningColor, backgroundColor
		case jam.Error:
			bg, fg = errorColor, backgroundColor
		default:
			bg, fg = infoColor, highEmphasisTextColor
		}
		bgWidget := func(gtx C) D {
			paint.FillShape(gtx.Ops, bg, clip.Rect{
				Max: gtx.Constraints.Min,
			}.Op())
			return D{Size: gtx.Constraints.Min}
		}
		labelStyle := material.Body2(th.Material, alert.Message)
		labelStyle.Color = fg
		alertMargin.Layout(gtx, func(gtx C) D {
			return layout.S.Layout(gtx, func(gtx C) D {
				defer op.Offset(image.Point{}).Push(gtx.Ops).Pop()
				gtx.Constraints.Min.X = gtx.Constraints.Max.X
				recording := op.Record(gtx.Ops)
				dims := layout.Stack{Alignment: layout.Center}.Layout(gtx,
					layout.Expanded(bgWidget),
					layout.Stacked(func(gtx C) D {
						return alertInset.Layout(gtx, labelStyle.Layout)
					}),
				)
				macro := recording.Stop()
				delta := float64(dims.Size.Y + gtx.Dp(alertMargin.Bottom))
				op.Offset(image.Point{0, int(-totalY*alert.FadeLevel + delta*(1-alert.FadeLevel))}).Add(gtx.Ops)
				totalY += delta
				macro.Add(gtx.Ops)
				return dims
			})
		})
	}
	return D{}
}
