package main

import (
	"image/color"

	"golang.org/x/image/font/basicfont"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/dollhouse/state"
)

// panel is the control strip along the left edge. Every button maps to one
// input command.
type panel struct {
	ui     *ebitenui.UI
	status *widget.Text
}

type panelButton struct {
	label   string
	onClick func()
}

func newPanel(g *Game) *panel {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 180})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnHover := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}

	status := widget.NewText(
		widget.TextOpts.Text(g.engine.Status(), &face, white),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionStart})),
	)

	e := g.engine
	buttons := []panelButton{
		{"Lights", func() { e.Toggle(state.FlagLight) }},
		{"Fan", func() { e.Toggle(state.FlagFan) }},
		{"Gate", func() { e.Toggle(state.FlagGate) }},
		{"TV", func() { e.Toggle(state.FlagTV) }},
		{"Sound", func() { e.Toggle(state.FlagSound) }},
		{"Outside", func() { e.SwitchView(state.Exterior) }},
		{"Inside", func() { e.SwitchView(state.Interior) }},
		{"Living room", func() { e.SwitchRoom(state.Living) }},
		{"Kitchen", func() { e.SwitchRoom(state.Kitchen) }},
		{"Bedroom", func() { e.SwitchRoom(state.Bedroom) }},
		{"Reset", e.Reset},
		{"Fullscreen", func() { e.Toggle(state.FlagFullscreen) }},
		{"Copy state", g.copySnapshot},
	}

	container := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(6),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 12, Bottom: 12, Left: 12, Right: 12}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionStart, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	container.AddChild(status)

	for _, b := range buttons {
		onClick := b.onClick
		container.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Hover: btnHover, Pressed: btnImg}),
			widget.ButtonOpts.Text(b.label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(140, 0),
				widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true}),
			),
			widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
				onClick()
			}),
		))
	}

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(container)

	return &panel{ui: &ebitenui.UI{Container: root}, status: status}
}

func (p *panel) setStatus(s string) {
	if p.status.Label != s {
		p.status.Label = s
	}
}
