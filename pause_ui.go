package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/shmup/ecs"
	"github.com/milk9111/shmup/ecs/component"
	"golang.org/x/image/font/basicfont"
)

var (
	uiFace      ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	uiTextColor             = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

type menuButton struct {
	label   string
	onClick func()
}

// newMenu builds a centred panel with a title, optional extra lines of text
// and a column of buttons.
func newMenu(width, height int, title string, extra []*widget.Text, buttons ...menuButton) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnHover := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x77, A: 255})
	btnTextColor := &widget.ButtonTextColor{Idle: uiTextColor}
	center := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(width/2, height/4),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(widget.NewText(
		widget.TextOpts.Text(title, &uiFace, uiTextColor),
		widget.TextOpts.WidgetOpts(center),
	))
	for _, w := range extra {
		panel.AddChild(w)
	}
	for _, b := range buttons {
		onClick := b.onClick
		panel.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Hover: btnHover, Pressed: btnImg}),
			widget.ButtonOpts.Text(b.label, &uiFace, btnTextColor),
			widget.ButtonOpts.WidgetOpts(center),
			widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
				onClick()
			}),
		))
	}

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}

func newPauseUI(g *Game) *ebitenui.UI {
	return newMenu(g.spec.Width, g.spec.Height, "Paused", nil,
		menuButton{label: "Resume", onClick: func() { g.paused = false }},
		menuButton{label: "Quit", onClick: func() { g.quit = true }},
	)
}

// gameOverUI shows the final score until the round restarts.
type gameOverUI struct {
	ui    *ebitenui.UI
	score *widget.Text
	best  *widget.Text
}

func newGameOverUI(g *Game) *gameOverUI {
	center := widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter}))
	score := widget.NewText(widget.TextOpts.Text("", &uiFace, uiTextColor), center)
	best := widget.NewText(widget.TextOpts.Text("", &uiFace, uiTextColor), center)
	ui := newMenu(g.spec.Width, g.spec.Height, "Game Over", []*widget.Text{score, best},
		menuButton{label: "Restart", onClick: func() { g.restartNow = true }},
		menuButton{label: "Quit", onClick: func() { g.quit = true }},
	)
	return &gameOverUI{ui: ui, score: score, best: best}
}

func (o *gameOverUI) Update(g *Game) {
	if died, ok := ecs.Get(g.world, g.state, component.HeroDiedComponent.Kind()); ok {
		o.score.Label = fmt.Sprintf("Score %d", died.Score)
	}
	o.best.Label = fmt.Sprintf("Best %d", g.store.Best())
	o.ui.Update()
}

func (o *gameOverUI) Draw(screen *ebiten.Image) {
	o.ui.Draw(screen)
}
