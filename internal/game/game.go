package game

import (
	"fmt"
	"image/color"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Iso-Frontier/internal/logger"
)

// simSpeeds are the selectable simulation multipliers; 0 is paused.
var simSpeeds = []float64{0, 0.5, 1, 2, 4}

const (
	feedLines       = 8
	noticeFrames    = 120
	hudLineHeight   = 16
	overlayTextSize = 3
)

// keyBindings maps physical keys to logical inputs. Several keys may share a
// logical key.
var keyBindings = []struct {
	phys ebiten.Key
	key  Key
}{
	{ebiten.KeyW, KeyUp}, {ebiten.KeyArrowUp, KeyUp},
	{ebiten.KeyS, KeyDown}, {ebiten.KeyArrowDown, KeyDown},
	{ebiten.KeyA, KeyLeft}, {ebiten.KeyArrowLeft, KeyLeft},
	{ebiten.KeyD, KeyRight}, {ebiten.KeyArrowRight, KeyRight},
	{ebiten.KeySpace, KeyMelee},
	{ebiten.KeyF, KeyRanged},
}

// Game is the ebiten shell around a GameState.
type Game struct {
	state    *GameState
	renderer *Renderer
	face     text.Face

	width  int
	height int

	showHUD bool

	// Simulation speed control.
	simSpeed  float64 // multiplier: 0=paused, 0.5, 1, 2, 4
	tickAccum float64 // fractional tick accumulator for sub-1x speeds

	notice       string
	noticeFrames int
}

// New wraps gs in an ebiten game.
func New(gs *GameState) *Game {
	cfg := gs.Tuning.Render
	return &Game{
		state:    gs,
		renderer: NewRenderer(cfg),
		face:     text.NewGoXFace(basicfont.Face7x13),
		width:    cfg.ViewWidth,
		height:   cfg.ViewHeight,
		showHUD:  true,
		simSpeed: 1,
	}
}

func (g *Game) Update() error {
	// Commands are handled every frame regardless of sim speed.
	g.handleCommands()
	if g.noticeFrames > 0 {
		g.noticeFrames--
	}

	if g.simSpeed <= 0 {
		return nil
	}
	keys := pollKeys()

	// For speeds > 1 run multiple sim ticks per frame.
	// For speeds < 1 accumulate fractions.
	g.tickAccum += g.simSpeed
	for g.tickAccum >= 1.0 {
		g.tickAccum -= 1.0
		g.state.Step(keys)
	}
	return nil
}

// pollKeys reads the held movement and attack keys.
func pollKeys() Keys {
	keys := Keys{}
	for _, b := range keyBindings {
		if ebiten.IsKeyPressed(b.phys) {
			keys[b.key] = true
		}
	}
	return keys
}

// handleCommands processes edge-triggered keys.
func (g *Game) handleCommands() {
	gs := g.state
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		gs.ResetWorld()
		g.tickAccum = 0
		g.say("new world")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) && gs.Phase == PhaseDefeated {
		gs.Retry()
		g.tickAccum = 0
		g.say("retry")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		if err := copySummary(gs); err != nil {
			logger.Log.WithError(err).Warn("clipboard copy failed")
			g.say("clipboard unavailable")
		} else {
			g.say("summary copied")
		}
	}

	// Sim speed controls: P=pause/resume, ,=slower, .=faster.
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		if g.simSpeed > 0 {
			g.simSpeed = 0
		} else {
			g.simSpeed = 1
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyComma) {
		g.simSpeed = slowerSpeed(g.simSpeed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPeriod) {
		g.simSpeed = fasterSpeed(g.simSpeed)
	}
}

func slowerSpeed(cur float64) float64 {
	for i := len(simSpeeds) - 1; i >= 0; i-- {
		if simSpeeds[i] < cur {
			return simSpeeds[i]
		}
	}
	return simSpeeds[0]
}

func fasterSpeed(cur float64) float64 {
	for _, s := range simSpeeds {
		if s > cur {
			return s
		}
	}
	return simSpeeds[len(simSpeeds)-1]
}

// copySummary puts the world summary on the system clipboard.
func copySummary(gs *GameState) error {
	if err := clipboard.WriteAll(Summary(gs)); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}

func (g *Game) say(msg string) {
	g.notice = msg
	g.noticeFrames = noticeFrames
}

func (g *Game) Draw(screen *ebiten.Image) {
	gs := g.state
	g.renderer.RenderFrame(gs, NewImageSurface(screen))
	g.drawHealthBars(screen)

	if g.showHUD {
		g.drawHUD(screen)
		drawFeed(screen, gs.FeedLines(feedLines))
	}
	if g.noticeFrames > 0 {
		g.print(screen, g.notice, float64(g.width)/2-float64(len(g.notice))*3.5, 12, color.RGBA{R: 255, G: 235, B: 150, A: 255})
	}
	if gs.Phase == PhaseDefeated {
		g.drawDefeat(screen)
	}
}

// drawHealthBars puts a small bar above every wounded actor.
func (g *Game) drawHealthBars(screen *ebiten.Image) {
	gs := g.state
	cam := gs.Camera()
	bar := func(a *Actor) {
		if a.HP >= a.MaxHP || !a.Alive() {
			return
		}
		sx, sy := g.renderer.Proj.Project(a.X, a.Y, cam)
		x := float32(sx) - 10
		y := float32(sy) - float32(legHeight+bodyHeight) - 10
		frac := float32(a.HP) / float32(a.MaxHP)
		vector.FillRect(screen, x, y, 20, 3, color.RGBA{R: 40, G: 10, B: 10, A: 220}, false)
		vector.FillRect(screen, x, y, 20*frac, 3, color.RGBA{R: 220, G: 60, B: 60, A: 255}, false)
	}
	bar(&gs.Player.Actor)
	for _, e := range gs.Enemies {
		bar(&e.Actor)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	gs := g.state
	p := gs.Player

	speedStr := "1x"
	if g.simSpeed == 0 {
		speedStr = "PAUSED"
	} else if g.simSpeed != 1 {
		speedStr = fmt.Sprintf("%gx", g.simSpeed)
	}

	intruded := 0
	for _, c := range gs.World.Camps {
		if c.Intruded {
			intruded++
		}
	}

	// Health bar.
	const barW = 200
	frac := float32(p.HP) / float32(p.MaxHP)
	vector.FillRect(screen, 8, 8, barW, 12, color.RGBA{R: 40, G: 10, B: 10, A: 220}, false)
	vector.FillRect(screen, 8, 8, barW*frac, 12, color.RGBA{R: 200, G: 40, B: 40, A: 255}, false)
	vector.StrokeRect(screen, 8, 8, barW, 12, 1, color.RGBA{R: 230, G: 230, B: 230, A: 200}, false)

	lines := []string{
		fmt.Sprintf("HP %d/%d", p.HP, p.MaxHP),
		fmt.Sprintf("Camps %d/%d  Kills %d  Enemies %d", intruded, len(gs.World.Camps), gs.Stats.Kills, len(gs.Enemies)),
		fmt.Sprintf("SIM: %s  P=pause  ,/. speed", speedStr),
		fmt.Sprintf("Seed %d  T=%d", gs.Seed, gs.Tick),
		"WASD move  Space melee  F shoot",
		"N new world  C copy  H hide",
	}
	for i, l := range lines {
		g.print(screen, l, 8, 26+float64(i*hudLineHeight), color.White)
	}
}

// drawDefeat dims the scene and shows the retry prompt.
func (g *Game) drawDefeat(screen *ebiten.Image) {
	vector.FillRect(screen, 0, 0, float32(g.width), float32(g.height), color.RGBA{R: 0, G: 0, B: 0, A: 150}, false)

	const msg = "DEFEATED - press R to retry"
	w, h := text.Measure(msg, g.face, 0)
	op := &text.DrawOptions{}
	op.GeoM.Scale(overlayTextSize, overlayTextSize)
	op.GeoM.Translate(float64(g.width)/2-w*overlayTextSize/2, float64(g.height)/2-h*overlayTextSize/2)
	op.ColorScale.ScaleWithColor(color.RGBA{R: 240, G: 80, B: 80, A: 255})
	text.Draw(screen, msg, g.face, op)

	sub := fmt.Sprintf("survived %d ticks, %d kills", g.state.Stats.Ticks, g.state.Stats.Kills)
	sw, _ := text.Measure(sub, g.face, 0)
	g.print(screen, sub, float64(g.width)/2-sw/2, float64(g.height)/2+h*overlayTextSize, color.White)
}

func (g *Game) print(screen *ebiten.Image, s string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, g.face, op)
}

// Layout follows the window; the projection stays centred on the player.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.renderer.Resize(outsideWidth, outsideHeight)
	}
	return g.width, g.height
}
