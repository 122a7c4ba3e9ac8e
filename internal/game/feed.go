package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Combat feed lines live in the event log under feedCategory. The key tells
// the panel whether the line is bad news for the player.
const (
	feedCategory = "feed"
	feedHostile  = "hostile"
	feedPlayer   = "player"

	feedPanelWidth = 300
	feedLineHeight = 14
)

var (
	feedPanelColour  = color.RGBA{R: 10, G: 12, B: 10, A: 200}
	feedBorderColour = color.RGBA{R: 50, G: 70, B: 50, A: 255}
	feedHostileDot   = color.RGBA{R: 210, G: 70, B: 70, A: 255}
	feedPlayerDot    = color.RGBA{R: 90, G: 170, B: 90, A: 255}
)

// feed posts a line to the combat feed.
func (gs *GameState) feed(label string, hostile bool, msg string) {
	key := feedPlayer
	if hostile {
		key = feedHostile
	}
	gs.event(label, feedCategory, key, msg, 0)
}

// FeedLines returns the newest n combat feed lines, oldest first.
func (gs *GameState) FeedLines(n int) []EventEntry {
	if gs.Events == nil {
		return nil
	}
	return gs.Events.Tail(feedCategory, n)
}

// drawFeed renders feed lines in a panel anchored to the bottom-left corner.
func drawFeed(screen *ebiten.Image, lines []EventEntry) {
	if len(lines) == 0 {
		return
	}
	h := screen.Bounds().Dy()
	panelH := len(lines)*feedLineHeight + 8
	panelY := float32(h - panelH - 8)
	vector.FillRect(screen, 8, panelY, feedPanelWidth, float32(panelH), feedPanelColour, false)
	vector.StrokeLine(screen, 8, panelY, 8+feedPanelWidth, panelY, 1, feedBorderColour, false)

	y := int(panelY) + 4
	for _, e := range lines {
		dot := feedPlayerDot
		if e.Key == feedHostile {
			dot = feedHostileDot
		}
		vector.FillRect(screen, 12, float32(y+4), 3, 5, dot, false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%5d [%s] %s", e.Tick, e.Actor, e.Value), 18, y)
		y += feedLineHeight
	}
}
