// Package render draws a match on a terminal through tcell
// Sprites are the presentation instances handed out by the view pool
package render

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/lane-siege/engine"
)

const (
	boardX      = 4 // lane labels occupy the first columns
	boardY      = 2 // HUD and a spacer above the board
	cellWidth   = 3 // characters per board cell
	laneSpacing = 2 // screen rows per lane
)

// Stage is the scene context sprites attach to
type Stage struct {
	mu      sync.Mutex
	screen  tcell.Screen
	sprites map[*Sprite]struct{}

	rows     int
	columns  int
	cellSize float64
}

// NewStage creates a stage for a rows x columns board
func NewStage(screen tcell.Screen, rows, columns int, cellSize float64) *Stage {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &Stage{
		screen:   screen,
		sprites:  make(map[*Sprite]struct{}),
		rows:     rows,
		columns:  columns,
		cellSize: cellSize,
	}
}

// SpriteCount returns the number of attached sprites
func (s *Stage) SpriteCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sprites)
}

// Cell maps a world position to screen coordinates
func (s *Stage) Cell(x, y float64) (int, int) {
	col := int(math.Floor(x / s.cellSize * cellWidth))
	lane := int(math.Floor(y / s.cellSize))
	return boardX + col, boardY + lane*laneSpacing
}

// Draw renders the board, every active sprite and the HUD, then shows the frame
func (s *Stage) Draw(snap engine.GameSnapshot) {
	s.screen.Clear()
	style := baseStyle()

	s.drawHUD(snap, style)
	s.drawBoard(style)

	s.mu.Lock()
	for sp := range s.sprites {
		if !sp.active {
			continue
		}
		x, y := s.Cell(sp.position[0], sp.position[1])
		if s.onBoard(x, y) {
			s.screen.SetContent(x, y, sp.glyph.Rune, nil, style.Foreground(sp.glyph.Color))
		}
	}
	s.mu.Unlock()

	if snap.Phase.Terminal() {
		s.drawBanner(snap.Phase, style)
	}
	s.screen.Show()
}

func (s *Stage) onBoard(x, y int) bool {
	return x >= boardX && x <= boardX+s.columns*cellWidth && y >= boardY && y < boardY+s.rows*laneSpacing
}

func (s *Stage) drawBoard(style tcell.Style) {
	dots := style.Foreground(RgbLaneDots)
	label := style.Foreground(RgbLaneLabel)
	edge := style.Foreground(RgbDefended)
	for lane := range s.rows {
		y := boardY + lane*laneSpacing
		drawText(s.screen, 0, y, fmt.Sprintf("%2d", lane), label)
		s.screen.SetContent(boardX-1, y, '│', nil, edge)
		for col := range s.columns {
			s.screen.SetContent(boardX+col*cellWidth+1, y, '·', nil, dots)
		}
	}
}

// HUDLine formats the status line shown above the board
func HUDLine(snap engine.GameSnapshot) string {
	return fmt.Sprintf("%-9s  wave %d/%d  kills %s  through %d/%d  %s left",
		snap.Phase,
		snap.CurrentWave, snap.TotalWaves,
		humanize.Comma(int64(snap.KillCount)),
		snap.ReachedEndCount, snap.MaxReached,
		snap.RemainingTime.Truncate(time.Second))
}

func (s *Stage) drawHUD(snap engine.GameSnapshot, style tcell.Style) {
	drawText(s.screen, 0, 0, HUDLine(snap), style.Foreground(RgbStatusBar))
}

func (s *Stage) drawBanner(phase engine.GamePhase, style tcell.Style) {
	color := RgbVictory
	if phase == engine.PhaseDefeat {
		color = RgbDefeat
	}
	text := fmt.Sprintf("%s - press q to quit", phase)
	drawText(s.screen, boardX, boardY+s.rows*laneSpacing, text, style.Foreground(color).Bold(true))
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
