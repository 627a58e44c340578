package render

import "github.com/gdamore/tcell/v2"

// RGB color definitions for board, HUD and sprites
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbLaneDots   = tcell.NewRGBColor(60, 64, 90)    // Dim lane markers
	RgbLaneLabel  = tcell.NewRGBColor(180, 180, 180) // Brighter gray
	RgbStatusBar  = tcell.NewRGBColor(255, 255, 255) // White
	RgbDefended   = tcell.NewRGBColor(100, 150, 255) // Normal Blue for the defended edge

	RgbDefender   = tcell.NewRGBColor(0, 200, 0)     // Normal Green
	RgbAttacker   = tcell.NewRGBColor(255, 80, 80)   // Normal Red
	RgbProjectile = tcell.NewRGBColor(255, 255, 0)   // Bright Yellow
	RgbNeutral    = tcell.NewRGBColor(200, 200, 200) // Unknown assets

	RgbVictory = tcell.NewRGBColor(50, 255, 50)   // Bright Green
	RgbDefeat  = tcell.NewRGBColor(255, 120, 120) // Bright Red
)

// baseStyle is the style every cell starts from
func baseStyle() tcell.Style {
	return tcell.StyleDefault.Background(RgbBackground)
}
