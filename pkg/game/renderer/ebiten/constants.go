package ebiten

import "image/color"

// Colour palette
var (
	colorBackground     = color.RGBA{26, 26, 46, 255}
	colorBackdrop       = color.RGBA{15, 15, 26, 255}
	colorSubtle         = color.RGBA{120, 130, 180, 255}
	colorText           = color.RGBA{200, 210, 245, 255}
	colorAction         = color.RGBA{180, 150, 250, 255}
	colorHeading        = color.RGBA{150, 160, 200, 255}
	colorHighlight      = color.RGBA{100, 60, 160, 255}
	colorPanel          = color.RGBA{10, 6, 16, 220}
	colorMainPanel      = color.RGBA{10, 6, 16, 180}
	colorToast          = color.RGBA{30, 30, 50, 230}
	colorToastBorder    = color.RGBA{255, 220, 100, 255}
	colorFeatureOverlay = color.RGBA{0, 0, 0, 70}
)

const (
	uiFontSize    = 18.0
	titleFontSize = 22.0
	lineSpacing   = 10
	panelPadding  = 24
	columnGap     = 32
)

const (
	keyRepeatInitialDelay = 400 // milliseconds before the first repeat
	keyRepeatInterval     = 150 // milliseconds between repeats
)
