// internal/platform/ui/colors.go
package ui

import "github.com/pterm/pterm"

// Paleta de colores

// Colores primarios
var (
	// SignalBlue - banner y headers
	SignalBlue = pterm.NewRGB(0, 153, 255)

	// HitGreen - endpoints found
	HitGreen = pterm.NewRGB(46, 204, 113)

	// AmberWarn - unreachable y categorías parciales
	AmberWarn = pterm.NewRGB(255, 182, 39)

	// AlertRed - categorías fallidas
	AlertRed = pterm.NewRGB(215, 38, 56)

	// DimGray - texto secundario, not found
	DimGray = pterm.NewRGB(120, 120, 120)
)

// Estilos preconfigurados para diferentes contextos
var (
	StylePrimary   = SignalBlue.ToRGBStyle()
	StyleSuccess   = HitGreen.ToRGBStyle()
	StyleWarning   = AmberWarn.ToRGBStyle()
	StyleError     = AlertRed.ToRGBStyle()
	StyleSecondary = DimGray.ToRGBStyle()
)
