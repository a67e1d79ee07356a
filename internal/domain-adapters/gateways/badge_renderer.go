package gateways

import (
	"fmt"
	"io"

	"github.com/narqo/go-badge"
)

// DefaultBadgeColor is the value field color used when none is configured
const DefaultBadgeColor = "#007ec6"

// BadgeRenderer draws a two-field flat badge (label on the left, value on the right) as SVG
type BadgeRenderer struct{}

// NewBadgeRenderer creates a new badge renderer
func NewBadgeRenderer() *BadgeRenderer {
	return &BadgeRenderer{}
}

// Render writes the SVG for label/value to w. color is any SVG color (e.g. "#007ec6").
func (r *BadgeRenderer) Render(w io.Writer, label, value, color string) error {
	if color == "" {
		color = DefaultBadgeColor
	}
	if err := badge.Render(label, value, badge.Color(color), w); err != nil {
		return fmt.Errorf("failed to render badge: %w", err)
	}
	return nil
}
