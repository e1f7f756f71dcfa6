package chart

import (
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Option applies a configuration option to the Renderer.
type Option func(*Renderer)

// WithSize sets the canvas size in pixels.
func WithSize(width, height int) Option {
	return func(c *Renderer) {
		if width > 0 && height > 0 {
			c.width = width
			c.height = height
		}
	}
}

// WithDPI sets the resolution used to scale fonts.
func WithDPI(dpi float64) Option {
	return func(c *Renderer) {
		if dpi > 0 {
			c.dpi = dpi
		}
	}
}

// WithTitle sets the two title lines drawn above the plot.
func WithTitle(title, subtitle string) Option {
	return func(c *Renderer) {
		if title != "" {
			c.title = title
		}
		c.subtitle = subtitle
	}
}

// WithHighlightColor sets fill and outline of the highlighted bar.
func WithHighlightColor(fill, stroke drawing.Color) Option {
	return func(c *Renderer) {
		c.highlightFill = fill
		c.highlightStroke = stroke
	}
}

// WithPalette replaces the color source for regular bars.
func WithPalette(p func(n int) []drawing.Color) Option {
	return func(c *Renderer) {
		if p != nil {
			c.palette = p
		}
	}
}
