package tw

import (
	"strings"
	"sync"

	"github.com/gogpu/gg"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// defaultPalette is the subset of the Tailwind colour scale the toolkit
// ships with. Applications add their own names with RegisterColor.
var defaultPalette = map[string]string{
	"white": "#ffffff",
	"black": "#000000",

	"gray-50": "#f9fafb", "gray-100": "#f3f4f6", "gray-200": "#e5e7eb",
	"gray-300": "#d1d5db", "gray-400": "#9ca3af", "gray-500": "#6b7280",
	"gray-600": "#4b5563", "gray-700": "#374151", "gray-800": "#1f2937",
	"gray-900": "#111827",

	"blue-50": "#eff6ff", "blue-100": "#dbeafe", "blue-200": "#bfdbfe",
	"blue-300": "#93c5fd", "blue-400": "#60a5fa", "blue-500": "#3b82f6",
	"blue-600": "#2563eb", "blue-700": "#1d4ed8", "blue-800": "#1e40af",
	"blue-900": "#1e3a8a",

	"red-50": "#fef2f2", "red-100": "#fee2e2", "red-200": "#fecaca",
	"red-300": "#fca5a5", "red-400": "#f87171", "red-500": "#ef4444",
	"red-600": "#dc2626", "red-700": "#b91c1c", "red-800": "#991b1b",
	"red-900": "#7f1d1d",

	"green-50": "#f0fdf4", "green-100": "#dcfce7", "green-200": "#bbf7d0",
	"green-300": "#86efac", "green-400": "#4ade80", "green-500": "#22c55e",
	"green-600": "#16a34a", "green-700": "#15803d", "green-800": "#166534",
	"green-900": "#14532d",
}

var (
	paletteMu sync.RWMutex
	palette   = loadPalette(defaultPalette)
)

func loadPalette(src map[string]string) map[string]gg.RGBA {
	out := make(map[string]gg.RGBA, len(src)+1)
	for name, hex := range src {
		c, ok := parseColor(hex)
		if !ok {
			panic("tw: bad palette entry " + name)
		}
		out[name] = c
	}
	out["transparent"] = gg.RGBA{}
	return out
}

// RegisterColor adds or replaces a named colour, so "bg-brand" works after
// RegisterColor("brand", "#1da1f2").
func RegisterColor(name, hex string) error {
	c, ok := parseColor(hex)
	if !ok {
		return errors.Errorf("tw: invalid colour %q for %q", hex, name)
	}
	paletteMu.Lock()
	palette[name] = c
	paletteMu.Unlock()
	clearStyleCache()
	return nil
}

// LookupColor returns the palette colour for name.
func LookupColor(name string) (gg.RGBA, bool) {
	paletteMu.RLock()
	defer paletteMu.RUnlock()
	c, ok := palette[name]
	return c, ok
}

// parseColor parses #RGB, #RRGGBB and #RRGGBBAA.
func parseColor(value string) (gg.RGBA, bool) {
	value = strings.TrimSpace(value)
	if !strings.HasPrefix(value, "#") {
		return gg.RGBA{}, false
	}
	alpha := 1.0
	if len(value) == 9 {
		a, err := colorful.Hex("#" + value[7:9] + "0000")
		if err != nil {
			return gg.RGBA{}, false
		}
		alpha = a.R
		value = value[:7]
	}
	c, err := colorful.Hex(value)
	if err != nil {
		return gg.RGBA{}, false
	}
	return gg.RGBA{R: c.R, G: c.G, B: c.B, A: alpha}, true
}
