package shipdata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/shipyard/internal/component"
)

// ParseHexColor converts "#RRGGBB" (the # is optional) to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %s", hex)
	}

	rgb, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %s: %w", hex, err)
	}
	return tcell.NewHexColor(int32(rgb)), nil
}

// categoryColors is the fallback palette for tiles built outside the catalog.
var categoryColors = map[component.Category]tcell.Color{
	component.CategoryStructural:  tcell.ColorGray,
	component.CategoryCabin:       tcell.ColorSteelBlue,
	component.CategoryCargo:       tcell.ColorGold,
	component.CategoryBattery:     tcell.ColorGreen,
	component.CategoryCannon:      tcell.ColorMediumPurple,
	component.CategoryEngine:      tcell.ColorOrange,
	component.CategoryShield:      tcell.ColorTeal,
	component.CategoryLifeSupport: tcell.ColorPlum,
}

// CategoryColor returns the default color for a tile category.
func CategoryColor(c component.Category) tcell.Color {
	if color, ok := categoryColors[c]; ok {
		return color
	}
	return tcell.ColorDefault
}

// TileColor returns the catalog color for t, falling back to its category.
func (c *Catalog) TileColor(t *component.Tile) tcell.Color {
	if def := c.GetByID(t.ID); def != nil {
		if color, err := ParseHexColor(def.Color); err == nil {
			return color
		}
	}
	return CategoryColor(t.Category())
}
