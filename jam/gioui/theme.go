package gioui

import (
	_ "embed"
	"encoding/hex"
	"fmt"
	"image/color"
	"strings"

	"gioui.org/font/gofont"
	"gioui.org/text"
	"gioui.org/widget/material"
	"gopkg.in/yaml.v3"
)

type (
	ThemeColors struct {
		White, Primary, Secondary               hexColor
		HighEmphasis, MediumEmphasis, Disabled  hexColor
		Background, Surface                     hexColor
		Error, Warning, Info                    hexColor
		InactiveLight, ActiveLight, RecordLight hexColor
	}

	// hexColor unmarshals from a "#rrggbb" or "#rrggbbaa" string
	hexColor color.NRGBA
)

//go:embed theme.yml
var defaultThemeYaml []byte

// loadThemeColors returns the embedded theme colors, with the keys present in
// the user config file replacing the defaults.
func loadThemeColors() ThemeColors {
	var colors ThemeColors
	if err := yaml.Unmarshal(defaultThemeYaml, &colors); err != nil {
		panic(fmt.Errorf("failed to unmarshal theme: %w", err))
	}
	user := colors
	if exists, err := ReadCustomConfigYml("theme.yml", &user); exists && err == nil {
		colors = user
	}
	return colors
}

func (h *hexColor) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	b, err := hex.DecodeString(strings.TrimPrefix(s, "#"))
	if err != nil {
		return fmt.Errorf("invalid color %q: %w", s, err)
	}
	switch len(b) {
	case 3:
		*h = hexColor{R: b[0], G: b[1], B: b[2], A: 255}
	case 4:
		*h = hexColor{R: b[0], G: b[1], B: b[2], A: b[3]}
	default:
		return fmt.Errorf("invalid color %q", s)
	}
	return nil
}

func (h hexColor) nrgba() color.NRGBA { return color.NRGBA(h) }

var themeColors = loadThemeColors()

var (
	white                   = themeColors.White.nrgba()
	primaryColor            = themeColors.Primary.nrgba()
	secondaryColor          = themeColors.Secondary.nrgba()
	highEmphasisTextColor   = themeColors.HighEmphasis.nrgba()
	mediumEmphasisTextColor = themeColors.MediumEmphasis.nrgba()
	disabledTextColor       = themeColors.Disabled.nrgba()
	backgroundColor         = themeColors.Background.nrgba()
	surfaceColor            = themeColors.Surface.nrgba()
	errorColor              = themeColors.Error.nrgba()
	warningColor            = themeColors.Warning.nrgba()
	infoColor               = themeColors.Info.nrgba()
	inactiveLightColor      = themeColors.InactiveLight.nrgba()
	activeLightColor        = themeColors.ActiveLight.nrgba()
	recordLightColor        = themeColors.RecordLight.nrgba()
)

type Theme struct {
	Material *material.Theme
}

func NewTheme() *Theme {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))
	th.Palette.Bg = backgroundColor
	th.Palette.Fg = highEmphasisTextColor
	th.Palette.ContrastBg = primaryColor
	th.Palette.ContrastFg = backgroundColor
	return &Theme{Material: th}
}
