package config

import (
	"embed"
	"os"
	"path/filepath"
	"sync/atomic"

	"gopkg.in/yaml.v3"
)

//go:embed skins/dark.yaml skins/light.yaml
var builtinSkins embed.FS

// Color represents a hex color string.
type Color string

// TableStyle defines colors for resource tables.
type TableStyle struct {
	FgColor        Color `yaml:"fgColor"`
	BgColor        Color `yaml:"bgColor"`
	CursorFgColor  Color `yaml:"cursorFgColor"`
	CursorBgColor  Color `yaml:"cursorBgColor"`
	HeaderFgColor  Color `yaml:"headerFgColor"`
	SortIndicator  Color `yaml:"sortIndicator"`
	RunningFgColor Color `yaml:"runningFgColor"`
	StoppedFgColor Color `yaml:"stoppedFgColor"`
	PausedFgColor  Color `yaml:"pausedFgColor"`
}

// HeaderStyle defines colors for the header and tab bar.
type HeaderStyle struct {
	TitleFg Color `yaml:"titleFg"`
	LiveFg  Color `yaml:"liveFg"`  // Connected indicator
	WarnFg  Color `yaml:"warnFg"`  // Disconnected / attention
	StatsFg Color `yaml:"statsFg"` // Muted stats text
}

// FooterStyle defines colors for the key help line.
type FooterStyle struct {
	FgColor     Color `yaml:"fgColor"`
	KeyFgColor  Color `yaml:"keyFgColor"`
	DescFgColor Color `yaml:"descFgColor"`
}

// StatusStyle defines colors for status lines.
type StatusStyle struct {
	FgColor Color `yaml:"fgColor"`
}

// ModalStyle defines colors for detail panes and confirmations.
type ModalStyle struct {
	DimmedFgColor Color `yaml:"dimmedFgColor"`
	BorderFgColor Color `yaml:"borderFgColor"`
	AccentFgColor Color `yaml:"accentFgColor"`
}

// ToastStyle defines one color per notification kind.
type ToastStyle struct {
	SuccessFgColor Color `yaml:"successFgColor"`
	ErrorFgColor   Color `yaml:"errorFgColor"`
	WarningFgColor Color `yaml:"warningFgColor"`
	InfoFgColor    Color `yaml:"infoFgColor"`
}

// Styles holds all the theme colors.
type Styles struct {
	Table  TableStyle  `yaml:"table"`
	Header HeaderStyle `yaml:"header"`
	Footer FooterStyle `yaml:"footer"`
	Status StatusStyle `yaml:"status"`
	Modal  ModalStyle  `yaml:"modal"`
	Toast  ToastStyle  `yaml:"toast"`
}

// Theme is a named skin.
type Theme struct {
	Name   string `yaml:"name"`
	Styles Styles `yaml:"styles"`
}

// DefaultTheme returns the built-in dark theme without touching the
// embedded files.
func DefaultTheme() *Theme {
	return &Theme{
		Name: "dark",
		Styles: Styles{
			Table: TableStyle{
				FgColor:        "#e6edf3",
				BgColor:        "#0d1117",
				CursorFgColor:  "#ffffff",
				CursorBgColor:  "#58a6ff",
				HeaderFgColor:  "#58a6ff",
				SortIndicator:  "#3fb950",
				RunningFgColor: "#3fb950",
				StoppedFgColor: "#f85149",
				PausedFgColor:  "#d29922",
			},
			Header: HeaderStyle{
				TitleFg: "#58a6ff",
				LiveFg:  "#3fb950",
				WarnFg:  "#d29922",
				StatsFg: "#7d8590",
			},
			Footer: FooterStyle{
				FgColor:     "#e6edf3",
				KeyFgColor:  "#58a6ff",
				DescFgColor: "#7d8590",
			},
			Status: StatusStyle{FgColor: "#7d8590"},
			Modal: ModalStyle{
				DimmedFgColor: "#7d8590",
				BorderFgColor: "#30363d",
				AccentFgColor: "#58a6ff",
			},
			Toast: ToastStyle{
				SuccessFgColor: "#3fb950",
				ErrorFgColor:   "#f85149",
				WarningFgColor: "#d29922",
				InfoFgColor:    "#58a6ff",
			},
		},
	}
}

// LoadTheme resolves a skin by name: the user's skins dir first, then the
// built-in light and dark skins, then DefaultTheme.
func LoadTheme(name string) (*Theme, error) {
	if name == "" {
		name = "dark"
	}

	if dir, err := ConfigDir(); err == nil {
		userSkinPath := filepath.Join(dir, "skins", name+".yaml")
		// #nosec G304 - userSkinPath is UserConfigDir plus a skin name
		if data, err := os.ReadFile(userSkinPath); err == nil {
			var theme Theme
			if err := yaml.Unmarshal(data, &theme); err == nil {
				if theme.Name == "" {
					theme.Name = name
				}
				return &theme, nil
			}
		}
	}

	data, err := builtinSkins.ReadFile("skins/" + name + ".yaml")
	if err != nil {
		return DefaultTheme(), nil
	}

	var theme Theme
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return DefaultTheme(), err
	}
	return &theme, nil
}

var currentTheme atomic.Pointer[Theme]

// CurrentTheme returns the theme used for rendering.
func CurrentTheme() *Theme {
	return currentTheme.Load()
}

// SetTheme replaces the theme used for rendering.
func SetTheme(t *Theme) {
	if t != nil {
		currentTheme.Store(t)
	}
}

func init() {
	currentTheme.Store(DefaultTheme())
}
