package testutil

import (
	"context"
	"sync"

	"github.com/example/brandforge/internal/models"
	"github.com/example/brandforge/internal/services"
)

// StubModel answers every model capability with fixed values. Set an Err
// field to make that capability fail.
type StubModel struct {
	Symbols        services.LogoSymbols
	SymbolsErr     error
	Preferences    services.ColorPreferences
	PreferencesErr error
	Personality    services.BrandPersonality
	PersonalityErr error
	Palette        models.ColorPalette
	PaletteErr     error
	Fonts          models.FontPairing
	FontsErr       error
	Tagline        string
	TaglineErr     error
	LogoSVG        string
	LogoErr        error
	Unconfigured   bool
	// PanicInFonts makes SuggestFontPairing panic.
	PanicInFonts bool

	mu              sync.Mutex
	paletteRequests []services.PaletteRequest
	logoRequests    []services.LogoRequest
}

func NewStubModel() *StubModel {
	return &StubModel{
		Symbols:     services.LogoSymbols{Primary: "rocket", Secondary: "orbit", Mood: "bold"},
		Preferences: services.ColorPreferences{Mood: "bold", Trend: "vibrant", Keywords: []string{"speed"}},
		Personality: services.BrandPersonality{Traits: []string{"daring", "precise"}, Tone: "confident"},
		Palette: models.ColorPalette{
			Primary:    "#112233",
			Secondary:  "#445566",
			Accent:     "#FF6600",
			Neutral:    "#333333",
			Background: "#FFFFFF",
		},
		Fonts:   models.FontPairing{Primary: "Montserrat", Secondary: "Merriweather"},
		Tagline: "Reach further.",
		LogoSVG: "Sure!\n<svg width=\"64\" height=\"64\"><!-- x --><circle cx=\"32\" cy=\"32\" r=\"30\" fill=\"#112233\"/></svg>",
	}
}

// Generators exposes m as every pipeline capability.
func (m *StubModel) Generators() services.Generators {
	return services.Generators{
		Symbols:     m,
		Preferences: m,
		Personality: m,
		Palette:     m,
		Fonts:       m,
		Tagline:     m,
		Logo:        m,
	}
}

// PaletteRequests returns the palette requests received so far.
func (m *StubModel) PaletteRequests() []services.PaletteRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]services.PaletteRequest(nil), m.paletteRequests...)
}

// LogoRequests returns the logo requests received so far.
func (m *StubModel) LogoRequests() []services.LogoRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]services.LogoRequest(nil), m.logoRequests...)
}

func (m *StubModel) ExtractLogoSymbols(context.Context, services.BrandContext) (services.LogoSymbols, error) {
	return m.Symbols, m.SymbolsErr
}

func (m *StubModel) ExtractColorPreferences(context.Context, services.BrandContext) (services.ColorPreferences, error) {
	return m.Preferences, m.PreferencesErr
}

func (m *StubModel) ExtractBrandPersonality(context.Context, services.BrandContext) (services.BrandPersonality, error) {
	return m.Personality, m.PersonalityErr
}

func (m *StubModel) GenerateColorPalette(_ context.Context, req services.PaletteRequest) (models.ColorPalette, error) {
	m.mu.Lock()
	m.paletteRequests = append(m.paletteRequests, req)
	m.mu.Unlock()
	return m.Palette, m.PaletteErr
}

func (m *StubModel) SuggestFontPairing(context.Context, services.BrandContext) (models.FontPairing, error) {
	if m.PanicInFonts {
		panic("font service exploded")
	}
	return m.Fonts, m.FontsErr
}

func (m *StubModel) GenerateTagline(context.Context, services.BrandContext) (string, error) {
	return m.Tagline, m.TaglineErr
}

func (m *StubModel) Configured() bool {
	return !m.Unconfigured
}

func (m *StubModel) GenerateLogo(_ context.Context, req services.LogoRequest) (string, error) {
	m.mu.Lock()
	m.logoRequests = append(m.logoRequests, req)
	m.mu.Unlock()
	if m.Unconfigured {
		return "", services.ErrNotConfigured
	}
	return m.LogoSVG, m.LogoErr
}
