package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/example/brandforge/internal/models"
)

var hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// GenerateColorPalette asks for a five-slot palette. Any slot that is not a
// hex color fails the whole palette.
func (c *GroqClient) GenerateColorPalette(ctx context.Context, req PaletteRequest) (models.ColorPalette, error) {
	const system = "You are a brand designer. Create a cohesive color palette. " +
		`Reply with JSON only: {"primary": "#RRGGBB", "secondary": "#RRGGBB", "accent": "#RRGGBB", ` +
		`"neutral": "#RRGGBB", "background": "#RRGGBB"}. ` +
		"Ensure text in the neutral color is readable on the background color."

	user := describeBrand(req.BrandContext) +
		fmt.Sprintf("Color mood: %s\nColor trend: %s\n", req.Preferences.Mood, req.Preferences.Trend)
	if len(req.Preferences.Keywords) > 0 {
		user += "Keywords: " + strings.Join(req.Preferences.Keywords, ", ") + "\n"
	}

	var out models.ColorPalette
	if err := c.chatJSON(ctx, "generate_palette", system, user, &out); err != nil {
		return models.ColorPalette{}, err
	}

	for _, hex := range []*string{&out.Primary, &out.Secondary, &out.Accent, &out.Neutral, &out.Background} {
		*hex = strings.ToUpper(strings.TrimSpace(*hex))
		if !hexColorRe.MatchString(*hex) {
			return models.ColorPalette{}, fmt.Errorf("generate_palette: %q: %w", *hex, ErrInvalidPalette)
		}
	}
	return out, nil
}

// SuggestFontPairing asks for a heading and a body font from Google Fonts.
func (c *GroqClient) SuggestFontPairing(ctx context.Context, in BrandContext) (models.FontPairing, error) {
	const system = "You are a typographer. Pick a heading font and a body font, both available on Google Fonts. " +
		`Reply with JSON only: {"primary": string, "secondary": string}.`

	var out models.FontPairing
	if err := c.chatJSON(ctx, "suggest_fonts", system, describeBrand(in), &out); err != nil {
		return models.FontPairing{}, err
	}

	out.Primary = strings.TrimSpace(out.Primary)
	out.Secondary = strings.TrimSpace(out.Secondary)
	if out.Primary == "" || out.Secondary == "" {
		return models.FontPairing{}, fmt.Errorf("suggest_fonts: incomplete pairing: %w", ErrEmptyResponse)
	}
	return out, nil
}

// GenerateTagline asks for a single short tagline.
func (c *GroqClient) GenerateTagline(ctx context.Context, in BrandContext) (string, error) {
	const system = "You are a copywriter. Write one memorable tagline of at most eight words. " +
		"Reply with the tagline only, no quotes or explanation."

	text, err := c.chatText(ctx, "generate_tagline", c.cfg.TextModel, system, describeBrand(in), 0.9, 60)
	if err != nil {
		return "", err
	}

	line := strings.TrimSpace(strings.SplitN(text, "\n", 2)[0])
	line = strings.Trim(line, "\"'“”")
	if line == "" {
		return "", fmt.Errorf("generate_tagline: %w", ErrEmptyResponse)
	}
	return line, nil
}

// GenerateLogo asks the logo model for SVG markup. The raw reply is
// returned; callers normalize it.
func (c *GroqClient) GenerateLogo(ctx context.Context, req LogoRequest) (string, error) {
	const system = "You are a logo designer who writes SVG by hand. " +
		"Reply with a single self-contained <svg> element using a 512x512 viewBox, flat shapes only, " +
		"no raster images, no external references, no text other than optional initials."

	var b strings.Builder
	b.WriteString(describeBrand(req.BrandContext))
	fmt.Fprintf(&b, "Primary motif: %s\nSecondary motif: %s\nMood: %s\n", req.Symbols.Primary, req.Symbols.Secondary, req.Symbols.Mood)
	if req.Personality != nil {
		fmt.Fprintf(&b, "Personality: %s\n", strings.Join(req.Personality.Traits, ", "))
		if req.Personality.Style != "" {
			fmt.Fprintf(&b, "Style: %s\n", req.Personality.Style)
		}
	}
	fmt.Fprintf(&b, "Colors: primary %s, secondary %s, accent %s\n", req.Primary, req.Secondary, req.Accent)

	return c.chatText(ctx, "generate_logo", c.cfg.LogoModel, system, b.String(), 0.8, 4096)
}
