package services

import (
	"context"
	"fmt"
	"strings"
)

var (
	colorMoods  = []string{"professional", "playful", "elegant", "bold", "calm", "energetic"}
	colorTrends = []string{"classic", "modern", "vibrant", "minimal", "earthy", "pastel"}
)

// ExtractLogoSymbols asks for two visual motifs and a mood for the logo.
func (c *GroqClient) ExtractLogoSymbols(ctx context.Context, in BrandContext) (LogoSymbols, error) {
	const system = "You are a brand strategist. Suggest visual motifs for a logo. " +
		`Reply with JSON only: {"primary": string, "secondary": string, "mood": string}. ` +
		"Motifs are short noun phrases that can be drawn as simple vector shapes."

	var out LogoSymbols
	if err := c.chatJSON(ctx, "extract_symbols", system, describeBrand(in), &out); err != nil {
		return LogoSymbols{}, err
	}

	out.Primary = strings.TrimSpace(out.Primary)
	out.Secondary = strings.TrimSpace(out.Secondary)
	out.Mood = strings.TrimSpace(out.Mood)
	if out.Primary == "" {
		return LogoSymbols{}, fmt.Errorf("extract_symbols: missing primary motif: %w", ErrEmptyResponse)
	}
	if out.Secondary == "" {
		out.Secondary = DefaultLogoSymbols.Secondary
	}
	if out.Mood == "" {
		out.Mood = DefaultLogoSymbols.Mood
	}
	return out, nil
}

// ExtractColorPreferences asks for a color mood and trend. Values outside
// the known sets are replaced by the defaults.
func (c *GroqClient) ExtractColorPreferences(ctx context.Context, in BrandContext) (ColorPreferences, error) {
	system := "You are a color consultant. Infer the color direction for this brand. " +
		`Reply with JSON only: {"mood": string, "trend": string, "keywords": string[]}. ` +
		"mood is one of: " + strings.Join(colorMoods, ", ") + ". " +
		"trend is one of: " + strings.Join(colorTrends, ", ") + ". " +
		"keywords are at most five single words."

	var out ColorPreferences
	if err := c.chatJSON(ctx, "extract_color_preferences", system, describeBrand(in), &out); err != nil {
		return ColorPreferences{}, err
	}

	out.Mood = oneOf(out.Mood, colorMoods, DefaultColorPreferences.Mood)
	out.Trend = oneOf(out.Trend, colorTrends, DefaultColorPreferences.Trend)
	if out.Keywords == nil {
		out.Keywords = []string{}
	}
	if len(out.Keywords) > 5 {
		out.Keywords = out.Keywords[:5]
	}
	return out, nil
}

// ExtractBrandPersonality asks for personality traits, tone and style.
func (c *GroqClient) ExtractBrandPersonality(ctx context.Context, in BrandContext) (BrandPersonality, error) {
	const system = "You are a brand strategist. Describe the personality of this brand. " +
		`Reply with JSON only: {"traits": string[], "tone": string, "style": string}. ` +
		"Give three to five traits."

	var out BrandPersonality
	if err := c.chatJSON(ctx, "extract_personality", system, describeBrand(in), &out); err != nil {
		return BrandPersonality{}, err
	}
	if len(out.Traits) == 0 {
		return BrandPersonality{}, fmt.Errorf("extract_personality: no traits: %w", ErrEmptyResponse)
	}
	return out, nil
}

func oneOf(value string, allowed []string, fallback string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	for _, a := range allowed {
		if value == a {
			return value
		}
	}
	return fallback
}
