package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/datatypes"

	"github.com/example/brandforge/internal/models"
	"github.com/example/brandforge/internal/telemetry"
)

type LogoMode string

const (
	LogoGenerate LogoMode = "generate"
	LogoUpload   LogoMode = "upload"
	LogoSkip     LogoMode = "skip"
)

type ColorMode string

const (
	ColorGenerate ColorMode = "generate"
	ColorExisting ColorMode = "existing"
)

// BrandKitRequest is a validated generation request.
type BrandKitRequest struct {
	CompanyID      uuid.UUID
	BusinessName   string
	Description    *string
	Industry       *string
	LogoMode       LogoMode
	LogoData       string
	ColorMode      ColorMode
	ExistingColors *models.ColorPalette
}

// wantsGeneratedLogo is true for generate mode and for uploads that
// arrived without data.
func (r BrandKitRequest) wantsGeneratedLogo() bool {
	switch r.LogoMode {
	case LogoSkip:
		return false
	case LogoUpload:
		return r.LogoData == ""
	default:
		return true
	}
}

// Generators bundles the model-backed capabilities the pipeline calls.
type Generators struct {
	Symbols     SymbolExtractor
	Preferences ColorPreferenceExtractor
	Personality PersonalityExtractor
	Palette     PaletteGenerator
	Fonts       FontPairer
	Tagline     TaglineWriter
	Logo        LogoGenerator
}

// BrandKitService generates and lists brand kits.
type BrandKitService struct {
	access  AccessVerifier
	store   BrandKitStore
	gen     Generators
	metrics *PipelineMetrics
}

func NewBrandKitService(access AccessVerifier, store BrandKitStore, gen Generators, metrics *PipelineMetrics) *BrandKitService {
	return &BrandKitService{
		access:  access,
		store:   store,
		gen:     gen,
		metrics: metrics,
	}
}

// List returns a page of the company's brand kits, newest first.
func (s *BrandKitService) List(ctx context.Context, userID, companyID uuid.UUID, limit, offset int) ([]models.BrandKit, int64, error) {
	if err := s.access.VerifyAccess(ctx, userID, companyID); err != nil {
		return nil, 0, err
	}

	kits, total, err := s.store.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list brand kits: %w", err)
	}
	return kits, total, nil
}

// Generate runs the full pipeline and persists exactly one brand kit.
// Insight, font, tagline and logo failures fall back to defaults; access,
// configuration, palette and persistence failures abort with nothing saved.
func (s *BrandKitService) Generate(ctx context.Context, userID uuid.UUID, req BrandKitRequest) (*models.BrandKit, error) {
	ctx, span := telemetry.AddSpan(ctx, "services.brandkit.generate",
		attribute.String("company.id", req.CompanyID.String()),
		attribute.String("logo.mode", string(req.LogoMode)),
		attribute.String("color.mode", string(req.ColorMode)),
	)
	defer span.End()

	kit, err := s.generate(ctx, userID, req)
	telemetry.RecordError(span, err)
	s.metrics.generation(generationOutcome(err))

	return kit, err
}

func (s *BrandKitService) generate(ctx context.Context, userID uuid.UUID, req BrandKitRequest) (*models.BrandKit, error) {
	if err := s.access.VerifyAccess(ctx, userID, req.CompanyID); err != nil {
		return nil, err
	}

	if req.wantsGeneratedLogo() && !s.gen.Logo.Configured() {
		log.Printf("[BrandKit] logo generation requested for company %s but GROQ_API_KEY is not configured", req.CompanyID)
		return nil, newError(CodeMissingAPIKey, "Logo generation is not configured", ErrNotConfigured)
	}

	brand := BrandContext{
		BusinessName: req.BusinessName,
		Description:  deref(req.Description),
		Industry:     deref(req.Industry),
	}

	symbols, prefs, personality := s.extractInsights(ctx, brand)

	palette, err := s.resolvePalette(ctx, req, PaletteRequest{BrandContext: brand, Preferences: prefs})
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			return nil, newError(CodeMissingAPIKey, "Palette generation is not configured", err)
		}
		log.Printf("[BrandKit] palette generation failed for company %s: %v", req.CompanyID, err)
		return nil, newError(CodePaletteFailed, "Failed to generate color palette", err)
	}

	logo, fonts, tagline := s.generateAssets(ctx, req, LogoRequest{
		BrandContext: brand,
		Symbols:      symbols,
		Personality:  personality,
		Primary:      palette.Primary,
		Secondary:    palette.Secondary,
		Accent:       palette.Accent,
	})

	kit := assemble(userID, req, palette, logo, fonts, tagline)

	ctx, span := telemetry.AddSpan(ctx, "services.brandkit.persist")
	defer span.End()

	if err := s.store.Create(ctx, kit); err != nil {
		telemetry.RecordError(span, err)
		return nil, newError(CodePersistFailed, "Failed to save brand kit", err)
	}

	log.Printf("[BrandKit] created %s for company %s", kit.ID, kit.CompanyID)
	return kit, nil
}

func (s *BrandKitService) extractInsights(ctx context.Context, brand BrandContext) (LogoSymbols, ColorPreferences, *BrandPersonality) {
	ctx, span := telemetry.AddSpan(ctx, "services.brandkit.insights")
	defer span.End()

	var group Settle
	symbolsOut := Go(&group, ctx, func(ctx context.Context) (LogoSymbols, error) {
		return s.gen.Symbols.ExtractLogoSymbols(ctx, brand)
	})
	prefsOut := Go(&group, ctx, func(ctx context.Context) (ColorPreferences, error) {
		return s.gen.Preferences.ExtractColorPreferences(ctx, brand)
	})
	personalityOut := Go(&group, ctx, func(ctx context.Context) (BrandPersonality, error) {
		return s.gen.Personality.ExtractBrandPersonality(ctx, brand)
	})
	group.Wait()

	symbols := settled(s.metrics, "symbols", symbolsOut, DefaultLogoSymbols)
	prefs := settled(s.metrics, "color_preferences", prefsOut, DefaultColorPreferences)

	var personality *BrandPersonality
	if personalityOut.OK() {
		personality = &personalityOut.Value
	} else {
		log.Printf("[BrandKit] personality extraction failed, continuing without it: %v", personalityOut.Err)
		s.metrics.fallback("personality")
	}

	return symbols, prefs, personality
}

func (s *BrandKitService) resolvePalette(ctx context.Context, req BrandKitRequest, paletteReq PaletteRequest) (models.ColorPalette, error) {
	if req.ColorMode == ColorExisting && req.ExistingColors != nil && req.ExistingColors.Complete() {
		return *req.ExistingColors, nil
	}

	ctx, span := telemetry.AddSpan(ctx, "services.brandkit.palette")
	defer span.End()

	palette, err := s.gen.Palette.GenerateColorPalette(ctx, paletteReq)
	if err == nil && !palette.Complete() {
		err = ErrInvalidPalette
	}
	if err != nil {
		telemetry.RecordError(span, err)
		return models.ColorPalette{}, err
	}
	return palette, nil
}

func (s *BrandKitService) generateAssets(ctx context.Context, req BrandKitRequest, logoReq LogoRequest) (*LogoAsset, models.FontPairing, string) {
	ctx, span := telemetry.AddSpan(ctx, "services.brandkit.assets")
	defer span.End()

	var group Settle
	logoOut := Go(&group, ctx, func(ctx context.Context) (*LogoAsset, error) {
		return s.buildLogo(ctx, req, logoReq)
	})
	fontsOut := Go(&group, ctx, func(ctx context.Context) (models.FontPairing, error) {
		return s.gen.Fonts.SuggestFontPairing(ctx, logoReq.BrandContext)
	})
	taglineOut := Go(&group, ctx, func(ctx context.Context) (string, error) {
		return s.gen.Tagline.GenerateTagline(ctx, logoReq.BrandContext)
	})
	group.Wait()

	logo := settled(s.metrics, "logo", logoOut, (*LogoAsset)(nil))
	fonts := settled(s.metrics, "fonts", fontsOut, DefaultFontPairing)
	tagline := settled(s.metrics, "tagline", taglineOut, "")

	return logo, fonts, tagline
}

// buildLogo is the logo state machine: skip yields no asset, an upload is
// wrapped verbatim and anything else is generated then post-processed.
func (s *BrandKitService) buildLogo(ctx context.Context, req BrandKitRequest, logoReq LogoRequest) (*LogoAsset, error) {
	if req.LogoMode == LogoSkip {
		return nil, nil
	}
	if req.LogoMode == LogoUpload && req.LogoData != "" {
		return &LogoAsset{URL: req.LogoData}, nil
	}

	raw, err := s.gen.Logo.GenerateLogo(ctx, logoReq)
	if err != nil {
		return nil, fmt.Errorf("generate logo: %w", err)
	}

	normalized, err := NormalizeSVG(raw)
	if err != nil {
		return nil, fmt.Errorf("normalize logo: %w", err)
	}
	optimized := OptimizeSVG(normalized)

	return &LogoAsset{
		URL: SVGToDataURL(optimized),
		SVG: optimized,
	}, nil
}

func assemble(userID uuid.UUID, req BrandKitRequest, palette models.ColorPalette, logo *LogoAsset, fonts models.FontPairing, tagline string) *models.BrandKit {
	kit := &models.BrandKit{
		CompanyID:           req.CompanyID,
		CreatedBy:           userID,
		BusinessName:        req.BusinessName,
		BusinessDescription: req.Description,
		Industry:            req.Industry,
		Colors:              datatypes.NewJSONType(models.NewBrandColors(palette)),
		Fonts:               datatypes.NewJSONType(fonts),
	}

	if logo != nil {
		kit.LogoURL = logo.URL
		if logo.SVG != "" {
			svg := logo.SVG
			kit.LogoSVG = &svg
		}
	}
	if tagline != "" {
		kit.Tagline = &tagline
	}

	return kit
}

// settled returns the branch value or fallback, logging and counting the
// fallback.
func settled[T any](m *PipelineMetrics, step string, o *Outcome[T], fallback T) T {
	if o.OK() {
		return o.Value
	}
	log.Printf("[BrandKit] %s step failed, using fallback: %v", step, o.Err)
	m.fallback(step)
	return fallback
}

func generationOutcome(err error) string {
	var pipelineErr *Error
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.As(err, &pipelineErr):
		switch pipelineErr.Code {
		case CodeMissingAPIKey:
			return "misconfigured"
		case CodePaletteFailed:
			return "palette_failed"
		}
	}
	return "error"
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
