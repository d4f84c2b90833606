package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/example/brandforge/internal/models"
	"github.com/example/brandforge/internal/services"
	fakes "github.com/example/brandforge/internal/testutil"
)

type pipeline struct {
	svc     *services.BrandKitService
	kits    *fakes.BrandKitStore
	model   *fakes.StubModel
	user    uuid.UUID
	company uuid.UUID
	reg     *prometheus.Registry
}

func newPipeline(t *testing.T) *pipeline {
	t.Helper()

	companies := fakes.NewCompanyStore()
	company := companies.AddCompany("Acme", "acme")
	user := uuid.New()
	companies.AddMember(user, company.ID, models.RoleMember, time.Now())

	p := &pipeline{
		kits:    fakes.NewBrandKitStore(),
		model:   fakes.NewStubModel(),
		user:    user,
		company: company.ID,
		reg:     prometheus.NewRegistry(),
	}
	p.svc = services.NewBrandKitService(
		services.NewCompanyService(companies),
		p.kits,
		p.model.Generators(),
		services.NewPipelineMetrics(p.reg),
	)
	return p
}

func (p *pipeline) request(logo services.LogoMode) services.BrandKitRequest {
	desc := "Reusable rockets"
	return services.BrandKitRequest{
		CompanyID:    p.company,
		BusinessName: "Acme",
		Description:  &desc,
		LogoMode:     logo,
		ColorMode:    services.ColorGenerate,
	}
}

func (p *pipeline) counter(t *testing.T, name, label, value string) float64 {
	t.Helper()
	families, err := p.reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
		for _, m := range f.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == label && l.GetValue() == value {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func assertFullPalette(t *testing.T, kit models.BrandKit) {
	t.Helper()
	colors := kit.Colors.Data()
	for _, c := range []models.BrandColor{colors.Primary, colors.Secondary, colors.Accent, colors.Neutral, colors.Background} {
		if c.Hex == "" || c.Name == "" || c.Usage == "" {
			t.Fatalf("incomplete palette slot %+v", c)
		}
	}
}

func TestGenerateWithLogo(t *testing.T) {
	p := newPipeline(t)

	kit, err := p.svc.Generate(context.Background(), p.user, p.request(services.LogoGenerate))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if !strings.HasPrefix(kit.LogoURL, "data:image/svg+xml;base64,") {
		t.Fatalf("expected svg data url, got %q", kit.LogoURL)
	}
	if kit.LogoSVG == nil || !strings.Contains(*kit.LogoSVG, `viewBox="0 0 64 64"`) || strings.Contains(*kit.LogoSVG, "<!--") {
		t.Fatalf("expected normalized and optimized svg, got %v", kit.LogoSVG)
	}
	if kit.Tagline == nil || *kit.Tagline != "Reach further." {
		t.Fatalf("unexpected tagline %v", kit.Tagline)
	}
	if fonts := kit.Fonts.Data(); fonts.Primary != "Montserrat" {
		t.Fatalf("unexpected fonts %+v", fonts)
	}
	if kit.CreatedBy != p.user || kit.CompanyID != p.company {
		t.Fatalf("unexpected ownership %+v", kit)
	}
	if primary := kit.Colors.Data().Primary; primary.Name != "Primary" || primary.Usage != "Main brand color" || primary.Hex != "#112233" {
		t.Fatalf("unexpected primary slot %+v", primary)
	}

	stored := p.kits.Kits()
	if len(stored) != 1 {
		t.Fatalf("expected exactly one stored kit, got %d", len(stored))
	}
	assertFullPalette(t, stored[0])

	logoReqs := p.model.LogoRequests()
	if len(logoReqs) != 1 || logoReqs[0].Primary != "#112233" || logoReqs[0].Accent != "#FF6600" {
		t.Fatalf("logo not driven by palette: %+v", logoReqs)
	}
	if logoReqs[0].Personality == nil || logoReqs[0].Symbols.Primary != "rocket" {
		t.Fatalf("logo not driven by insights: %+v", logoReqs[0])
	}
	if got := p.counter(t, "brandforge_brand_kit_generations_total", "outcome", "success"); got != 1 {
		t.Fatalf("expected one success, got %v", got)
	}
}

func TestGenerateSkipLogo(t *testing.T) {
	p := newPipeline(t)

	kit, err := p.svc.Generate(context.Background(), p.user, p.request(services.LogoSkip))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if kit.LogoURL != "" || kit.LogoSVG != nil {
		t.Fatalf("expected no logo, got %q / %v", kit.LogoURL, kit.LogoSVG)
	}
	if n := len(p.model.LogoRequests()); n != 0 {
		t.Fatalf("logo generator called %d times", n)
	}
}

func TestGenerateUploadedLogo(t *testing.T) {
	p := newPipeline(t)
	req := p.request(services.LogoUpload)
	req.LogoData = "data:image/png;base64,iVBORw0KGgo="

	kit, err := p.svc.Generate(context.Background(), p.user, req)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if kit.LogoURL != req.LogoData || kit.LogoSVG != nil {
		t.Fatalf("expected verbatim upload, got %q / %v", kit.LogoURL, kit.LogoSVG)
	}
}

func TestGenerateUnconfiguredLogoPersistsNothing(t *testing.T) {
	for _, mode := range []services.LogoMode{services.LogoGenerate, services.LogoUpload} {
		t.Run(string(mode), func(t *testing.T) {
			p := newPipeline(t)
			p.model.Unconfigured = true

			_, err := p.svc.Generate(context.Background(), p.user, p.request(mode))

			var pipelineErr *services.Error
			if !errors.As(err, &pipelineErr) || pipelineErr.Code != services.CodeMissingAPIKey {
				t.Fatalf("expected MISSING_API_KEY, got %v", err)
			}
			if !services.IsConfigurationError(err) {
				t.Fatal("expected configuration error")
			}
			if n := len(p.kits.Kits()); n != 0 {
				t.Fatalf("expected nothing persisted, got %d", n)
			}
			if got := p.counter(t, "brandforge_brand_kit_generations_total", "outcome", "misconfigured"); got != 1 {
				t.Fatalf("expected misconfigured outcome, got %v", got)
			}
		})
	}
}

func TestGenerateInsightFailureUsesFallback(t *testing.T) {
	tests := []struct {
		name  string
		fail  func(m *fakes.StubModel)
		check func(t *testing.T, p *pipeline)
	}{
		{
			name:  "symbols",
			fail:  func(m *fakes.StubModel) { m.SymbolsErr = errors.New("timeout") },
			check: func(t *testing.T, p *pipeline) {
				if got := p.model.LogoRequests()[0].Symbols; got != services.DefaultLogoSymbols {
					t.Fatalf("expected fallback symbols downstream, got %+v", got)
				}
			},
		},
		{
			name:  "color preferences",
			fail:  func(m *fakes.StubModel) { m.PreferencesErr = errors.New("bad json") },
			check: func(t *testing.T, p *pipeline) {
				prefs := p.model.PaletteRequests()[0].Preferences
				if prefs.Mood != "professional" || prefs.Trend != "classic" || len(prefs.Keywords) != 0 {
					t.Fatalf("expected fallback preferences downstream, got %+v", prefs)
				}
			},
		},
		{
			name:  "personality",
			fail:  func(m *fakes.StubModel) { m.PersonalityErr = errors.New("500") },
			check: func(t *testing.T, p *pipeline) {
				if got := p.model.LogoRequests()[0].Personality; got != nil {
					t.Fatalf("expected no personality downstream, got %+v", got)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPipeline(t)
			tt.fail(p.model)

			if _, err := p.svc.Generate(context.Background(), p.user, p.request(services.LogoGenerate)); err != nil {
				t.Fatalf("generate: %v", err)
			}
			if n := len(p.kits.Kits()); n != 1 {
				t.Fatalf("expected one kit, got %d", n)
			}
			tt.check(t, p)
		})
	}
}

func TestGenerateAssetFailuresFallBack(t *testing.T) {
	p := newPipeline(t)
	p.model.LogoSVG = "I'm sorry, I can't draw."
	p.model.TaglineErr = errors.New("timeout")
	p.model.PanicInFonts = true

	kit, err := p.svc.Generate(context.Background(), p.user, p.request(services.LogoGenerate))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if kit.LogoURL != "" || kit.LogoSVG != nil {
		t.Fatalf("expected null logo, got %q / %v", kit.LogoURL, kit.LogoSVG)
	}
	if kit.Tagline != nil {
		t.Fatalf("expected no tagline, got %q", *kit.Tagline)
	}
	if fonts := kit.Fonts.Data(); fonts != services.DefaultFontPairing {
		t.Fatalf("expected fallback fonts, got %+v", fonts)
	}
	assertFullPalette(t, *kit)

	for _, step := range []string{"logo", "fonts", "tagline"} {
		if got := p.counter(t, "brandforge_brand_kit_step_fallbacks_total", "step", step); got != 1 {
			t.Errorf("expected one %s fallback, got %v", step, got)
		}
	}
}

func TestGenerateExistingPaletteSkipsGenerator(t *testing.T) {
	p := newPipeline(t)
	req := p.request(services.LogoSkip)
	req.ColorMode = services.ColorExisting
	req.ExistingColors = &models.ColorPalette{
		Primary:    "#000000",
		Secondary:  "#111111",
		Accent:     "#222222",
		Neutral:    "#333333",
		Background: "#FFFFFF",
	}

	kit, err := p.svc.Generate(context.Background(), p.user, req)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if got := kit.Colors.Data().Primary.Hex; got != "#000000" {
		t.Fatalf("expected caller palette, got %q", got)
	}
	if n := len(p.model.PaletteRequests()); n != 0 {
		t.Fatalf("palette generator called %d times", n)
	}
}

func TestGenerateExistingModeWithoutColorsGenerates(t *testing.T) {
	p := newPipeline(t)
	req := p.request(services.LogoSkip)
	req.ColorMode = services.ColorExisting

	kit, err := p.svc.Generate(context.Background(), p.user, req)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if n := len(p.model.PaletteRequests()); n != 1 {
		t.Fatalf("expected palette generation, got %d calls", n)
	}
	assertFullPalette(t, *kit)
}

func TestGeneratePaletteFailureAborts(t *testing.T) {
	tests := []struct {
		name   string
		modify func(m *fakes.StubModel)
	}{
		{"error", func(m *fakes.StubModel) { m.PaletteErr = errors.New("upstream 503") }},
		{"partial", func(m *fakes.StubModel) { m.Palette.Neutral = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPipeline(t)
			tt.modify(p.model)

			_, err := p.svc.Generate(context.Background(), p.user, p.request(services.LogoSkip))

			var pipelineErr *services.Error
			if !errors.As(err, &pipelineErr) || pipelineErr.Code != services.CodePaletteFailed {
				t.Fatalf("expected PALETTE_FAILED, got %v", err)
			}
			if n := len(p.kits.Kits()); n != 0 {
				t.Fatalf("expected nothing persisted, got %d", n)
			}
		})
	}
}

func TestGenerateRequiresMembership(t *testing.T) {
	p := newPipeline(t)

	_, err := p.svc.Generate(context.Background(), uuid.New(), p.request(services.LogoSkip))
	if !errors.Is(err, services.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if n := len(p.model.PaletteRequests()); n != 0 {
		t.Fatal("pipeline ran for a non-member")
	}
	if got := p.counter(t, "brandforge_brand_kit_generations_total", "outcome", "unauthorized"); got != 1 {
		t.Fatalf("expected unauthorized outcome, got %v", got)
	}
}

func TestGeneratePersistFailure(t *testing.T) {
	p := newPipeline(t)
	p.kits.Err = errors.New("disk full")

	_, err := p.svc.Generate(context.Background(), p.user, p.request(services.LogoSkip))

	var pipelineErr *services.Error
	if !errors.As(err, &pipelineErr) || pipelineErr.Code != services.CodePersistFailed {
		t.Fatalf("expected PERSIST_FAILED, got %v", err)
	}
}

func TestListBrandKits(t *testing.T) {
	p := newPipeline(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := p.svc.Generate(ctx, p.user, p.request(services.LogoSkip)); err != nil {
			t.Fatalf("generate: %v", err)
		}
	}

	kits, total, err := p.svc.List(ctx, p.user, p.company, 2, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 || len(kits) != 2 {
		t.Fatalf("expected 2 of 3, got %d of %d", len(kits), total)
	}
	if kits[0].CreatedAt.Before(kits[1].CreatedAt) {
		t.Fatal("expected newest first")
	}

	if _, _, err := p.svc.List(ctx, uuid.New(), p.company, 0, 0); !errors.Is(err, services.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
