package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/example/brandforge/internal/models"
)

// CompanyStore is the persistence the tenant directory needs.
// Implementations return ErrNotFound for missing rows and ErrDuplicate for
// unique constraint violations.
type CompanyStore interface {
	FindMembership(ctx context.Context, userID, companyID uuid.UUID) (models.CompanyMember, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	// WithinTx runs fn in one atomic unit; nothing fn wrote is visible if it fails.
	WithinTx(ctx context.Context, fn func(CompanyWriter) error) error
	// ListMemberships returns the user's memberships with Company loaded,
	// most recently joined first.
	ListMemberships(ctx context.Context, userID uuid.UUID) ([]models.CompanyMember, error)
	// FindBySlug loads the company with its members and their users.
	FindBySlug(ctx context.Context, slug string) (models.Company, error)
}

// CompanyWriter is the transactional side of CompanyStore.
type CompanyWriter interface {
	InsertCompany(ctx context.Context, company *models.Company) error
	InsertMember(ctx context.Context, member *models.CompanyMember) error
}

type BrandKitStore interface {
	Create(ctx context.Context, kit *models.BrandKit) error
	// ListByCompany returns one page, newest first, and the total count.
	// A limit of zero returns every row.
	ListByCompany(ctx context.Context, companyID uuid.UUID, limit, offset int) ([]models.BrandKit, int64, error)
}

// UserStore persists dashboard accounts. CreateUser returns ErrDuplicate
// for a taken email.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	FindUserByID(ctx context.Context, id uuid.UUID) (models.User, error)
}

// SubscriberStore records landing page sign-ups. Subscribing an email twice
// is not an error.
type SubscriberStore interface {
	Subscribe(ctx context.Context, sub *models.Subscriber) error
}

// AccessVerifier confirms a caller belongs to a company.
type AccessVerifier interface {
	VerifyAccess(ctx context.Context, userID, companyID uuid.UUID) error
}

// BrandContext is the business description every model prompt starts from.
type BrandContext struct {
	BusinessName string
	Description  string
	Industry     string
}

// LogoSymbols are motifs suggested for a logo.
type LogoSymbols struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Mood      string `json:"mood"`
}

// ColorPreferences steer palette generation.
type ColorPreferences struct {
	Mood     string   `json:"mood"`
	Trend    string   `json:"trend"`
	Keywords []string `json:"keywords"`
}

// BrandPersonality describes the voice a logo should carry.
type BrandPersonality struct {
	Traits []string `json:"traits"`
	Tone   string   `json:"tone"`
	Style  string   `json:"style"`
}

type PaletteRequest struct {
	BrandContext
	Preferences ColorPreferences
}

type LogoRequest struct {
	BrandContext
	Symbols     LogoSymbols
	Personality *BrandPersonality
	Primary     string
	Secondary   string
	Accent      string
}

// LogoAsset is a renderable logo. SVG is empty for uploaded images.
type LogoAsset struct {
	URL string
	SVG string
}

// Fallbacks used when an extraction or generation branch fails.
var (
	DefaultLogoSymbols = LogoSymbols{
		Primary:   "abstract symbol",
		Secondary: "geometric pattern",
		Mood:      "professional",
	}
	DefaultColorPreferences = ColorPreferences{
		Mood:     "professional",
		Trend:    "classic",
		Keywords: []string{},
	}
	DefaultFontPairing = models.FontPairing{
		Primary:   "Inter",
		Secondary: "Lora",
	}
)

type SymbolExtractor interface {
	ExtractLogoSymbols(ctx context.Context, in BrandContext) (LogoSymbols, error)
}

type ColorPreferenceExtractor interface {
	ExtractColorPreferences(ctx context.Context, in BrandContext) (ColorPreferences, error)
}

type PersonalityExtractor interface {
	ExtractBrandPersonality(ctx context.Context, in BrandContext) (BrandPersonality, error)
}

type PaletteGenerator interface {
	GenerateColorPalette(ctx context.Context, req PaletteRequest) (models.ColorPalette, error)
}

type FontPairer interface {
	SuggestFontPairing(ctx context.Context, in BrandContext) (models.FontPairing, error)
}

type TaglineWriter interface {
	GenerateTagline(ctx context.Context, in BrandContext) (string, error)
}

// LogoGenerator returns raw SVG markup. Configured reports whether the
// integration has credentials; calling GenerateLogo when it does not
// returns ErrNotConfigured.
type LogoGenerator interface {
	Configured() bool
	GenerateLogo(ctx context.Context, req LogoRequest) (string, error)
}
