package models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ColorPalette is the five-slot palette as plain hex values.
type ColorPalette struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Neutral    string `json:"neutral"`
	Background string `json:"background"`
}

// Complete reports whether every slot carries a value.
func (p ColorPalette) Complete() bool {
	return p.Primary != "" && p.Secondary != "" && p.Accent != "" && p.Neutral != "" && p.Background != ""
}

// BrandColor is one persisted palette slot.
type BrandColor struct {
	Name  string `json:"name"`
	Hex   string `json:"hex"`
	Usage string `json:"usage"`
}

// BrandColors is the persisted palette, each slot labelled with its usage.
type BrandColors struct {
	Primary    BrandColor `json:"primary"`
	Secondary  BrandColor `json:"secondary"`
	Accent     BrandColor `json:"accent"`
	Neutral    BrandColor `json:"neutral"`
	Background BrandColor `json:"background"`
}

// NewBrandColors labels a palette with the fixed slot names and usages.
func NewBrandColors(p ColorPalette) BrandColors {
	return BrandColors{
		Primary:    BrandColor{Name: "Primary", Hex: p.Primary, Usage: "Main brand color"},
		Secondary:  BrandColor{Name: "Secondary", Hex: p.Secondary, Usage: "Supporting color"},
		Accent:     BrandColor{Name: "Accent", Hex: p.Accent, Usage: "Call-to-action"},
		Neutral:    BrandColor{Name: "Neutral", Hex: p.Neutral, Usage: "Text and backgrounds"},
		Background: BrandColor{Name: "Background", Hex: p.Background, Usage: "Page background"},
	}
}

// FontPairing is a heading/body font combination.
type FontPairing struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
}

// BrandKit is a generated bundle of logo, palette, fonts and tagline.
// Rows are never updated; regenerating creates a new record.
type BrandKit struct {
	BaseModel
	CompanyID           uuid.UUID                       `gorm:"type:uuid;not null;index" json:"companyId"`
	CreatedBy           uuid.UUID                       `gorm:"type:uuid;not null" json:"createdBy"`
	BusinessName        string                          `gorm:"size:255;not null" json:"businessName"`
	BusinessDescription *string                         `gorm:"type:text" json:"businessDescription"`
	Industry            *string                         `gorm:"size:255" json:"industry"`
	LogoURL             string                          `gorm:"type:text;not null;default:''" json:"logoUrl"`
	LogoSVG             *string                         `gorm:"type:text" json:"logoSvg"`
	Colors              datatypes.JSONType[BrandColors] `gorm:"type:jsonb;not null" json:"colors"`
	Fonts               datatypes.JSONType[FontPairing] `gorm:"type:jsonb;not null" json:"fonts"`
	Tagline             *string                         `gorm:"type:text" json:"tagline"`

	Company *Company `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
