package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/brandforge/internal/models"
	"github.com/example/brandforge/internal/services"
	"github.com/example/brandforge/internal/utils"
)

// BrandKitHandler serves brand kit generation and listing.
type BrandKitHandler struct {
	kits *services.BrandKitService
}

func NewBrandKitHandler(kits *services.BrandKitService) *BrandKitHandler {
	return &BrandKitHandler{kits: kits}
}

type paletteInput struct {
	Primary    string `json:"primary" validate:"required,hexcolor"`
	Secondary  string `json:"secondary" validate:"required,hexcolor"`
	Accent     string `json:"accent" validate:"required,hexcolor"`
	Neutral    string `json:"neutral" validate:"required,hexcolor"`
	Background string `json:"background" validate:"required,hexcolor"`
}

type createBrandKitRequest struct {
	CompanyID           string        `json:"companyId" validate:"required,uuid"`
	BusinessName        string        `json:"businessName" validate:"required,min=1,max=255"`
	BusinessDescription string        `json:"businessDescription"`
	Industry            string        `json:"industry" validate:"omitempty,max=255"`
	LogoOption          string        `json:"logoOption" validate:"omitempty,oneof=generate upload skip"`
	LogoBase64          string        `json:"logoBase64"`
	ColorOption         string        `json:"colorOption" validate:"omitempty,oneof=generate existing"`
	ExistingColors      *paletteInput `json:"existingColors"`
}

func (r createBrandKitRequest) toServiceRequest() services.BrandKitRequest {
	req := services.BrandKitRequest{
		CompanyID:    uuid.MustParse(r.CompanyID),
		BusinessName: r.BusinessName,
		Description:  optional(r.BusinessDescription),
		Industry:     optional(r.Industry),
		LogoMode:     services.LogoMode(r.LogoOption),
		LogoData:     r.LogoBase64,
		ColorMode:    services.ColorMode(r.ColorOption),
	}
	if req.LogoMode == "" {
		req.LogoMode = services.LogoGenerate
	}
	if req.ColorMode == "" {
		req.ColorMode = services.ColorGenerate
	}
	if r.ExistingColors != nil {
		req.ExistingColors = &models.ColorPalette{
			Primary:    r.ExistingColors.Primary,
			Secondary:  r.ExistingColors.Secondary,
			Accent:     r.ExistingColors.Accent,
			Neutral:    r.ExistingColors.Neutral,
			Background: r.ExistingColors.Background,
		}
	}
	return req
}

// List returns a company's brand kits, newest first. Without page or limit
// every kit is returned.
func (h *BrandKitHandler) List(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	rawCompanyID := c.Query("companyId")
	if rawCompanyID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Company ID required")
	}
	companyID, err := uuid.Parse(rawCompanyID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid company ID")
	}

	page := utils.ParsePagination(c)
	limit, offset := 0, 0
	if page.Requested {
		limit, offset = page.Limit, page.Offset
	}

	kits, total, err := h.kits.List(c.UserContext(), userID, companyID, limit, offset)
	if err != nil {
		return err
	}

	c.Set("X-Total-Count", strconv.FormatInt(total, 10))
	return c.JSON(kits)
}

// Create generates and stores a new brand kit.
func (h *BrandKitHandler) Create(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createBrandKitRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	// Only existing mode reads the palette.
	if req.ColorOption != string(services.ColorExisting) {
		req.ExistingColors = nil
	}
	if err := utils.Validate(req); err != nil {
		return err
	}

	kit, err := h.kits.Generate(c.UserContext(), userID, req.toServiceRequest())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(kit)
}
