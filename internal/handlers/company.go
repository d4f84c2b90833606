package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/brandforge/internal/services"
	"github.com/example/brandforge/internal/utils"
)

// CompanyHandler serves the tenant directory.
type CompanyHandler struct {
	companies *services.CompanyService
}

func NewCompanyHandler(companies *services.CompanyService) *CompanyHandler {
	return &CompanyHandler{companies: companies}
}

type createCompanyRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Industry string `json:"industry" validate:"omitempty,max=255"`
	Website  string `json:"website" validate:"omitempty,url,max=2048"`
}

// List returns the caller's companies with their role, newest membership first.
func (h *CompanyHandler) List(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	companies, err := h.companies.ListForUser(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(companies)
}

// Create stores a company owned by the caller.
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := utils.Validate(req); err != nil {
		return err
	}

	company, err := h.companies.Create(c.UserContext(), userID, services.NewCompany{
		Name:     req.Name,
		Industry: optional(req.Industry),
		Website:  optional(req.Website),
	})
	if err != nil {
		if errors.Is(err, services.ErrSlugExhausted) {
			return fiber.NewError(fiber.StatusConflict, "a company with this name already exists")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(company)
}

// Get returns one company with its members.
func (h *CompanyHandler) Get(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	company, err := h.companies.GetBySlug(c.UserContext(), userID, c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(company)
}

// Members returns the roster of a company.
func (h *CompanyHandler) Members(c *fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	members, err := h.companies.Members(c.UserContext(), userID, c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(members)
}
