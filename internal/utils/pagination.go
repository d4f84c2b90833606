package utils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const maxPageLimit = 100

// Pagination holds pagination parameters.
type Pagination struct {
	Page      int
	Limit     int
	Offset    int
	Requested bool
}

// ParsePagination reads page and limit query params with sane defaults.
// Requested is false when the caller sent neither parameter, in which
// case listings return every row.
func ParsePagination(c *fiber.Ctx) Pagination {
	rawPage, rawLimit := c.Query("page"), c.Query("limit")

	page := parseInt(rawPage, 1)
	limit := parseInt(rawLimit, 20)
	if limit <= 0 {
		limit = 20
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	if page <= 0 {
		page = 1
	}

	return Pagination{
		Page:      page,
		Limit:     limit,
		Offset:    (page - 1) * limit,
		Requested: rawPage != "" || rawLimit != "",
	}
}

func parseInt(value string, fallback int) int {
	if parsed, err := strconv.Atoi(value); err == nil {
		return parsed
	}
	return fallback
}
