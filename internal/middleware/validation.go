package middleware

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// Field limits matching database schema constraints.
const (
	MaxSlugLen = 80
	MaxLimit   = 100
)

// slugRe matches URL slugs: lowercase alphanumerics separated by single dashes.
var slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateSlug checks that a prompt slug is well-formed and within DB limits.
func ValidateSlug(slug string) (string, string) {
	slug = strings.TrimSpace(strings.ToLower(slug))
	if slug == "" {
		return "", "slug is required"
	}
	if len(slug) > MaxSlugLen {
		return "", "slug must be at most 80 characters"
	}
	if !slugRe.MatchString(slug) {
		return "", "slug contains invalid characters"
	}
	return slug, ""
}

// ValidateLimit parses the limit query value. Empty falls back to def;
// anything that is not a positive integer within MaxLimit is rejected.
func ValidateLimit(raw string, def int) (int, string) {
	if strings.TrimSpace(raw) == "" {
		return def, ""
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, "limit must be an integer"
	}
	if n <= 0 {
		return 0, "limit must be positive"
	}
	if n > MaxLimit {
		return 0, "limit must be at most 100"
	}
	return n, ""
}

// ValidateCategoryID parses the category query value.
func ValidateCategoryID(raw string) (int64, string) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, "category must be a positive integer"
	}
	return id, ""
}
