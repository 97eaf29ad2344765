package utils

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"unicode"
)

// SanitizeString removes potentially dangerous characters and escapes HTML
func SanitizeString(input string) string {
	trimmed := strings.TrimSpace(input)

	return html.EscapeString(trimmed)
}

// SanitizeEmail sanitizes email input
func SanitizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))

	email = stripHTML(email)

	email = removeControlChars(email)

	return email
}

// SanitizePhone sanitizes phone number input
func SanitizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	phone = stripHTML(phone)

	var result strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) || r == '+' || r == '-' || r == ' ' || r == '(' || r == ')' {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// SanitizeText sanitizes multi-line text input
func SanitizeText(input string) string {
	trimmed := strings.TrimSpace(input)

	escaped := html.EscapeString(trimmed)

	// Keep newlines and tabs, drop other control characters
	var result strings.Builder
	for _, r := range escaped {
		if unicode.IsPrint(r) || r == '\n' || r == '\t' || r == '\r' {
			result.WriteRune(r)
		}
	}

	return result.String()
}

// stripHTML removes HTML tags from string
func stripHTML(input string) string {
	re := regexp.MustCompile(`<[^>]*>`)
	return re.ReplaceAllString(input, "")
}

// removeControlChars removes control characters from string
func removeControlChars(input string) string {
	var result strings.Builder
	for _, r := range input {
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// ValidateAndSanitizeEmail validates and sanitizes email
func ValidateAndSanitizeEmail(email string) (string, error) {
	sanitized := SanitizeEmail(email)
	if !IsValidEmail(sanitized) {
		return "", fmt.Errorf("invalid email format")
	}
	return sanitized, nil
}
