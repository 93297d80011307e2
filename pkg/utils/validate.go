package utils

import (
	"fmt"
	"net/url"
	"regexp"
	"unicode"
)

var slugPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateSlug checks that a slug is usable as a /r/ path segment.
func ValidateSlug(slug string) error {
	if slug == "" {
		return fmt.Errorf("error.slug_required")
	}

	if ContainsWhitespace(slug) {
		return fmt.Errorf("error.slug_cannot_contain_spaces")
	}

	if len(slug) > 64 {
		return fmt.Errorf("error.slug_max_length")
	}

	if !slugPattern.MatchString(slug) {
		return fmt.Errorf("error.slug_invalid")
	}

	return nil
}

// ValidateTargetURL checks the redirect destination.
func ValidateTargetURL(targetURL string) error {
	if targetURL == "" {
		return fmt.Errorf("error.target_url_required")
	}

	if _, err := url.ParseRequestURI(targetURL); err != nil {
		return fmt.Errorf("error.target_url_invalid")
	}

	if len(targetURL) > 2048 {
		return fmt.Errorf("error.target_url_max_length")
	}
	return nil
}

// ValidateMonth checks a YYYY-MM month key.
var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

func ValidateMonth(month string) error {
	if !monthPattern.MatchString(month) {
		return fmt.Errorf("error.month_invalid")
	}
	return nil
}

func ContainsWhitespace(s string) bool {
	for _, r := range s {
		if unicode.IsSpace(r) {
			return true
		}
	}
	return false
}
