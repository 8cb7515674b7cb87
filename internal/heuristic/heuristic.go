// Package heuristic defines the catalog entries behind the nodes of the
// heuristic-space view.
package heuristic

import (
	"errors"
	"regexp"
	"strings"
)

// Heuristic is one uploaded heuristic. Name is the absolute name
// "author/slug" used as node label in clustering results.
type Heuristic struct {
	Name        string `json:"name"`                  // Required, unique, author/slug
	Author      string `json:"author"`                // Required, must match the name prefix
	Public      bool   `json:"public"`                // Has a published version
	Description string `json:"description,omitempty"` // Optional
}

// NamePattern is the regex pattern for valid absolute names.
var NamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*/[a-z0-9][a-z0-9_.-]*$`)

// Validation errors.
var (
	ErrEmptyName         = errors.New("name is required")
	ErrInvalidName       = errors.New("name must match pattern author/slug: lowercase alphanumeric, hyphens, underscores (dots allowed in slug)")
	ErrEmptyAuthor       = errors.New("author is required")
	ErrAuthorMismatch    = errors.New("author does not match the name prefix")
	ErrDuplicateName     = errors.New("heuristic with this name already exists")
	ErrHeuristicNotFound = errors.New("heuristic not found")
)

// Validate checks that the heuristic can be stored.
func (h *Heuristic) Validate() error {
	if err := ValidateName(h.Name); err != nil {
		return err
	}
	if h.Author == "" {
		return ErrEmptyAuthor
	}
	if AuthorOf(h.Name) != h.Author {
		return ErrAuthorMismatch
	}
	return nil
}

// ValidateName validates an absolute name.
func ValidateName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if !NamePattern.MatchString(name) {
		return ErrInvalidName
	}
	return nil
}

// AuthorOf returns the author part of an absolute name.
func AuthorOf(name string) string {
	author, _, found := strings.Cut(name, "/")
	if !found {
		return ""
	}
	return author
}

// Normalize lowercases and trims a name the way clustering tools emit it.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
