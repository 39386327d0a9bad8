package results

import (
	"context"
	"errors"

	"rgqview/internal/domain"
)

var (
	// ErrSectionNotFound is returned when a section is not part of the session
	ErrSectionNotFound = errors.New("section not found")
	// ErrUnknownQuestion is returned when a response references a missing question
	ErrUnknownQuestion = errors.New("unknown question")
)

// Provider supplies session results to the viewer
type Provider interface {
	Session(ctx context.Context) (*domain.Session, error)
	SectionNames(ctx context.Context) ([]string, error)
	LoadSection(ctx context.Context, name string) (*domain.SectionContent, error)
}
