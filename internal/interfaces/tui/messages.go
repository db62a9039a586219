package tui

import (
	"context"

	sectionapp "github.com/atedres/boldnet-sub000/internal/application/section"
	"github.com/google/uuid"
)

// SectionEditor is the part of the section service the editor drives
type SectionEditor interface {
	List(ctx context.Context) ([]sectionapp.SectionResponse, error)
	ToggleVisibility(ctx context.Context, id uuid.UUID) (*sectionapp.SectionResponse, error)
	Reorder(ctx context.Context, req sectionapp.ReorderSectionsRequest) ([]sectionapp.SectionResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Result messages. Each carries the error of the command that produced it;
// the model applies the payload only when err is nil.

type loadedMsg struct {
	sections []sectionapp.SectionResponse
	err      error
}

type toggledMsg struct {
	section *sectionapp.SectionResponse
	err     error
}

type reorderedMsg struct {
	sections []sectionapp.SectionResponse
	err      error
}

type deletedMsg struct {
	id  uuid.UUID
	err error
}
