package section

import (
	"fmt"
	"sort"
	"time"

	"github.com/atedres/boldnet-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// PlanAdd builds the section that Add would write to a parent that currently
// holds siblings. It performs no write.
func PlanAdd(siblings []Section, sectionType string) (*Section, error) {
	tmpl, ok := Lookup(sectionType)
	if !ok {
		return nil, ErrUnknownTemplate.WithMessage(fmt.Sprintf("Unknown section type %q", sectionType))
	}
	if tmpl.IsStatic {
		for i := range siblings {
			if siblings[i].Type == sectionType {
				return nil, ErrDuplicateStaticSection.WithMessage(
					fmt.Sprintf("%s can only be added once", tmpl.Name))
			}
		}
	}
	now := time.Now()
	return &Section{
		ID:        uuid.New(),
		Type:      sectionType,
		Order:     len(siblings) + 1,
		Visible:   boolPtr(true),
		Content:   tmpl.DefaultContent(),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// PlanReorder maps a drag-and-drop sequence to order assignments: the section
// at position i gets order i. Hero sections, unknown ids and repeated ids are
// rejected before anything is assigned.
func PlanReorder(siblings []Section, ids []uuid.UUID) ([]shared.OrderAssignment, error) {
	byID := make(map[uuid.UUID]*Section, len(siblings))
	for i := range siblings {
		byID[siblings[i].ID] = &siblings[i]
	}
	for _, id := range ids {
		s, ok := byID[id]
		if !ok {
			return nil, ErrInvalidReorder.WithMessage(fmt.Sprintf("Section %s does not belong to this page", id))
		}
		if s.IsHero() {
			return nil, ErrHeroSectionNotReorderable
		}
	}
	assignments, err := shared.SequenceOrders(ids)
	if err != nil {
		return nil, ErrInvalidReorder.WithMessage(err.Error())
	}
	return assignments, nil
}

// ApplyOrders writes the assignments into an in-memory list of sections.
// Sections not named by the assignments keep their order.
func ApplyOrders(sections []Section, assignments []shared.OrderAssignment) {
	pos := make(map[uuid.UUID]int, len(assignments))
	for _, a := range assignments {
		pos[a.ID] = a.Order
	}
	now := time.Now()
	for i := range sections {
		if o, ok := pos[sections[i].ID]; ok {
			sections[i].Order = o
			sections[i].UpdatedAt = now
		}
	}
}

// Find returns a pointer into sections for the given id
func Find(sections []Section, id uuid.UUID) (*Section, bool) {
	for i := range sections {
		if sections[i].ID == id {
			return &sections[i], true
		}
	}
	return nil, false
}

// Remove returns sections without the given id. Siblings are not renumbered.
func Remove(sections []Section, id uuid.UUID) []Section {
	out := make([]Section, 0, len(sections))
	for _, s := range sections {
		if s.ID != id {
			out = append(out, s)
		}
	}
	return out
}

// SortForDisplay orders sections the way every surface shows them: hero
// sections first, then ascending order. The sort is stable, so siblings
// sharing an order keep their stored sequence. Reorder never assigns hero
// orders, so the hero slot does not depend on the stored value.
func SortForDisplay(sections []Section) {
	sort.SliceStable(sections, func(i, j int) bool {
		if hi, hj := sections[i].IsHero(), sections[j].IsHero(); hi != hj {
			return hi
		}
		return sections[i].Order < sections[j].Order
	})
}

// Renderable returns the visible sections in display order. Type dispatch,
// including skipping unknown types, belongs to the renderer.
func Renderable(children []Section) []Section {
	out := make([]Section, 0, len(children))
	for _, s := range children {
		if s.IsVisible() {
			out = append(out, s)
		}
	}
	SortForDisplay(out)
	return out
}
