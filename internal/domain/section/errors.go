package section

import "github.com/atedres/boldnet-sub000/internal/domain/shared"

// Section rule violations
var (
	ErrDuplicateStaticSection    = shared.NewDomainError("DUPLICATE_STATIC_SECTION", "This section can only be added once")
	ErrHeroSectionUndeletable    = shared.NewDomainError("HERO_SECTION_UNDELETABLE", "The hero section cannot be deleted")
	ErrHeroSectionNotReorderable = shared.NewDomainError("HERO_SECTION_NOT_REORDERABLE", "The hero section cannot be reordered")
	ErrUnknownTemplate           = shared.NewDomainError("UNKNOWN_TEMPLATE", "Unknown section template")
	ErrTemplateNotAllowed        = shared.NewDomainError("TEMPLATE_NOT_ALLOWED", "This section is not available here")
	ErrInvalidReorder            = shared.NewDomainError("INVALID_REORDER", "Reorder sequence is invalid")
)
