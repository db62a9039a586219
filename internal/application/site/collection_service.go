package site

import (
	"context"

	"github.com/atedres/boldnet-sub000/internal/application/event"
	"github.com/atedres/boldnet-sub000/internal/domain/shared"
	"github.com/atedres/boldnet-sub000/internal/domain/site"
	"github.com/atedres/boldnet-sub000/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CollectionService manages one flat content collection
type CollectionService[T site.Entity] struct {
	repo       site.Repository[T]
	collection string
	newEntity  func() T
	prepare    func(T)
	announcer  *event.Announcer
	logger     *zap.Logger
}

// CollectionOption configures a CollectionService
type CollectionOption[T site.Entity] func(*CollectionService[T])

// WithPrepare registers a hook run on client input before validation
func WithPrepare[T site.Entity](fn func(T)) CollectionOption[T] {
	return func(s *CollectionService[T]) {
		s.prepare = fn
	}
}

// NewCollectionService creates a service over repo; newEntity returns an empty entity
func NewCollectionService[T site.Entity](
	repo site.Repository[T],
	newEntity func() T,
	announcer *event.Announcer,
	logger *zap.Logger,
	opts ...CollectionOption[T],
) *CollectionService[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	if announcer == nil {
		announcer = event.NewAnnouncer(nil, nil, logger)
	}
	collection := newEntity().Collection()
	s := &CollectionService[T]{
		repo:       repo,
		collection: collection,
		newEntity:  newEntity,
		announcer:  announcer,
		logger:     logger.With(zap.String("collection", collection)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Collection returns the collection name
func (s *CollectionService[T]) Collection() string {
	return s.collection
}

// New returns an empty entity for request binding
func (s *CollectionService[T]) New() T {
	return s.newEntity()
}

// List returns a page of entities matching the query
func (s *CollectionService[T]) List(ctx context.Context, q ListQuery) (*shared.Paginated[T], error) {
	filter := q.Filter()
	items, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// All returns every entity in the collection's default order
func (s *CollectionService[T]) All(ctx context.Context) ([]T, error) {
	return s.repo.FindAll(ctx, shared.Filter{})
}

// GetByID returns one entity
func (s *CollectionService[T]) GetByID(ctx context.Context, id uuid.UUID) (T, error) {
	return s.repo.FindByID(ctx, id)
}

// Create validates and stores a new entity under a fresh id
func (s *CollectionService[T]) Create(ctx context.Context, entity T) (T, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "collection", "create", telemetry.SpanAttrCollection, s.collection)
	defer span.End()

	var zero T
	entity.Stamp()
	if err := s.validate(entity); err != nil {
		return zero, err
	}
	if ordered, ok := any(entity).(site.Ordered); ok {
		count, err := s.repo.Count(ctx, shared.Filter{})
		if err != nil {
			telemetry.RecordError(span, err)
			return zero, err
		}
		ordered.SetOrder(int(count) + 1)
	}
	if err := s.repo.Save(ctx, entity); err != nil {
		telemetry.RecordError(span, err)
		return zero, err
	}

	s.logger.Info("Entity created", zap.String("entity_id", entity.GetID().String()))
	s.announcer.Announce(ctx, s.collection, entity.GetID(), shared.ActionCreated)
	return entity, nil
}

// Update replaces a stored entity. Identity, creation time and manual order
// are kept from the stored record.
func (s *CollectionService[T]) Update(ctx context.Context, id uuid.UUID, entity T) (T, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "collection", "update",
		telemetry.SpanAttrCollection, s.collection, telemetry.SpanAttrEntityID, id.String())
	defer span.End()

	var zero T
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return zero, err
	}
	entity.Inherit(existing.GetID(), existing.GetCreatedAt())
	if prev, ok := any(existing).(site.Ordered); ok {
		if next, ok := any(entity).(site.Ordered); ok {
			next.SetOrder(prev.GetOrder())
		}
	}
	if err := s.validate(entity); err != nil {
		return zero, err
	}
	if err := s.repo.Save(ctx, entity); err != nil {
		telemetry.RecordError(span, err)
		return zero, err
	}

	s.announcer.Announce(ctx, s.collection, id, shared.ActionUpdated)
	return entity, nil
}

// Delete removes an entity
func (s *CollectionService[T]) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "collection", "delete",
		telemetry.SpanAttrCollection, s.collection, telemetry.SpanAttrEntityID, id.String())
	defer span.End()

	if err := s.repo.Delete(ctx, id); err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	s.logger.Info("Entity deleted", zap.String("entity_id", id.String()))
	s.announcer.Announce(ctx, s.collection, id, shared.ActionDeleted)
	return nil
}

func (s *CollectionService[T]) validate(entity T) error {
	if s.prepare != nil {
		s.prepare(entity)
	}
	return entity.Validate()
}

// OrderedCollectionService adds atomic batch reordering
type OrderedCollectionService[T site.Ordered] struct {
	*CollectionService[T]
	orderedRepo site.OrderedRepository[T]
}

// NewOrderedCollectionService creates a service for a manually ordered collection
func NewOrderedCollectionService[T site.Ordered](
	repo site.OrderedRepository[T],
	newEntity func() T,
	announcer *event.Announcer,
	logger *zap.Logger,
	opts ...CollectionOption[T],
) *OrderedCollectionService[T] {
	return &OrderedCollectionService[T]{
		CollectionService: NewCollectionService[T](repo, newEntity, announcer, logger, opts...),
		orderedRepo:       repo,
	}
}

// Reorder gives the entity at position i order i, all in one transaction.
// Repeated ids are rejected before any write; an unknown id rolls the batch back.
func (s *OrderedCollectionService[T]) Reorder(ctx context.Context, req ReorderRequest) ([]T, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "collection", "reorder",
		telemetry.SpanAttrCollection, s.collection, telemetry.SpanAttrCount, len(req.IDs))
	defer span.End()

	assignments, err := shared.SequenceOrders(req.IDs)
	if err != nil {
		return nil, err
	}
	if err := s.orderedRepo.UpdateOrders(ctx, assignments); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.announcer.Announce(ctx, s.collection, uuid.Nil, shared.ActionReordered)
	return s.All(ctx)
}
