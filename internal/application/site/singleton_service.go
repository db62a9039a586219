package site

import (
	"context"
	"errors"

	"github.com/atedres/boldnet-sub000/internal/application/event"
	"github.com/atedres/boldnet-sub000/internal/domain/shared"
	"github.com/atedres/boldnet-sub000/internal/domain/site"
	"github.com/atedres/boldnet-sub000/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SettingsService reads and patches the singleton configuration documents
type SettingsService struct {
	repo      site.SingletonRepository
	announcer *event.Announcer
	logger    *zap.Logger
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(repo site.SingletonRepository, announcer *event.Announcer, logger *zap.Logger) *SettingsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if announcer == nil {
		announcer = event.NewAnnouncer(nil, nil, logger)
	}
	return &SettingsService{repo: repo, announcer: announcer, logger: logger}
}

// Get returns the document; one that was never written reads as an empty map
func (s *SettingsService) Get(ctx context.Context, collection string) (*SettingsResponse, error) {
	doc, err := s.load(ctx, collection)
	if err != nil {
		return nil, err
	}
	return toSettingsResponse(doc), nil
}

// Patch deep-merges the patch into the stored document. Nested objects merge
// key by key and unspecified keys are kept.
func (s *SettingsService) Patch(ctx context.Context, collection string, patch map[string]interface{}) (*SettingsResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "settings", "patch", telemetry.SpanAttrCollection, collection)
	defer span.End()

	doc, err := s.load(ctx, collection)
	if err != nil {
		return nil, err
	}
	if err := doc.Merge(patch); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, doc); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("Settings updated", zap.String("collection", collection), zap.Int("keys", len(patch)))
	s.announcer.Announce(ctx, collection, uuid.Nil, shared.ActionUpdated)
	return toSettingsResponse(doc), nil
}

// Decode reads a document into one of the typed settings views
func (s *SettingsService) Decode(ctx context.Context, collection string, out interface{}) error {
	doc, err := s.load(ctx, collection)
	if err != nil {
		return err
	}
	return site.Decode(doc.Data, out)
}

func (s *SettingsService) load(ctx context.Context, collection string) (*site.Singleton, error) {
	if !site.IsSingleton(collection) {
		_, err := site.NewSingleton(collection)
		return nil, err
	}
	doc, err := s.repo.Find(ctx, collection)
	if errors.Is(err, shared.ErrNotFound) {
		return site.NewSingleton(collection)
	}
	if err != nil {
		return nil, err
	}
	if doc.Data == nil {
		doc.Data = map[string]interface{}{}
	}
	return doc, nil
}

func toSettingsResponse(doc *site.Singleton) *SettingsResponse {
	return &SettingsResponse{
		Collection: doc.Collection,
		ID:         doc.ID,
		Data:       doc.Data,
	}
}
