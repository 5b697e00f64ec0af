package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/keyhold/keyhold/internal/tenancy/domain"
	"github.com/keyhold/keyhold/internal/tenancy/policy"
	"github.com/keyhold/keyhold/internal/tenancy/store"
	"github.com/keyhold/keyhold/pkg/idx"
	"github.com/keyhold/keyhold/pkg/slogx"
)

// DocumentService manages document metadata attached to properties. The file
// bytes live elsewhere; this service only tracks what exists and who may see
// it.
type DocumentService struct {
	Store store.Store
}

// DocumentInput carries the metadata recorded for an upload.
type DocumentInput struct {
	Name     string
	Filename string
	FileType string
	FileSize int64
}

// AddDocument records a document against a property. Owner or admin only.
func (s *DocumentService) AddDocument(ctx context.Context, callerID, propertyID string, in DocumentInput) (domain.Document, error) {
	log := slogx.FromContext(ctx)

	caller, err := resolveCaller(ctx, s.Store, callerID)
	if err != nil {
		return domain.Document{}, err
	}

	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Filename) == "" || in.FileSize < 0 {
		return domain.Document{}, ErrValidation
	}

	property, err := s.Store.Properties().GetPropertyByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Document{}, ErrNotFound
		}
		return domain.Document{}, err
	}

	membership, err := callerMembership(ctx, s.Store, caller.ID, property.ID)
	if err != nil {
		return domain.Document{}, err
	}
	if err := policy.CanActOnProperty(caller, property, membership, policy.PropertyAddDocument); err != nil {
		log.Warn("unauthorized document upload attempt",
			slog.String("user_id", caller.ID),
			slog.String("property_id", property.ID),
		)
		return domain.Document{}, err
	}

	doc := domain.Document{
		ID:         idx.New().String(),
		PropertyID: property.ID,
		Name:       strings.TrimSpace(in.Name),
		Filename:   strings.TrimSpace(in.Filename),
		FileType:   strings.TrimSpace(in.FileType),
		FileSize:   in.FileSize,
	}
	if err := s.Store.Documents().CreateDocument(ctx, doc); err != nil {
		log.Error("failed to create document", slog.Any("error", err))
		return domain.Document{}, err
	}

	log.Info("document added",
		slog.String("document_id", doc.ID),
		slog.String("property_id", property.ID),
	)
	return doc, nil
}

// ListDocuments returns a property's documents to anyone who can view the
// property.
func (s *DocumentService) ListDocuments(ctx context.Context, callerID, propertyID string) ([]domain.Document, error) {
	caller, err := resolveCaller(ctx, s.Store, callerID)
	if err != nil {
		return nil, err
	}

	property, err := s.Store.Properties().GetPropertyByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	membership, err := callerMembership(ctx, s.Store, caller.ID, property.ID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanActOnProperty(caller, property, membership, policy.PropertyViewDocument); err != nil {
		return nil, err
	}

	return s.Store.Documents().ListDocumentsByProperty(ctx, property.ID)
}

// DeleteDocument removes a document record. Authorization resolves through
// the owning property: its owner or an admin may delete.
func (s *DocumentService) DeleteDocument(ctx context.Context, callerID, documentID string) error {
	log := slogx.FromContext(ctx)

	caller, err := resolveCaller(ctx, s.Store, callerID)
	if err != nil {
		return err
	}

	doc, err := s.Store.Documents().GetDocumentByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	property, err := s.Store.Properties().GetPropertyByID(ctx, doc.PropertyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	membership, err := callerMembership(ctx, s.Store, caller.ID, property.ID)
	if err != nil {
		return err
	}
	if err := policy.CanActOnProperty(caller, property, membership, policy.PropertyAddDocument); err != nil {
		log.Warn("unauthorized document delete attempt",
			slog.String("user_id", caller.ID),
			slog.String("document_id", doc.ID),
		)
		return err
	}

	if err := s.Store.Documents().DeleteDocument(ctx, doc.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		log.Error("failed to delete document", slog.Any("error", err))
		return err
	}

	log.Info("document deleted",
		slog.String("document_id", doc.ID),
		slog.String("property_id", property.ID),
	)
	return nil
}

// ShareDocument notifies property members about a document. Every target
// must hold a membership on the document's property; nothing is persisted,
// the share is recorded in the audit log only.
func (s *DocumentService) ShareDocument(ctx context.Context, callerID, documentID string, targetUserIDs []string) error {
	log := slogx.FromContext(ctx)

	caller, err := resolveCaller(ctx, s.Store, callerID)
	if err != nil {
		return err
	}

	if len(targetUserIDs) == 0 {
		return ErrValidation
	}

	doc, err := s.Store.Documents().GetDocumentByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	property, err := s.Store.Properties().GetPropertyByID(ctx, doc.PropertyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	membership, err := callerMembership(ctx, s.Store, caller.ID, property.ID)
	if err != nil {
		return err
	}
	if err := policy.CanActOnProperty(caller, property, membership, policy.PropertyAddDocument); err != nil {
		log.Warn("unauthorized document share attempt",
			slog.String("user_id", caller.ID),
			slog.String("document_id", doc.ID),
		)
		return err
	}

	// All targets must be members before anything is shared with anyone.
	for _, targetID := range targetUserIDs {
		m, err := callerMembership(ctx, s.Store, targetID, property.ID)
		if err != nil {
			return err
		}
		if m == nil {
			log.Warn("document share rejected for non-member target",
				slog.String("document_id", doc.ID),
				slog.String("target_user_id", targetID),
			)
			return ErrValidation
		}
	}

	log.Info("document shared",
		slog.String("document_id", doc.ID),
		slog.String("property_id", property.ID),
		slog.String("shared_by", caller.ID),
		slog.Int("recipients", len(targetUserIDs)),
	)
	return nil
}
