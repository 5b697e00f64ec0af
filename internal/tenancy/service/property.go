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

// PropertyService manages the property portfolio.
type PropertyService struct {
	Store store.Store
}

// PropertyInput carries the caller-editable property fields.
type PropertyInput struct {
	Name         string
	AddressLine1 string
	AddressLine2 string
	City         string
	County       string
	Postcode     string
	PropertyType string
	Bedrooms     int
	Bathrooms    int
	Description  string
}

func (in PropertyInput) validate() error {
	if strings.TrimSpace(in.Name) == "" ||
		strings.TrimSpace(in.AddressLine1) == "" ||
		strings.TrimSpace(in.City) == "" ||
		strings.TrimSpace(in.Postcode) == "" ||
		strings.TrimSpace(in.PropertyType) == "" {
		return ErrValidation
	}
	if in.Bedrooms < 0 || in.Bathrooms < 0 {
		return ErrValidation
	}
	return nil
}

// CreateProperty registers a property owned by the caller. Tenants cannot
// own property, so only landlords and admins may create.
func (s *PropertyService) CreateProperty(ctx context.Context, callerID string, in PropertyInput) (domain.Property, error) {
	log := slogx.FromContext(ctx)

	caller, err := resolveCaller(ctx, s.Store, callerID)
	if err != nil {
		return domain.Property{}, err
	}
	if caller.Role != domain.RoleLandlord && caller.Role != domain.RoleAdmin {
		log.Warn("tenant attempted to create a property",
			slog.String("user_id", caller.ID),
		)
		return domain.Property{}, ErrForbidden
	}
	if err := in.validate(); err != nil {
		return domain.Property{}, err
	}

	property := domain.Property{
		ID:           idx.New().String(),
		OwnerID:      caller.ID,
		Name:         strings.TrimSpace(in.Name),
		AddressLine1: strings.TrimSpace(in.AddressLine1),
		AddressLine2: strings.TrimSpace(in.AddressLine2),
		City:         strings.TrimSpace(in.City),
		County:       strings.TrimSpace(in.County),
		Postcode:     strings.TrimSpace(in.Postcode),
		PropertyType: strings.TrimSpace(in.PropertyType),
		Bedrooms:     in.Bedrooms,
		Bathrooms:    in.Bathrooms,
		Description:  strings.TrimSpace(in.Description),
	}
	if err := s.Store.Properties().CreateProperty(ctx, property); err != nil {
		log.Error("failed to create property", slog.Any("error", err))
		return domain.Property{}, err
	}

	log.Info("property created",
		slog.String("property_id", property.ID),
		slog.String("owner_id", property.OwnerID),
	)
	return property, nil
}

// GetProperty fetches a property the caller is allowed to see: its owner,
// an admin, or a member.
func (s *PropertyService) GetProperty(ctx context.Context, callerID, propertyID string) (domain.Property, error) {
	caller, err := resolveCaller(ctx, s.Store, callerID)
	if err != nil {
		return domain.Property{}, err
	}

	property, err := s.Store.Properties().GetPropertyByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Property{}, ErrNotFound
		}
		return domain.Property{}, err
	}

	membership, err := callerMembership(ctx, s.Store, caller.ID, property.ID)
	if err != nil {
		return domain.Property{}, err
	}
	if err := policy.CanActOnProperty(caller, property, membership, policy.PropertyView); err != nil {
		return domain.Property{}, err
	}

	return property, nil
}

// ListProperties returns the properties visible to the caller. Admins see
// everything, landlords see what they own, and tenants see the properties
// they hold a membership on.
func (s *PropertyService) ListProperties(ctx context.Context, callerID string) ([]domain.Property, error) {
	caller, err := resolveCaller(ctx, s.Store, callerID)
	if err != nil {
		return nil, err
	}

	switch caller.Role {
	case domain.RoleAdmin:
		return s.Store.Properties().ListProperties(ctx)
	case domain.RoleLandlord:
		return s.Store.Properties().ListPropertiesByOwner(ctx, caller.ID)
	}

	memberships, err := s.Store.Memberships().ListMembershipsByUser(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	properties := make([]domain.Property, 0, len(memberships))
	for _, m := range memberships {
		p, err := s.Store.Properties().GetPropertyByID(ctx, m.PropertyID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, err
		}
		properties = append(properties, p)
	}
	return properties, nil
}

// UpdateProperty replaces the mutable fields of a property. Ownership never
// changes here.
func (s *PropertyService) UpdateProperty(ctx context.Context, callerID, propertyID string, in PropertyInput) (domain.Property, error) {
	log := slogx.FromContext(ctx)

	caller, err := resolveCaller(ctx, s.Store, callerID)
	if err != nil {
		return domain.Property{}, err
	}

	property, err := s.Store.Properties().GetPropertyByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Property{}, ErrNotFound
		}
		return domain.Property{}, err
	}

	membership, err := callerMembership(ctx, s.Store, caller.ID, property.ID)
	if err != nil {
		return domain.Property{}, err
	}
	if err := policy.CanActOnProperty(caller, property, membership, policy.PropertyUpdate); err != nil {
		log.Warn("unauthorized property update attempt",
			slog.String("user_id", caller.ID),
			slog.String("property_id", property.ID),
		)
		return domain.Property{}, err
	}
	if err := in.validate(); err != nil {
		return domain.Property{}, err
	}

	property.Name = strings.TrimSpace(in.Name)
	property.AddressLine1 = strings.TrimSpace(in.AddressLine1)
	property.AddressLine2 = strings.TrimSpace(in.AddressLine2)
	property.City = strings.TrimSpace(in.City)
	property.County = strings.TrimSpace(in.County)
	property.Postcode = strings.TrimSpace(in.Postcode)
	property.PropertyType = strings.TrimSpace(in.PropertyType)
	property.Bedrooms = in.Bedrooms
	property.Bathrooms = in.Bathrooms
	property.Description = strings.TrimSpace(in.Description)

	if err := s.Store.Properties().UpdateProperty(ctx, property); err != nil {
		log.Error("failed to update property", slog.Any("error", err))
		return domain.Property{}, err
	}

	log.Info("property updated", slog.String("property_id", property.ID))
	return property, nil
}

// DeleteProperty removes a property. The schema cascades the deletion to its
// memberships, invitations, and documents.
func (s *PropertyService) DeleteProperty(ctx context.Context, callerID, propertyID string) error {
	log := slogx.FromContext(ctx)

	caller, err := resolveCaller(ctx, s.Store, callerID)
	if err != nil {
		return err
	}

	property, err := s.Store.Properties().GetPropertyByID(ctx, propertyID)
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
	if err := policy.CanActOnProperty(caller, property, membership, policy.PropertyDelete); err != nil {
		log.Warn("unauthorized property delete attempt",
			slog.String("user_id", caller.ID),
			slog.String("property_id", property.ID),
		)
		return err
	}

	if err := s.Store.Properties().DeleteProperty(ctx, property.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		log.Error("failed to delete property", slog.Any("error", err))
		return err
	}

	log.Info("property deleted", slog.String("property_id", property.ID))
	return nil
}
