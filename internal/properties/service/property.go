package service

import (
	"context"
	"errors"

	propertieserrors "venuedesk/internal/properties/errors"
	"venuedesk/internal/properties/repository"
	"venuedesk/internal/properties/validator"
	"venuedesk/pkg/config"
	apperrors "venuedesk/pkg/errors"
	"venuedesk/pkg/model"
)

type PropertyService interface {
	Create(ctx context.Context, property *model.Property) error
	Update(ctx context.Context, id string, property *model.Property) error
	GetCatalog(ctx context.Context) ([]*model.PropertyWithPackages, error)
	GetByID(ctx context.Context, id string) (*model.PropertyWithPackages, error)
	ListByOwner(ctx context.Context, accountID string) ([]*model.Property, error)
	Activate(ctx context.Context, id string) error
	Deactivate(ctx context.Context, id string) error
	AddPackage(ctx context.Context, pkg *model.Package) error
	ListPackagesByOwner(ctx context.Context, accountID string) ([]*model.Package, error)
	ListVenuePackages(ctx context.Context, propertyID string) ([]model.PackageRef, error)
}

type propertyService struct {
	repo      repository.PropertyRepository
	validator *validator.PropertyValidator
	cfg       *config.Config
}

func NewPropertyService(repo repository.PropertyRepository, propertyValidator *validator.PropertyValidator, cfg *config.Config) PropertyService {
	return &propertyService{
		repo:      repo,
		validator: propertyValidator,
		cfg:       cfg,
	}
}

func (s *propertyService) Create(ctx context.Context, property *model.Property) error {
	// new listings always enter the catalog visible
	property.Active = true

	if err := s.validator.Validate(property); err != nil {
		s.cfg.Log.Warn("Property validation failed", "error", err)
		return validationError(err)
	}

	if err := s.repo.Create(ctx, property); err != nil {
		s.cfg.Log.Error("Failed to create property", "title", property.Title, "error", err)
		return apperrors.Internal("Failed to create property", err)
	}

	s.cfg.Log.Info("Property created", "id", property.ID, "title", property.Title)
	return nil
}

func (s *propertyService) Update(ctx context.Context, id string, property *model.Property) error {
	if err := s.validator.Validate(property); err != nil {
		s.cfg.Log.Warn("Property validation failed", "id", id, "error", err)
		return validationError(err)
	}

	if err := s.repo.Update(ctx, id, property); err != nil {
		return s.mapRepoError(err, id, "Failed to update property")
	}

	s.cfg.Log.Info("Property updated", "id", id)
	return nil
}

func (s *propertyService) GetCatalog(ctx context.Context) ([]*model.PropertyWithPackages, error) {
	catalog, err := s.repo.FindActiveWithPackages(ctx)
	if err != nil {
		s.cfg.Log.Error("Failed to load property catalog", "error", err)
		return nil, apperrors.Internal("Failed to load properties", err)
	}
	return catalog, nil
}

func (s *propertyService) GetByID(ctx context.Context, id string) (*model.PropertyWithPackages, error) {
	property, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapRepoError(err, id, "Failed to load property")
	}
	return property, nil
}

func (s *propertyService) ListByOwner(ctx context.Context, accountID string) ([]*model.Property, error) {
	if accountID == "" {
		return nil, apperrors.InvalidInput("Account ID cannot be empty")
	}

	properties, err := s.repo.FindByOwner(ctx, accountID)
	if err != nil {
		s.cfg.Log.Error("Failed to list properties", "account_id", accountID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve properties", err)
	}
	return properties, nil
}

func (s *propertyService) Activate(ctx context.Context, id string) error {
	if err := s.repo.SetActive(ctx, id, true); err != nil {
		return s.mapRepoError(err, id, "Failed to activate property")
	}
	s.cfg.Log.Info("Property activated", "id", id)
	return nil
}

func (s *propertyService) Deactivate(ctx context.Context, id string) error {
	if err := s.repo.SetActive(ctx, id, false); err != nil {
		return s.mapRepoError(err, id, "Failed to deactivate property")
	}
	s.cfg.Log.Info("Property deactivated", "id", id)
	return nil
}

func (s *propertyService) AddPackage(ctx context.Context, pkg *model.Package) error {
	pkg.Status = 1

	if err := s.validator.ValidatePackage(pkg); err != nil {
		s.cfg.Log.Warn("Package validation failed", "error", err)
		return validationError(err)
	}

	if err := s.repo.CreatePackage(ctx, pkg); err != nil {
		s.cfg.Log.Error("Failed to create package", "name", pkg.PackageName, "error", err)
		return apperrors.Internal("Failed to create package", err)
	}

	s.cfg.Log.Info("Package created", "id", pkg.ID, "name", pkg.PackageName)
	return nil
}

func (s *propertyService) ListPackagesByOwner(ctx context.Context, accountID string) ([]*model.Package, error) {
	if accountID == "" {
		return nil, apperrors.InvalidInput("Account ID cannot be empty")
	}

	packages, err := s.repo.FindPackagesByOwner(ctx, accountID)
	if err != nil {
		s.cfg.Log.Error("Failed to list packages", "account_id", accountID, "error", err)
		return nil, apperrors.Internal("Failed to retrieve packages", err)
	}
	return packages, nil
}

func (s *propertyService) ListVenuePackages(ctx context.Context, propertyID string) ([]model.PackageRef, error) {
	refs, err := s.repo.FindPackageRefs(ctx, propertyID)
	if err != nil {
		return nil, s.mapRepoError(err, propertyID, "Failed to retrieve venue packages")
	}
	return refs, nil
}

func (s *propertyService) mapRepoError(err error, id, internalMsg string) error {
	switch {
	case errors.Is(err, propertieserrors.ErrNotFound):
		return apperrors.NotFoundWithID("Property", id)
	case errors.Is(err, propertieserrors.ErrInvalidID):
		return apperrors.InvalidInput("Property ID is not a valid ObjectID")
	default:
		s.cfg.Log.Error(internalMsg, "id", id, "error", err)
		return apperrors.Internal(internalMsg, err)
	}
}

func validationError(err error) error {
	if verrs, ok := err.(validator.ValidationErrors); ok {
		return apperrors.Validation("Property validation failed", map[string]any{"errors": verrs})
	}
	return apperrors.Validation("Property validation failed", map[string]any{"error": err.Error()})
}
