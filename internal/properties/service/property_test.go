package service

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	propertieserrors "venuedesk/internal/properties/errors"
	"venuedesk/internal/properties/validator"
	"venuedesk/pkg/config"
	apperrors "venuedesk/pkg/errors"
	"venuedesk/pkg/logger"
	"venuedesk/pkg/model"
)

type mockPropertyRepo struct {
	createFn          func(ctx context.Context, property *model.Property) error
	updateFn          func(ctx context.Context, id string, property *model.Property) error
	findByIDFn        func(ctx context.Context, id string) (*model.PropertyWithPackages, error)
	findActiveFn      func(ctx context.Context) ([]*model.PropertyWithPackages, error)
	findByOwnerFn     func(ctx context.Context, accountID string) ([]*model.Property, error)
	setActiveFn       func(ctx context.Context, id string, active bool) error
	createPackageFn   func(ctx context.Context, pkg *model.Package) error
	packagesByOwnerFn func(ctx context.Context, accountID string) ([]*model.Package, error)
	packageRefsFn     func(ctx context.Context, propertyID string) ([]model.PackageRef, error)
}

func (m *mockPropertyRepo) Create(ctx context.Context, property *model.Property) error {
	return m.createFn(ctx, property)
}

func (m *mockPropertyRepo) Update(ctx context.Context, id string, property *model.Property) error {
	return m.updateFn(ctx, id, property)
}

func (m *mockPropertyRepo) FindByID(ctx context.Context, id string) (*model.PropertyWithPackages, error) {
	return m.findByIDFn(ctx, id)
}

func (m *mockPropertyRepo) FindActiveWithPackages(ctx context.Context) ([]*model.PropertyWithPackages, error) {
	return m.findActiveFn(ctx)
}

func (m *mockPropertyRepo) FindByOwner(ctx context.Context, accountID string) ([]*model.Property, error) {
	return m.findByOwnerFn(ctx, accountID)
}

func (m *mockPropertyRepo) SetActive(ctx context.Context, id string, active bool) error {
	return m.setActiveFn(ctx, id, active)
}

func (m *mockPropertyRepo) CreatePackage(ctx context.Context, pkg *model.Package) error {
	return m.createPackageFn(ctx, pkg)
}

func (m *mockPropertyRepo) FindPackagesByOwner(ctx context.Context, accountID string) ([]*model.Package, error) {
	return m.packagesByOwnerFn(ctx, accountID)
}

func (m *mockPropertyRepo) FindPackageRefs(ctx context.Context, propertyID string) ([]model.PackageRef, error) {
	return m.packageRefsFn(ctx, propertyID)
}

func newTestService(repo *mockPropertyRepo) PropertyService {
	cfg := &config.Config{Log: logger.New(logger.Config{Output: io.Discard})}
	return NewPropertyService(repo, validator.NewPropertyValidator(cfg.Log), cfg)
}

func validProperty() *model.Property {
	return &model.Property{
		Title:       "Rose Garden Banquet",
		City:        "Lahore",
		Description: "Garden venue with two halls",
		Partitions:  []string{"Hall A", "Hall B"},
		Gallery:     []string{"https://cdn.example.com/rose-garden/1.jpg"},
		VenueType:   2,
		Geometry: model.Geometry{
			Type:        "Point",
			Coordinates: []float64{74.3587, 31.5204},
		},
		UserID: "665f1f77bcf86cd799439022",
	}
}

func TestCreateMarksPropertyActive(t *testing.T) {
	var stored *model.Property
	repo := &mockPropertyRepo{
		createFn: func(_ context.Context, p *model.Property) error {
			stored = p
			return nil
		},
	}
	svc := newTestService(repo)

	require.NoError(t, svc.Create(context.Background(), validProperty()))
	require.NotNil(t, stored)
	assert.True(t, stored.Active)
}

func TestCreateRejectsInvalidGeometry(t *testing.T) {
	repo := &mockPropertyRepo{
		createFn: func(_ context.Context, _ *model.Property) error {
			t.Fatal("invalid property must not be persisted")
			return nil
		},
	}
	svc := newTestService(repo)

	property := validProperty()
	property.Geometry.Type = "Polygon"

	err := svc.Create(context.Background(), property)

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidation, apperrors.AsAppError(err).Code)
}

func TestCreateRequiresPartitions(t *testing.T) {
	repo := &mockPropertyRepo{
		createFn: func(_ context.Context, _ *model.Property) error {
			t.Fatal("invalid property must not be persisted")
			return nil
		},
	}
	svc := newTestService(repo)

	property := validProperty()
	property.Partitions = nil

	err := svc.Create(context.Background(), property)

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidation, apperrors.AsAppError(err).Code)
}

func TestGetByIDMapsNotFound(t *testing.T) {
	repo := &mockPropertyRepo{
		findByIDFn: func(_ context.Context, _ string) (*model.PropertyWithPackages, error) {
			return nil, propertieserrors.ErrNotFound
		},
	}
	svc := newTestService(repo)

	_, err := svc.GetByID(context.Background(), "665f1f77bcf86cd799439011")

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.AsAppError(err).Code)
}

func TestGetByIDMapsInvalidID(t *testing.T) {
	repo := &mockPropertyRepo{
		findByIDFn: func(_ context.Context, _ string) (*model.PropertyWithPackages, error) {
			return nil, propertieserrors.ErrInvalidID
		},
	}
	svc := newTestService(repo)

	_, err := svc.GetByID(context.Background(), "bogus")

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.AsAppError(err).Code)
}

func TestActivateAndDeactivateToggleVisibility(t *testing.T) {
	var calls []bool
	repo := &mockPropertyRepo{
		setActiveFn: func(_ context.Context, id string, active bool) error {
			assert.Equal(t, "665f1f77bcf86cd799439011", id)
			calls = append(calls, active)
			return nil
		},
	}
	svc := newTestService(repo)

	require.NoError(t, svc.Deactivate(context.Background(), "665f1f77bcf86cd799439011"))
	require.NoError(t, svc.Activate(context.Background(), "665f1f77bcf86cd799439011"))
	assert.Equal(t, []bool{false, true}, calls)
}

func TestAddPackageDefaultsStatus(t *testing.T) {
	var stored *model.Package
	repo := &mockPropertyRepo{
		createPackageFn: func(_ context.Context, p *model.Package) error {
			stored = p
			return nil
		},
	}
	svc := newTestService(repo)

	pkg := &model.Package{
		PackageName: "Premium Catering",
		UserID:      "665f1f77bcf86cd799439022",
	}
	require.NoError(t, svc.AddPackage(context.Background(), pkg))
	require.NotNil(t, stored)
	assert.Equal(t, 1, stored.Status)
}

func TestListByOwnerRequiresID(t *testing.T) {
	svc := newTestService(&mockPropertyRepo{})

	_, err := svc.ListByOwner(context.Background(), "")

	require.Error(t, err)
	assert.Equal(t, apperrors.CodeInvalidInput, apperrors.AsAppError(err).Code)
}
