package catalog

import (
	"context"
	"fmt"

	"github.com/jhoicas/Stockify-api/internal/domain"
	"github.com/jhoicas/Stockify-api/internal/domain/entity"
	"github.com/jhoicas/Stockify-api/internal/domain/rbac"
	"github.com/jhoicas/Stockify-api/internal/domain/reference"
	"github.com/jhoicas/Stockify-api/internal/domain/repository"
)

// ReferenceService deriva y valida referencias a partir de los IDs de la jerarquía.
type ReferenceService struct {
	ranges     repository.RangeRepository
	families   repository.FamilyRepository
	packagings repository.PackagingRepository
}

// NewReferenceService construye el servicio sobre repos de lectura.
func NewReferenceService(ranges repository.RangeRepository, families repository.FamilyRepository, packagings repository.PackagingRepository) *ReferenceService {
	return &ReferenceService{ranges: ranges, families: families, packagings: packagings}
}

// DeriveReference devuelve la referencia que corresponde a (gama, familia, embalaje).
func (s *ReferenceService) DeriveReference(ctx context.Context, p rbac.Principal, rangeID, familyID, packagingID string) (string, error) {
	if !rbac.Authorize(p, rbac.ViewCatalog) {
		return "", domain.ErrForbidden
	}
	h, err := loadHierarchy(ctx, s.ranges, s.families, s.packagings, rangeID, familyID, packagingID)
	if err != nil {
		return "", err
	}
	return h.derive()
}

// ValidateReference informa si submitted coincide con la referencia derivada.
// Los errores de jerarquía (p. ej. ErrFamilleNotInGamme) se devuelven como error.
func (s *ReferenceService) ValidateReference(ctx context.Context, p rbac.Principal, rangeID, familyID, packagingID, submitted string) (bool, error) {
	expected, err := s.DeriveReference(ctx, p, rangeID, familyID, packagingID)
	if err != nil {
		return false, err
	}
	return expected == submitted, nil
}

// hierarchy gama, familia, embalaje y familias hermanas leídas con los mismos repos.
type hierarchy struct {
	rng       *entity.Range
	family    *entity.Family
	packaging *entity.Packaging
	siblings  []*entity.Family
}

func (h *hierarchy) derive() (string, error) {
	return reference.Derive(h.rng, h.siblings, h.family, h.packaging)
}

func (h *hierarchy) validate(submitted string) error {
	return reference.Validate(h.rng, h.siblings, h.family, h.packaging, submitted)
}

// loadHierarchy resuelve los tres IDs. Un ID inexistente es un error de validación del campo.
func loadHierarchy(
	ctx context.Context,
	ranges repository.RangeRepository,
	families repository.FamilyRepository,
	packagings repository.PackagingRepository,
	rangeID, familyID, packagingID string,
) (*hierarchy, error) {
	r, err := ranges.GetByID(ctx, rangeID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.FieldErr("range_id", fmt.Errorf("%w: gama inexistente", domain.ErrInvalidInput))
	}
	f, err := families.GetByID(ctx, familyID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.FieldErr("family_id", fmt.Errorf("%w: familia inexistente", domain.ErrInvalidInput))
	}
	if f.RangeID != r.ID {
		return nil, domain.FieldErr("family_id", domain.ErrFamilleNotInGamme)
	}
	pk, err := packagings.GetByID(ctx, packagingID)
	if err != nil {
		return nil, err
	}
	if pk == nil {
		return nil, domain.FieldErr("packaging_id", fmt.Errorf("%w: embalaje inexistente", domain.ErrInvalidInput))
	}
	siblings, err := families.ListByRange(ctx, r.ID)
	if err != nil {
		return nil, err
	}
	return &hierarchy{rng: r, family: f, packaging: pk, siblings: siblings}, nil
}
