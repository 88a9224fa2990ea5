package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/Stockify-api/internal/application/dto"
	"github.com/jhoicas/Stockify-api/internal/domain"
	"github.com/jhoicas/Stockify-api/internal/domain/entity"
	"github.com/jhoicas/Stockify-api/internal/domain/rbac"
	"github.com/jhoicas/Stockify-api/internal/domain/reference"
	"github.com/jhoicas/Stockify-api/internal/domain/repository"
)

// HierarchyUseCase CRUD de gamas, familias y embalajes. Escritura con products.manage,
// lectura con catalog.view.
type HierarchyUseCase struct {
	ranges     repository.RangeRepository
	families   repository.FamilyRepository
	packagings repository.PackagingRepository
}

// NewHierarchyUseCase construye el caso de uso.
func NewHierarchyUseCase(ranges repository.RangeRepository, families repository.FamilyRepository, packagings repository.PackagingRepository) *HierarchyUseCase {
	return &HierarchyUseCase{ranges: ranges, families: families, packagings: packagings}
}

// ─── Gamas ────────────────────────────────────────────────────────────────────

// CreateRange crea una gama. El nombre es único.
func (uc *HierarchyUseCase) CreateRange(ctx context.Context, p rbac.Principal, in dto.RangeRequest) (*dto.RangeResponse, error) {
	if !rbac.Authorize(p, rbac.ManageProducts) {
		return nil, domain.ErrForbidden
	}
	name := normalizeName(in.Name)
	if name == "" {
		return nil, domain.FieldErr("name", domain.ErrMissingRequiredField)
	}
	r := &entity.Range{ID: uuid.New().String(), Name: name, Description: strings.TrimSpace(in.Description)}
	if err := uc.ranges.Create(ctx, r); err != nil {
		return nil, err
	}
	return toRangeResponse(r, nil), nil
}

// ListRanges lista todas las gamas con sus familias ordenadas por nombre.
func (uc *HierarchyUseCase) ListRanges(ctx context.Context, p rbac.Principal) ([]dto.RangeResponse, error) {
	if !rbac.Authorize(p, rbac.ViewCatalog) {
		return nil, domain.ErrForbidden
	}
	ranges, err := uc.ranges.List(ctx)
	if err != nil {
		return nil, err
	}
	fams, err := uc.families.List(ctx)
	if err != nil {
		return nil, err
	}
	byRange := make(map[string][]*entity.Family, len(ranges))
	for _, f := range fams {
		byRange[f.RangeID] = append(byRange[f.RangeID], f)
	}
	out := make([]dto.RangeResponse, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, *toRangeResponse(r, byRange[r.ID]))
	}
	return out, nil
}

// GetRange obtiene una gama con sus familias.
func (uc *HierarchyUseCase) GetRange(ctx context.Context, p rbac.Principal, id string) (*dto.RangeResponse, error) {
	if !rbac.Authorize(p, rbac.ViewCatalog) {
		return nil, domain.ErrForbidden
	}
	r, err := uc.ranges.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	fams, err := uc.families.ListByRange(ctx, id)
	if err != nil {
		return nil, err
	}
	return toRangeResponse(r, fams), nil
}

// UpdateRange renombra o redescribe una gama. Renombrar cambia la letra de las referencias futuras.
func (uc *HierarchyUseCase) UpdateRange(ctx context.Context, p rbac.Principal, id string, in dto.RangeRequest) (*dto.RangeResponse, error) {
	if !rbac.Authorize(p, rbac.ManageProducts) {
		return nil, domain.ErrForbidden
	}
	name := normalizeName(in.Name)
	if name == "" {
		return nil, domain.FieldErr("name", domain.ErrMissingRequiredField)
	}
	r, err := uc.ranges.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	r.Name, r.Description = name, strings.TrimSpace(in.Description)
	if err := uc.ranges.Update(ctx, r); err != nil {
		return nil, err
	}
	return toRangeResponse(r, nil), nil
}

// DeleteRange borra la gama y en cascada sus familias y productos.
func (uc *HierarchyUseCase) DeleteRange(ctx context.Context, p rbac.Principal, id string) error {
	if !rbac.Authorize(p, rbac.ManageProducts) {
		return domain.ErrForbidden
	}
	return deleteExisting(ctx, id, uc.ranges.GetByID, uc.ranges.Delete)
}

// ─── Familias ─────────────────────────────────────────────────────────────────

// CreateFamily crea una familia dentro de una gama existente.
func (uc *HierarchyUseCase) CreateFamily(ctx context.Context, p rbac.Principal, in dto.FamilyRequest) (*dto.FamilyResponse, error) {
	if !rbac.Authorize(p, rbac.ManageProducts) {
		return nil, domain.ErrForbidden
	}
	f := &entity.Family{ID: uuid.New().String()}
	if err := uc.fillFamily(ctx, f, in); err != nil {
		return nil, err
	}
	if err := uc.families.Create(ctx, f); err != nil {
		return nil, err
	}
	return toFamilyResponse(f), nil
}

// ListFamilies lista familias; con rangeID filtra por gama.
func (uc *HierarchyUseCase) ListFamilies(ctx context.Context, p rbac.Principal, rangeID string) ([]dto.FamilyResponse, error) {
	if !rbac.Authorize(p, rbac.ViewCatalog) {
		return nil, domain.ErrForbidden
	}
	var (
		fams []*entity.Family
		err  error
	)
	if rangeID != "" {
		fams, err = uc.families.ListByRange(ctx, rangeID)
	} else {
		fams, err = uc.families.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	return toFamilyResponses(fams), nil
}

// GetFamily obtiene una familia.
func (uc *HierarchyUseCase) GetFamily(ctx context.Context, p rbac.Principal, id string) (*dto.FamilyResponse, error) {
	if !rbac.Authorize(p, rbac.ViewCatalog) {
		return nil, domain.ErrForbidden
	}
	f, err := uc.families.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrNotFound
	}
	return toFamilyResponse(f), nil
}

// UpdateFamily renombra o mueve una familia de gama.
func (uc *HierarchyUseCase) UpdateFamily(ctx context.Context, p rbac.Principal, id string, in dto.FamilyRequest) (*dto.FamilyResponse, error) {
	if !rbac.Authorize(p, rbac.ManageProducts) {
		return nil, domain.ErrForbidden
	}
	f, err := uc.families.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.fillFamily(ctx, f, in); err != nil {
		return nil, err
	}
	if err := uc.families.Update(ctx, f); err != nil {
		return nil, err
	}
	return toFamilyResponse(f), nil
}

// DeleteFamily borra la familia y en cascada sus productos.
func (uc *HierarchyUseCase) DeleteFamily(ctx context.Context, p rbac.Principal, id string) error {
	if !rbac.Authorize(p, rbac.ManageProducts) {
		return domain.ErrForbidden
	}
	return deleteExisting(ctx, id, uc.families.GetByID, uc.families.Delete)
}

func (uc *HierarchyUseCase) fillFamily(ctx context.Context, f *entity.Family, in dto.FamilyRequest) error {
	name := normalizeName(in.Name)
	if name == "" {
		return domain.FieldErr("name", domain.ErrMissingRequiredField)
	}
	r, err := uc.ranges.GetByID(ctx, in.RangeID)
	if err != nil {
		return err
	}
	if r == nil {
		return domain.FieldErr("range_id", fmt.Errorf("%w: gama inexistente", domain.ErrInvalidInput))
	}
	f.Name, f.RangeID = name, r.ID
	return nil
}

// ─── Embalajes ────────────────────────────────────────────────────────────────

// CreatePackaging crea un embalaje. Code es único y Capacity > 0.
func (uc *HierarchyUseCase) CreatePackaging(ctx context.Context, p rbac.Principal, in dto.PackagingRequest) (*dto.PackagingResponse, error) {
	if !rbac.Authorize(p, rbac.ManageProducts) {
		return nil, domain.ErrForbidden
	}
	pk := &entity.Packaging{ID: uuid.New().String()}
	if err := fillPackaging(pk, in); err != nil {
		return nil, err
	}
	if err := uc.packagings.Create(ctx, pk); err != nil {
		return nil, err
	}
	return toPackagingResponse(pk), nil
}

// ListPackagings lista los embalajes.
func (uc *HierarchyUseCase) ListPackagings(ctx context.Context, p rbac.Principal) ([]dto.PackagingResponse, error) {
	if !rbac.Authorize(p, rbac.ViewCatalog) {
		return nil, domain.ErrForbidden
	}
	list, err := uc.packagings.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PackagingResponse, 0, len(list))
	for _, pk := range list {
		out = append(out, *toPackagingResponse(pk))
	}
	return out, nil
}

// GetPackaging obtiene un embalaje.
func (uc *HierarchyUseCase) GetPackaging(ctx context.Context, p rbac.Principal, id string) (*dto.PackagingResponse, error) {
	if !rbac.Authorize(p, rbac.ViewCatalog) {
		return nil, domain.ErrForbidden
	}
	pk, err := uc.packagings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pk == nil {
		return nil, domain.ErrNotFound
	}
	return toPackagingResponse(pk), nil
}

// UpdatePackaging modifica un embalaje.
func (uc *HierarchyUseCase) UpdatePackaging(ctx context.Context, p rbac.Principal, id string, in dto.PackagingRequest) (*dto.PackagingResponse, error) {
	if !rbac.Authorize(p, rbac.ManageProducts) {
		return nil, domain.ErrForbidden
	}
	pk, err := uc.packagings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pk == nil {
		return nil, domain.ErrNotFound
	}
	if err := fillPackaging(pk, in); err != nil {
		return nil, err
	}
	if err := uc.packagings.Update(ctx, pk); err != nil {
		return nil, err
	}
	return toPackagingResponse(pk), nil
}

// DeletePackaging borra el embalaje y en cascada sus productos.
func (uc *HierarchyUseCase) DeletePackaging(ctx context.Context, p rbac.Principal, id string) error {
	if !rbac.Authorize(p, rbac.ManageProducts) {
		return domain.ErrForbidden
	}
	return deleteExisting(ctx, id, uc.packagings.GetByID, uc.packagings.Delete)
}

func fillPackaging(pk *entity.Packaging, in dto.PackagingRequest) error {
	name := normalizeName(in.Name)
	if name == "" {
		return domain.FieldErr("name", domain.ErrMissingRequiredField)
	}
	code := strings.TrimSpace(in.Code)
	if code == "" {
		return domain.FieldErr("code", domain.ErrMissingRequiredField)
	}
	if !in.Capacity.IsPositive() {
		return domain.FieldErr("capacity", fmt.Errorf("%w: debe ser mayor que cero", domain.ErrInvalidInput))
	}
	unit := strings.TrimSpace(in.Unit)
	if unit == "" {
		return domain.FieldErr("unit", domain.ErrMissingRequiredField)
	}
	pk.Name, pk.Code, pk.Capacity, pk.Unit = name, code, in.Capacity, unit
	return nil
}

// ─── helpers ──────────────────────────────────────────────────────────────────

// deleteExisting devuelve ErrNotFound si get no encuentra la entidad.
func deleteExisting[T any](ctx context.Context, id string, get func(context.Context, string) (*T, error), del func(context.Context, string) error) error {
	v, err := get(ctx, id)
	if err != nil {
		return err
	}
	if v == nil {
		return domain.ErrNotFound
	}
	return del(ctx, id)
}

func toRangeResponse(r *entity.Range, fams []*entity.Family) *dto.RangeResponse {
	return &dto.RangeResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Families:    toFamilyResponses(fams),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// toFamilyResponses ordena con la misma colación que la derivación de referencias, así el
// índice mostrado coincide con el de la referencia.
func toFamilyResponses(fams []*entity.Family) []dto.FamilyResponse {
	sorted := reference.SortFamilies(fams)
	out := make([]dto.FamilyResponse, 0, len(sorted))
	for _, f := range sorted {
		out = append(out, *toFamilyResponse(f))
	}
	return out
}

func toFamilyResponse(f *entity.Family) *dto.FamilyResponse {
	return &dto.FamilyResponse{ID: f.ID, Name: f.Name, RangeID: f.RangeID, CreatedAt: f.CreatedAt, UpdatedAt: f.UpdatedAt}
}

func toPackagingResponse(pk *entity.Packaging) *dto.PackagingResponse {
	return &dto.PackagingResponse{
		ID: pk.ID, Name: pk.Name, Code: pk.Code, Capacity: pk.Capacity, Unit: pk.Unit,
		CreatedAt: pk.CreatedAt, UpdatedAt: pk.UpdatedAt,
	}
}
