package catalog_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/Stockify-api/internal/application/catalog"
	"github.com/jhoicas/Stockify-api/internal/domain"
	"github.com/jhoicas/Stockify-api/internal/domain/entity"
	"github.com/jhoicas/Stockify-api/internal/domain/repository"
)

// memCatalog implementa los cuatro repos del catálogo en memoria; RunCatalog deshace los cambios
// si fn devuelve error.
type memCatalog struct {
	mu         sync.Mutex
	ranges     map[string]*entity.Range
	families   map[string]*entity.Family
	packagings map[string]*entity.Packaging
	products   map[string]*entity.Product
	txCount    int
}

func newMemCatalog() *memCatalog {
	return &memCatalog{
		ranges:     map[string]*entity.Range{},
		families:   map[string]*entity.Family{},
		packagings: map[string]*entity.Packaging{},
		products:   map[string]*entity.Product{},
	}
}

var _ catalog.CatalogTxRunner = (*memCatalog)(nil)

func (m *memCatalog) RunCatalog(ctx context.Context, fn func(
	repository.RangeRepository, repository.FamilyRepository, repository.PackagingRepository, repository.ProductRepository,
) error) error {
	m.mu.Lock()
	m.txCount++
	snap := make(map[string]*entity.Product, len(m.products))
	for k, v := range m.products {
		snap[k] = v
	}
	m.mu.Unlock()
	if err := fn(m.Ranges(), m.Families(), m.Packagings(), m.Products()); err != nil {
		m.mu.Lock()
		m.products = snap
		m.mu.Unlock()
		return err
	}
	return nil
}

type memRanges struct{ m *memCatalog }
type memFamilies struct{ m *memCatalog }
type memPackagings struct{ m *memCatalog }
type memProducts struct{ m *memCatalog }

func (m *memCatalog) Ranges() *memRanges         { return &memRanges{m} }
func (m *memCatalog) Families() *memFamilies     { return &memFamilies{m} }
func (m *memCatalog) Packagings() *memPackagings { return &memPackagings{m} }
func (m *memCatalog) Products() *memProducts     { return &memProducts{m} }

var (
	_ repository.RangeRepository     = (*memRanges)(nil)
	_ repository.FamilyRepository    = (*memFamilies)(nil)
	_ repository.PackagingRepository = (*memPackagings)(nil)
	_ repository.ProductRepository   = (*memProducts)(nil)
)

func stamp(created, updated *time.Time) {
	now := time.Now()
	if created.IsZero() {
		*created = now
	}
	*updated = now
}

// ── gamas ──

func (r *memRanges) Create(_ context.Context, v *entity.Range) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, ex := range r.m.ranges {
		if ex.Name == v.Name {
			return domain.FieldErr("name", domain.ErrDuplicate)
		}
	}
	stamp(&v.CreatedAt, &v.UpdatedAt)
	cp := *v
	r.m.ranges[v.ID] = &cp
	return nil
}

func (r *memRanges) GetByID(_ context.Context, id string) (*entity.Range, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if v, ok := r.m.ranges[id]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, nil
}

func (r *memRanges) List(_ context.Context) ([]*entity.Range, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := make([]*entity.Range, 0, len(r.m.ranges))
	for _, v := range r.m.ranges {
		cp := *v
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memRanges) Update(_ context.Context, v *entity.Range) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	stamp(&v.CreatedAt, &v.UpdatedAt)
	cp := *v
	r.m.ranges[v.ID] = &cp
	return nil
}

func (r *memRanges) Delete(_ context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.ranges, id)
	for fid, f := range r.m.families {
		if f.RangeID == id {
			delete(r.m.families, fid)
		}
	}
	for pid, p := range r.m.products {
		if p.RangeID == id {
			delete(r.m.products, pid)
		}
	}
	return nil
}

// ── familias ──

func (r *memFamilies) Create(_ context.Context, v *entity.Family) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	stamp(&v.CreatedAt, &v.UpdatedAt)
	cp := *v
	r.m.families[v.ID] = &cp
	return nil
}

func (r *memFamilies) GetByID(_ context.Context, id string) (*entity.Family, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if v, ok := r.m.families[id]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, nil
}

func (r *memFamilies) ListByRange(ctx context.Context, rangeID string) ([]*entity.Family, error) {
	all, _ := r.List(ctx)
	out := all[:0]
	for _, f := range all {
		if f.RangeID == rangeID {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *memFamilies) List(_ context.Context) ([]*entity.Family, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := make([]*entity.Family, 0, len(r.m.families))
	for _, v := range r.m.families {
		cp := *v
		out = append(out, &cp)
	}
	// orden de inserción arbitrario: la colación la aplica el caso de uso
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memFamilies) Update(_ context.Context, v *entity.Family) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	stamp(&v.CreatedAt, &v.UpdatedAt)
	cp := *v
	r.m.families[v.ID] = &cp
	return nil
}

func (r *memFamilies) Delete(_ context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.families, id)
	for pid, p := range r.m.products {
		if p.FamilyID == id {
			delete(r.m.products, pid)
		}
	}
	return nil
}

// ── embalajes ──

func (r *memPackagings) Create(_ context.Context, v *entity.Packaging) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, ex := range r.m.packagings {
		if ex.Code == v.Code {
			return domain.FieldErr("code", domain.ErrDuplicate)
		}
	}
	stamp(&v.CreatedAt, &v.UpdatedAt)
	cp := *v
	r.m.packagings[v.ID] = &cp
	return nil
}

func (r *memPackagings) GetByID(_ context.Context, id string) (*entity.Packaging, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if v, ok := r.m.packagings[id]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, nil
}

func (r *memPackagings) List(_ context.Context) ([]*entity.Packaging, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	out := make([]*entity.Packaging, 0, len(r.m.packagings))
	for _, v := range r.m.packagings {
		cp := *v
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memPackagings) Update(_ context.Context, v *entity.Packaging) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	stamp(&v.CreatedAt, &v.UpdatedAt)
	cp := *v
	r.m.packagings[v.ID] = &cp
	return nil
}

func (r *memPackagings) Delete(_ context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.packagings, id)
	for pid, p := range r.m.products {
		if p.PackagingID == id {
			delete(r.m.products, pid)
		}
	}
	return nil
}

// ── productos ──

func (r *memProducts) Create(_ context.Context, v *entity.Product) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, ex := range r.m.products {
		if ex.Reference == v.Reference {
			return domain.FieldErr("reference", domain.ErrDuplicate)
		}
	}
	stamp(&v.CreatedAt, &v.UpdatedAt)
	cp := *v
	r.m.products[v.ID] = &cp
	return nil
}

func (r *memProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if v, ok := r.m.products[id]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, nil
}

func (r *memProducts) Update(_ context.Context, v *entity.Product) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, ex := range r.m.products {
		if ex.ID != v.ID && ex.Reference == v.Reference {
			return domain.FieldErr("reference", domain.ErrDuplicate)
		}
	}
	stamp(&v.CreatedAt, &v.UpdatedAt)
	cp := *v
	r.m.products[v.ID] = &cp
	return nil
}

func (r *memProducts) List(_ context.Context, f repository.ProductFilter, limit, offset int) ([]*entity.Product, error) {
	return r.filter(func(p *entity.Product) bool {
		return (f.RangeID == "" || p.RangeID == f.RangeID) && (f.FamilyID == "" || p.FamilyID == f.FamilyID)
	}, limit, offset), nil
}

func (r *memProducts) ListExpiredBefore(_ context.Context, ref time.Time, limit, offset int) ([]*entity.Product, error) {
	return r.filter(func(p *entity.Product) bool { return p.ExpirationDate.Before(ref) }, limit, offset), nil
}

func (r *memProducts) filter(keep func(*entity.Product) bool, limit, offset int) []*entity.Product {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.m.products {
		if keep(p) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Reference < out[j].Reference })
	if offset >= len(out) {
		return nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out
}

func (r *memProducts) Delete(_ context.Context, id string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	delete(r.m.products, id)
	return nil
}
