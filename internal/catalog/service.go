// Package catalog is the entry point callers use for products and materials.
// Writes are normalized and validated, and their type is resolved, before the
// repository is touched.
package catalog

import (
	"context"
	"io"
	"log/slog"

	"github.com/Spok95/decor-catalog/internal/domain/errs"
	"github.com/Spok95/decor-catalog/internal/domain/materials"
	"github.com/Spok95/decor-catalog/internal/domain/products"
	"github.com/Spok95/decor-catalog/internal/domain/validate"
	"github.com/Spok95/decor-catalog/internal/infra/metrics"
)

type ProductStore interface {
	List(ctx context.Context) ([]products.Product, error)
	GetByID(ctx context.Context, id int64) (*products.Product, error)
	ListTypes(ctx context.Context) ([]products.Type, error)
	GetType(ctx context.Context, id int64) (*products.Type, error)
	Create(ctx context.Context, in products.Input) (int64, error)
	Update(ctx context.Context, id int64, in products.Input) error
}

type MaterialStore interface {
	List(ctx context.Context) ([]materials.Material, error)
	GetByID(ctx context.Context, id int64) (*materials.Material, error)
	ListTypes(ctx context.Context) ([]materials.Type, error)
	GetType(ctx context.Context, id int64) (*materials.Type, error)
	Create(ctx context.Context, in materials.Input) (int64, error)
	Update(ctx context.Context, id int64, in materials.Input) error
}

type Service struct {
	products  ProductStore
	materials MaterialStore
	log       *slog.Logger
}

func New(p ProductStore, m MaterialStore, log *slog.Logger) *Service {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{products: p, materials: m, log: log.With("component", "catalog")}
}

/* Products */

func (s *Service) ListProducts(ctx context.Context) ([]products.Product, error) {
	return s.products.List(ctx)
}

// GetProduct returns nil, nil when the product does not exist.
func (s *Service) GetProduct(ctx context.Context, id int64) (*products.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *Service) ListProductTypes(ctx context.Context) ([]products.Type, error) {
	return s.products.ListTypes(ctx)
}

func (s *Service) CreateProduct(ctx context.Context, in products.Input) (int64, error) {
	in = in.Normalize()
	var id int64
	err := s.checkProduct(ctx, in)
	if err == nil {
		id, err = s.products.Create(ctx, in)
	}
	s.record("product", "create", id, err)
	return id, err
}

func (s *Service) UpdateProduct(ctx context.Context, id int64, in products.Input) error {
	in = in.Normalize()
	err := s.checkProduct(ctx, in)
	if err == nil {
		err = s.products.Update(ctx, id, in)
	}
	s.record("product", "update", id, err)
	return err
}

func (s *Service) checkProduct(ctx context.Context, in products.Input) error {
	if err := validate.Product(in); err != nil {
		return err
	}
	t, err := s.products.GetType(ctx, in.TypeID)
	if err != nil {
		return err
	}
	if t == nil {
		return errs.Invalid("type_id", "unknown product type")
	}
	return nil
}

/* Materials */

func (s *Service) ListMaterials(ctx context.Context) ([]materials.Material, error) {
	return s.materials.List(ctx)
}

// GetMaterial returns nil, nil when the material does not exist.
func (s *Service) GetMaterial(ctx context.Context, id int64) (*materials.Material, error) {
	return s.materials.GetByID(ctx, id)
}

func (s *Service) ListMaterialTypes(ctx context.Context) ([]materials.Type, error) {
	return s.materials.ListTypes(ctx)
}

func (s *Service) CreateMaterial(ctx context.Context, in materials.Input) (int64, error) {
	in = in.Normalize()
	var id int64
	err := s.checkMaterial(ctx, in)
	if err == nil {
		id, err = s.materials.Create(ctx, in)
	}
	s.record("material", "create", id, err)
	return id, err
}

func (s *Service) UpdateMaterial(ctx context.Context, id int64, in materials.Input) error {
	in = in.Normalize()
	err := s.checkMaterial(ctx, in)
	if err == nil {
		err = s.materials.Update(ctx, id, in)
	}
	s.record("material", "update", id, err)
	return err
}

func (s *Service) checkMaterial(ctx context.Context, in materials.Input) error {
	if err := validate.Material(in); err != nil {
		return err
	}
	t, err := s.materials.GetType(ctx, in.TypeID)
	if err != nil {
		return err
	}
	if t == nil {
		return errs.Invalid("type_id", "unknown material type")
	}
	return nil
}

func (s *Service) record(entity, op string, id int64, err error) {
	result := metrics.Result(err)
	metrics.CatalogWrites.WithLabelValues(entity, op, result).Inc()

	switch result {
	case "ok":
		s.log.Info(entity+" saved", "op", op, "id", id)
	case "invalid", "not_found":
		s.log.Warn(entity+" rejected", "op", op, "id", id, "err", err)
	default:
		s.log.Error(entity+" write failed", "op", op, "id", id, "err", err)
	}
}
