// Package pricing derives a product's minimum cost from its width and the
// coefficient of its type.
package pricing

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Spok95/decor-catalog/internal/domain/errs"
	"github.com/Spok95/decor-catalog/internal/domain/products"
	"github.com/Spok95/decor-catalog/internal/infra/db"
	"github.com/Spok95/decor-catalog/internal/infra/metrics"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// BaseCostPerMeter is the price of one metre of width before the type coefficient.
var BaseCostPerMeter = decimal.NewFromInt(100)

// Cost returns width * BaseCostPerMeter * coefficient, rounded half-to-even to kopecks.
func Cost(width, coefficient decimal.Decimal) decimal.Decimal {
	return width.Mul(BaseCostPerMeter).Mul(coefficient).RoundBank(2)
}

type Store interface {
	ListIDs(ctx context.Context) ([]int64, error)
	CostInputs(ctx context.Context, id int64) (*products.CostInputs, error)
	SetMinCost(ctx context.Context, id int64, cost decimal.Decimal) error
}

// TxStore is a Store that can run a unit of work in one transaction.
type TxStore interface {
	Store
	WithinTx(ctx context.Context, fn func(Store) error) error
}

type pgStore struct {
	*products.Repo
	q db.Querier
}

// NewPGStore backs the service with the products table.
func NewPGStore(q db.Querier) TxStore {
	return &pgStore{Repo: products.NewRepo(q), q: q}
}

func (s *pgStore) WithinTx(ctx context.Context, fn func(Store) error) error {
	return db.InTx(ctx, s.q, func(tx pgx.Tx) error {
		return fn(products.NewRepo(tx))
	})
}

// Result reports one recalculation batch.
type Result struct {
	RunID   string
	Updated int
	Skipped int
}

type Service struct {
	store TxStore
	log   *slog.Logger
}

func NewService(store TxStore, log *slog.Logger) *Service {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{store: store, log: log.With("component", "pricing")}
}

// ComputeProductCost returns ok=false when the product or its type coefficient
// cannot be found; the caller should skip such a product.
func (s *Service) ComputeProductCost(ctx context.Context, id int64) (decimal.Decimal, bool, error) {
	return computeCost(ctx, s.store, id)
}

func computeCost(ctx context.Context, st Store, id int64) (decimal.Decimal, bool, error) {
	in, err := st.CostInputs(ctx, id)
	if err != nil {
		return decimal.Zero, false, err
	}
	if in == nil {
		return decimal.Zero, false, nil
	}
	return Cost(in.Width, in.Coefficient), true, nil
}

// RecalculateAll rewrites min_cost of every product in one transaction.
// Products without a resolvable type are skipped; a failed write rolls back
// the whole batch.
func (s *Service) RecalculateAll(ctx context.Context) (Result, error) {
	res := Result{RunID: uuid.NewString()}
	log := s.log.With("run_id", res.RunID)
	start := time.Now()

	err := s.store.WithinTx(ctx, func(st Store) error {
		res.Updated, res.Skipped = 0, 0

		ids, err := st.ListIDs(ctx)
		if err != nil {
			return err
		}
		for _, id := range ids {
			cost, ok, err := computeCost(ctx, st, id)
			if err != nil {
				return fmt.Errorf("product %d: %w", id, err)
			}
			if !ok {
				res.Skipped++
				log.Warn("product skipped: no width or type coefficient", "product_id", id)
				continue
			}
			if err := st.SetMinCost(ctx, id, cost); err != nil {
				return fmt.Errorf("product %d: %w", id, err)
			}
			res.Updated++
		}
		return nil
	})
	metrics.RecalcDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.RecalcRuns.WithLabelValues("error").Inc()
		log.Error("recalculation rolled back", "err", err)
		return Result{RunID: res.RunID}, errs.Storage("pricing.recalculate", err)
	}

	metrics.RecalcRuns.WithLabelValues("ok").Inc()
	metrics.RecalcProducts.WithLabelValues("updated").Add(float64(res.Updated))
	metrics.RecalcProducts.WithLabelValues("skipped").Add(float64(res.Skipped))
	log.Info("recalculation committed", "updated", res.Updated, "skipped", res.Skipped)
	return res, nil
}
