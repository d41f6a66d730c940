package pricing

import (
	"context"
	"errors"
	"maps"
	"slices"
	"testing"

	"github.com/Spok95/decor-catalog/internal/domain/errs"
	"github.com/Spok95/decor-catalog/internal/domain/products"
	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fakeProduct struct {
	width   decimal.Decimal
	typeID  int64
	minCost decimal.Decimal
}

// fakeStore keeps products in memory; WithinTx works on a copy and publishes
// it only when fn succeeds.
type fakeStore struct {
	coef     map[int64]decimal.Decimal
	products map[int64]fakeProduct
	failSet  map[int64]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		coef:     map[int64]decimal.Decimal{},
		products: map[int64]fakeProduct{},
		failSet:  map[int64]bool{},
	}
}

func (s *fakeStore) ListIDs(context.Context) ([]int64, error) {
	ids := make([]int64, 0, len(s.products))
	for id := range s.products {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

func (s *fakeStore) CostInputs(_ context.Context, id int64) (*products.CostInputs, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, nil
	}
	c, ok := s.coef[p.typeID]
	if !ok {
		return nil, nil
	}
	return &products.CostInputs{Width: p.width, Coefficient: c}, nil
}

func (s *fakeStore) SetMinCost(_ context.Context, id int64, cost decimal.Decimal) error {
	if s.failSet[id] {
		return errs.Storage("products.set_min_cost", errors.New("check constraint violated"))
	}
	p, ok := s.products[id]
	if !ok {
		return errs.ErrNotFound
	}
	p.minCost = cost
	s.products[id] = p
	return nil
}

func (s *fakeStore) WithinTx(ctx context.Context, fn func(Store) error) error {
	work := &fakeStore{coef: s.coef, products: maps.Clone(s.products), failSet: s.failSet}
	if err := fn(work); err != nil {
		return err
	}
	s.products = work.products
	return nil
}

func TestCost(t *testing.T) {
	tests := []struct {
		width, coef, want string
	}{
		{"2.0", "1.5", "300.00"},
		{"0", "2.35", "0.00"},
		{"1.5", "0", "0.00"},
		{"0.01", "2.35", "2.35"},
		{"1.23", "4.34", "533.82"},
		{"0.33", "1.0005", "33.02"},
		{"0.01", "0.125", "0.12"}, // half to even
	}
	for _, tt := range tests {
		got := Cost(d(tt.width), d(tt.coef))
		if !got.Equal(d(tt.want)) {
			t.Errorf("Cost(%s, %s) = %s, want %s", tt.width, tt.coef, got, tt.want)
		}
	}
}

func TestComputeProductCost(t *testing.T) {
	st := newFakeStore()
	st.coef[1] = d("1.5")
	st.products[10] = fakeProduct{width: d("2.0"), typeID: 1}
	st.products[11] = fakeProduct{width: d("2.0"), typeID: 99}
	svc := NewService(st, nil)

	cost, ok, err := svc.ComputeProductCost(context.Background(), 10)
	if err != nil || !ok || !cost.Equal(d("300")) {
		t.Fatalf("got %s, %v, %v", cost, ok, err)
	}
	if cost.StringFixed(2) != "300.00" {
		t.Fatalf("formatted = %s", cost.StringFixed(2))
	}

	for _, id := range []int64{11, 12} {
		if _, ok, err := svc.ComputeProductCost(context.Background(), id); ok || err != nil {
			t.Fatalf("product %d: ok=%v err=%v, want skip", id, ok, err)
		}
	}
}

func TestRecalculateAllSkipsUnresolvable(t *testing.T) {
	st := newFakeStore()
	st.coef[1] = d("1.5")
	st.coef[2] = d("2.35")
	st.products[1] = fakeProduct{width: d("2.0"), typeID: 1, minCost: d("1")}
	st.products[2] = fakeProduct{width: d("1.0"), typeID: 2, minCost: d("1")}
	st.products[3] = fakeProduct{width: d("3.0"), typeID: 7, minCost: d("42.00")}
	svc := NewService(st, nil)

	res, err := svc.RecalculateAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Updated != 2 || res.Skipped != 1 {
		t.Fatalf("result = %+v", res)
	}
	if res.RunID == "" {
		t.Fatal("run id not set")
	}
	if !st.products[1].minCost.Equal(d("300")) || !st.products[2].minCost.Equal(d("235")) {
		t.Fatalf("not committed: %+v", st.products)
	}
	if !st.products[3].minCost.Equal(d("42")) {
		t.Fatalf("skipped product changed: %s", st.products[3].minCost)
	}
}

func TestRecalculateAllIdempotent(t *testing.T) {
	st := newFakeStore()
	st.coef[1] = d("4.34")
	st.products[1] = fakeProduct{width: d("1.23"), typeID: 1}
	st.products[2] = fakeProduct{width: d("0.5"), typeID: 1}
	svc := NewService(st, nil)

	if _, err := svc.RecalculateAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	first := maps.Clone(st.products)
	if _, err := svc.RecalculateAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	for id, p := range st.products {
		if !p.minCost.Equal(first[id].minCost) {
			t.Fatalf("product %d: %s then %s", id, first[id].minCost, p.minCost)
		}
	}
}

func TestRecalculateAllRollsBackOnWriteFailure(t *testing.T) {
	st := newFakeStore()
	st.coef[1] = d("1.5")
	st.products[1] = fakeProduct{width: d("2.0"), typeID: 1, minCost: d("10")}
	st.products[2] = fakeProduct{width: d("2.0"), typeID: 1, minCost: d("20")}
	st.failSet[2] = true
	svc := NewService(st, nil)

	res, err := svc.RecalculateAll(context.Background())
	if !errs.IsStorage(err) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if res.Updated != 0 {
		t.Fatalf("failed batch reported %d updates", res.Updated)
	}
	if !st.products[1].minCost.Equal(d("10")) || !st.products[2].minCost.Equal(d("20")) {
		t.Fatalf("partial commit: %+v", st.products)
	}
}

func TestRecalculateAllEmpty(t *testing.T) {
	res, err := NewService(newFakeStore(), nil).RecalculateAll(context.Background())
	if err != nil || res.Updated != 0 || res.Skipped != 0 {
		t.Fatalf("got %+v, %v", res, err)
	}
}
