package products

import (
	"context"
	"errors"

	"github.com/Spok95/decor-catalog/internal/domain/errs"
	"github.com/Spok95/decor-catalog/internal/infra/db"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type Repo struct{ db db.Querier }

// NewRepo binds a repository to a pool or to an open transaction.
func NewRepo(q db.Querier) *Repo { return &Repo{db: q} }

const selectProduct = `
	SELECT p.id_product, COALESCE(p.id_type_product, 0), COALESCE(tp.type_product, ''),
	       p.product_name, p.articul, p.min_cost, p.width
	FROM products p
	LEFT JOIN type_product tp ON tp.id_type_product = p.id_type_product
`

func scanProduct(row pgx.Row, p *Product) error {
	return row.Scan(&p.ID, &p.TypeID, &p.TypeName, &p.Name, &p.Articul, &p.MinCost, &p.Width)
}

/* Products */

func (r *Repo) List(ctx context.Context) ([]Product, error) {
	rows, err := r.db.Query(ctx, selectProduct+` ORDER BY p.product_name, p.id_product`)
	if err != nil {
		return nil, errs.Storage("products.list", err)
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, errs.Storage("products.list", err)
		}
		out = append(out, p)
	}
	return out, errs.Storage("products.list", rows.Err())
}

// GetByID returns nil, nil when the product does not exist.
func (r *Repo) GetByID(ctx context.Context, id int64) (*Product, error) {
	var p Product
	if err := scanProduct(r.db.QueryRow(ctx, selectProduct+` WHERE p.id_product = $1`, id), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, errs.Storage("products.get", err)
	}
	return &p, nil
}

func (r *Repo) Create(ctx context.Context, in Input) (int64, error) {
	var id int64
	err := db.InTx(ctx, r.db, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, `
			INSERT INTO products (articul, id_type_product, product_name, min_cost, width)
			VALUES ($1,$2,$3,$4,$5)
			RETURNING id_product
		`, in.Articul, in.TypeID, in.Name, in.MinCost, in.Width).Scan(&id)
	})
	if err != nil {
		return 0, errs.Storage("products.create", err)
	}
	return id, nil
}

// Update overwrites every writable field. A missing id yields errs.ErrNotFound.
func (r *Repo) Update(ctx context.Context, id int64, in Input) error {
	err := db.InTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE products
			SET articul = $2,
			    id_type_product = $3,
			    product_name = $4,
			    min_cost = $5,
			    width = $6
			WHERE id_product = $1
		`, id, in.Articul, in.TypeID, in.Name, in.MinCost, in.Width)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return errs.ErrNotFound
		}
		return nil
	})
	return errs.Storage("products.update", err)
}

/* Pricing support */

func (r *Repo) ListIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT id_product FROM products ORDER BY id_product`)
	if err != nil {
		return nil, errs.Storage("products.list_ids", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, errs.Storage("products.list_ids", err)
		}
		ids = append(ids, id)
	}
	return ids, errs.Storage("products.list_ids", rows.Err())
}

// CostInputs returns nil, nil when the product or its type is missing.
func (r *Repo) CostInputs(ctx context.Context, id int64) (*CostInputs, error) {
	var in CostInputs
	err := r.db.QueryRow(ctx, `
		SELECT p.width, tp.coefficient_type_product
		FROM products p
		JOIN type_product tp ON tp.id_type_product = p.id_type_product
		WHERE p.id_product = $1
	`, id).Scan(&in.Width, &in.Coefficient)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, errs.Storage("products.cost_inputs", err)
	}
	return &in, nil
}

func (r *Repo) SetMinCost(ctx context.Context, id int64, cost decimal.Decimal) error {
	err := db.InTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `UPDATE products SET min_cost = $2 WHERE id_product = $1`, id, cost)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return errs.ErrNotFound
		}
		return nil
	})
	return errs.Storage("products.set_min_cost", err)
}

/* Types */

func (r *Repo) ListTypes(ctx context.Context) ([]Type, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id_type_product, type_product, coefficient_type_product
		FROM type_product
		ORDER BY type_product
	`)
	if err != nil {
		return nil, errs.Storage("product_types.list", err)
	}
	defer rows.Close()

	var out []Type
	for rows.Next() {
		var t Type
		if err := rows.Scan(&t.ID, &t.Name, &t.Coefficient); err != nil {
			return nil, errs.Storage("product_types.list", err)
		}
		out = append(out, t)
	}
	return out, errs.Storage("product_types.list", rows.Err())
}

// GetType returns nil, nil when the type does not exist.
func (r *Repo) GetType(ctx context.Context, id int64) (*Type, error) {
	var t Type
	err := r.db.QueryRow(ctx, `
		SELECT id_type_product, type_product, coefficient_type_product
		FROM type_product WHERE id_type_product = $1
	`, id).Scan(&t.ID, &t.Name, &t.Coefficient)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, errs.Storage("product_types.get", err)
	}
	return &t, nil
}
