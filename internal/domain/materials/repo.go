package materials

import (
	"context"
	"errors"

	"github.com/Spok95/decor-catalog/internal/domain/errs"
	"github.com/Spok95/decor-catalog/internal/infra/db"
	"github.com/jackc/pgx/v5"
)

type Repo struct{ db db.Querier }

func NewRepo(q db.Querier) *Repo { return &Repo{db: q} }

const selectMaterial = `
	SELECT m.id_material, COALESCE(m.id_type_material, 0), COALESCE(tm.type_material, ''),
	       m.material_name, m.unit_price, m.stock_quantity, m.min_quantity, m.package_quantity, m.unit
	FROM materials m
	LEFT JOIN type_material tm ON tm.id_type_material = m.id_type_material
`

func scanMaterial(row pgx.Row, m *Material) error {
	return row.Scan(
		&m.ID,
		&m.TypeID,
		&m.TypeName,
		&m.Name,
		&m.UnitPrice,
		&m.StockQuantity,
		&m.MinQuantity,
		&m.PackageQuantity,
		&m.Unit,
	)
}

/* Materials CRUD */

func (r *Repo) Create(ctx context.Context, in Input) (int64, error) {
	var id int64
	err := db.InTx(ctx, r.db, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, `
			INSERT INTO materials
			(material_name, id_type_material, unit_price, stock_quantity, min_quantity, package_quantity, unit)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
			RETURNING id_material
		`, in.Name, in.TypeID, in.UnitPrice, in.StockQuantity, in.MinQuantity, in.PackageQuantity, string(in.Unit)).Scan(&id)
	})
	if err != nil {
		return 0, errs.Storage("materials.create", err)
	}
	return id, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Material, error) {
	var m Material
	if err := scanMaterial(r.db.QueryRow(ctx, selectMaterial+` WHERE m.id_material = $1`, id), &m); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, errs.Storage("materials.get", err)
	}
	return &m, nil
}

// Update overwrites every writable field. A missing id yields errs.ErrNotFound.
func (r *Repo) Update(ctx context.Context, id int64, in Input) error {
	err := db.InTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE materials
			SET material_name = $2,
			    id_type_material = $3,
			    unit_price = $4,
			    stock_quantity = $5,
			    min_quantity = $6,
			    package_quantity = $7,
			    unit = $8
			WHERE id_material = $1
		`, id, in.Name, in.TypeID, in.UnitPrice, in.StockQuantity, in.MinQuantity, in.PackageQuantity, string(in.Unit))
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return errs.ErrNotFound
		}
		return nil
	})
	return errs.Storage("materials.update", err)
}

func (r *Repo) List(ctx context.Context) ([]Material, error) {
	rows, err := r.db.Query(ctx, selectMaterial+` ORDER BY m.material_name, m.id_material`)
	if err != nil {
		return nil, errs.Storage("materials.list", err)
	}
	defer rows.Close()

	var out []Material
	for rows.Next() {
		var m Material
		if err := scanMaterial(rows, &m); err != nil {
			return nil, errs.Storage("materials.list", err)
		}
		out = append(out, m)
	}
	return out, errs.Storage("materials.list", rows.Err())
}

/* Types */

func (r *Repo) ListTypes(ctx context.Context) ([]Type, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id_type_material, type_material
		FROM type_material
		ORDER BY type_material
	`)
	if err != nil {
		return nil, errs.Storage("material_types.list", err)
	}
	defer rows.Close()

	var out []Type
	for rows.Next() {
		var t Type
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, errs.Storage("material_types.list", err)
		}
		out = append(out, t)
	}
	return out, errs.Storage("material_types.list", rows.Err())
}

func (r *Repo) GetType(ctx context.Context, id int64) (*Type, error) {
	var t Type
	err := r.db.QueryRow(ctx, `
		SELECT id_type_material, type_material
		FROM type_material WHERE id_type_material = $1
	`, id).Scan(&t.ID, &t.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, errs.Storage("material_types.get", err)
	}
	return &t, nil
}
