package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/lib/pq"
)

// uniqueViolation is the Postgres error code raised by unique indexes.
const uniqueViolation = "23505"

// ErrDuplicate reports a unique-index conflict, raised when concurrent
// writers race past the facade's uniqueness pre-checks.
var ErrDuplicate = errors.New("store: duplicate value for unique column")

// Postgres is a table-backed Store. Every operation runs its own statement;
// Update wraps the read-mutate-write cycle in a transaction with a row lock
// so concurrent partial updates to the same record serialize cleanly.
type Postgres[T Entity[T]] struct {
	db  *sql.DB
	q   *goqu.Database
	tbl Table[T]
	now func() time.Time
}

// NewPostgres creates a Store over the given table mapping.
func NewPostgres[T Entity[T]](db *sql.DB, tbl Table[T]) *Postgres[T] {
	return &Postgres[T]{
		db:  db,
		q:   goqu.New("postgres", db),
		tbl: tbl,
		now: time.Now,
	}
}

func (p *Postgres[T]) Add(ctx context.Context, entity T) error {
	query, args, err := p.q.Insert(p.tbl.Name).Rows(p.tbl.Record(entity)).ToSQL()
	if err != nil {
		return fmt.Errorf("build insert for %s: %w", p.tbl.Name, err)
	}
	if _, err := p.db.ExecContext(ctx, query, args...); err != nil {
		return p.wrapExec("insert", err)
	}
	return nil
}

func (p *Postgres[T]) Get(ctx context.Context, id string) (T, error) {
	return p.getWhere(ctx, goqu.Ex{"id": id})
}

func (p *Postgres[T]) GetAll(ctx context.Context) ([]T, error) {
	return p.listWhere(ctx, nil)
}

func (p *Postgres[T]) Update(ctx context.Context, id string, mutate func(T) error) (T, error) {
	var zero T

	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return zero, fmt.Errorf("begin update of %s: %w", p.tbl.Name, err)
	}
	defer tx.Rollback()

	query, args, err := p.q.Select(p.tbl.Columns...).
		From(p.tbl.Name).
		Where(goqu.Ex{"id": id}).
		ForUpdate(exp.Wait).
		ToSQL()
	if err != nil {
		return zero, fmt.Errorf("build select for %s: %w", p.tbl.Name, err)
	}

	staged, err := p.tbl.Scan(tx.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return zero, nil
	}
	if err != nil {
		return zero, fmt.Errorf("load %s row: %w", p.tbl.Name, err)
	}

	if err := mutate(staged); err != nil {
		return zero, err
	}
	if fields := staged.Validate(); len(fields) > 0 {
		return zero, validationError(fields)
	}
	staged.Touch(p.now().UTC())

	query, args, err = p.q.Update(p.tbl.Name).
		Set(p.tbl.Record(staged)).
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return zero, fmt.Errorf("build update for %s: %w", p.tbl.Name, err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return zero, p.wrapExec("update", err)
	}
	if err := tx.Commit(); err != nil {
		return zero, fmt.Errorf("commit update of %s: %w", p.tbl.Name, err)
	}
	return staged, nil
}

func (p *Postgres[T]) Delete(ctx context.Context, id string) error {
	query, args, err := p.q.Delete(p.tbl.Name).Where(goqu.Ex{"id": id}).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete for %s: %w", p.tbl.Name, err)
	}
	if _, err := p.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete from %s: %w", p.tbl.Name, err)
	}
	return nil
}

func (p *Postgres[T]) GetByAttribute(ctx context.Context, name string, value any) (T, error) {
	var zero T
	column, ok := p.tbl.Attrs[name]
	if !ok {
		return zero, nil
	}
	return p.getWhere(ctx, goqu.Ex{column: value})
}

func (p *Postgres[T]) ListByAttribute(ctx context.Context, name string, value any) ([]T, error) {
	column, ok := p.tbl.Attrs[name]
	if !ok {
		return nil, nil
	}
	return p.listWhere(ctx, goqu.Ex{column: value})
}

func (p *Postgres[T]) getWhere(ctx context.Context, where goqu.Ex) (T, error) {
	var zero T

	query, args, err := p.q.Select(p.tbl.Columns...).
		From(p.tbl.Name).
		Where(where).
		Limit(1).
		ToSQL()
	if err != nil {
		return zero, fmt.Errorf("build select for %s: %w", p.tbl.Name, err)
	}

	entity, err := p.tbl.Scan(p.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return zero, nil
	}
	if err != nil {
		return zero, fmt.Errorf("scan %s row: %w", p.tbl.Name, err)
	}
	return entity, nil
}

func (p *Postgres[T]) listWhere(ctx context.Context, where goqu.Ex) ([]T, error) {
	ds := p.q.Select(p.tbl.Columns...).From(p.tbl.Name).Order(goqu.I("created_at").Asc())
	if where != nil {
		ds = ds.Where(where)
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select for %s: %w", p.tbl.Name, err)
	}

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", p.tbl.Name, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		entity, err := p.tbl.Scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s row: %w", p.tbl.Name, err)
		}
		out = append(out, entity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s rows: %w", p.tbl.Name, err)
	}
	return out, nil
}

func (p *Postgres[T]) wrapExec(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return fmt.Errorf("%s into %s: %w", op, p.tbl.Name, ErrDuplicate)
	}
	return fmt.Errorf("%s into %s: %w", op, p.tbl.Name, err)
}

// PostgresLinks stores the place-amenity association in the place_amenities
// join table.
type PostgresLinks struct {
	db *sql.DB
	q  *goqu.Database
}

// NewPostgresLinks creates a link store over place_amenities.
func NewPostgresLinks(db *sql.DB) *PostgresLinks {
	return &PostgresLinks{db: db, q: goqu.New("postgres", db)}
}

func (l *PostgresLinks) Link(ctx context.Context, placeID, amenityID string) (bool, error) {
	query, args, err := l.q.Insert("place_amenities").
		Rows(goqu.Record{"place_id": placeID, "amenity_id": amenityID}).
		OnConflict(goqu.DoNothing()).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build link insert: %w", err)
	}

	res, err := l.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("link place to amenity: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("link place to amenity: %w", err)
	}
	return affected > 0, nil
}

func (l *PostgresLinks) Unlink(ctx context.Context, placeID, amenityID string) (bool, error) {
	query, args, err := l.q.Delete("place_amenities").
		Where(goqu.Ex{"place_id": placeID, "amenity_id": amenityID}).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build link delete: %w", err)
	}

	res, err := l.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("unlink place from amenity: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("unlink place from amenity: %w", err)
	}
	return affected > 0, nil
}

func (l *PostgresLinks) AmenityIDs(ctx context.Context, placeID string) ([]string, error) {
	return l.listSide(ctx, "amenity_id", goqu.Ex{"place_id": placeID})
}

func (l *PostgresLinks) PlaceIDs(ctx context.Context, amenityID string) ([]string, error) {
	return l.listSide(ctx, "place_id", goqu.Ex{"amenity_id": amenityID})
}

func (l *PostgresLinks) UnlinkPlace(ctx context.Context, placeID string) error {
	return l.deleteWhere(ctx, goqu.Ex{"place_id": placeID})
}

func (l *PostgresLinks) UnlinkAmenity(ctx context.Context, amenityID string) error {
	return l.deleteWhere(ctx, goqu.Ex{"amenity_id": amenityID})
}

func (l *PostgresLinks) listSide(ctx context.Context, column string, where goqu.Ex) ([]string, error) {
	query, args, err := l.q.Select(column).From("place_amenities").Where(where).ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build link select: %w", err)
	}

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query place_amenities: %w", err)
	}
	defer rows.Close()

	out := make([]string, 0, 4)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan place_amenities row: %w", err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate place_amenities rows: %w", err)
	}
	return out, nil
}

func (l *PostgresLinks) deleteWhere(ctx context.Context, where goqu.Ex) error {
	query, args, err := l.q.Delete("place_amenities").Where(where).ToSQL()
	if err != nil {
		return fmt.Errorf("build link delete: %w", err)
	}
	if _, err := l.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete place_amenities rows: %w", err)
	}
	return nil
}
