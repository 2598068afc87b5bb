package store

import (
	"github.com/doug-martin/goqu/v9"

	"github.com/stayloft/api/internal/model"
)

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// Table describes how one entity type maps onto its Postgres table: the
// column list, the insert/update record builder, the row decoder, and the
// allowlist translating Attr names into columns.
type Table[T Entity[T]] struct {
	Name    string
	Columns []any
	Record  func(T) goqu.Record
	Scan    func(rowScanner) (T, error)
	Attrs   map[string]string
}

// UserTable maps model.User onto the users table.
func UserTable() Table[*model.User] {
	return Table[*model.User]{
		Name: "users",
		Columns: []any{
			"id", "first_name", "last_name", "email", "password_hash",
			"is_admin", "created_at", "updated_at",
		},
		Record: func(u *model.User) goqu.Record {
			return goqu.Record{
				"id":            u.ID,
				"first_name":    u.FirstName,
				"last_name":     u.LastName,
				"email":         u.Email,
				"password_hash": u.Hash,
				"is_admin":      u.IsAdmin,
				"created_at":    u.CreatedAt,
				"updated_at":    u.UpdatedAt,
			}
		},
		Scan: func(row rowScanner) (*model.User, error) {
			var u model.User
			err := row.Scan(
				&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Hash,
				&u.IsAdmin, &u.CreatedAt, &u.UpdatedAt,
			)
			if err != nil {
				return nil, err
			}
			return &u, nil
		},
		Attrs: map[string]string{
			"email":      "email",
			"first_name": "first_name",
			"last_name":  "last_name",
		},
	}
}

// PlaceTable maps model.Place onto the places table.
func PlaceTable() Table[*model.Place] {
	return Table[*model.Place]{
		Name: "places",
		Columns: []any{
			"id", "title", "description", "price", "latitude", "longitude",
			"owner_id", "created_at", "updated_at",
		},
		Record: func(p *model.Place) goqu.Record {
			return goqu.Record{
				"id":          p.ID,
				"title":       p.Title,
				"description": p.Description,
				"price":       p.Price,
				"latitude":    p.Latitude,
				"longitude":   p.Longitude,
				"owner_id":    p.OwnerID,
				"created_at":  p.CreatedAt,
				"updated_at":  p.UpdatedAt,
			}
		},
		Scan: func(row rowScanner) (*model.Place, error) {
			var p model.Place
			err := row.Scan(
				&p.ID, &p.Title, &p.Description, &p.Price, &p.Latitude,
				&p.Longitude, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt,
			)
			if err != nil {
				return nil, err
			}
			return &p, nil
		},
		Attrs: map[string]string{
			"owner_id": "owner_id",
			"title":    "title",
		},
	}
}

// AmenityTable maps model.Amenity onto the amenities table.
func AmenityTable() Table[*model.Amenity] {
	return Table[*model.Amenity]{
		Name:    "amenities",
		Columns: []any{"id", "name", "created_at", "updated_at"},
		Record: func(a *model.Amenity) goqu.Record {
			return goqu.Record{
				"id":         a.ID,
				"name":       a.Name,
				"created_at": a.CreatedAt,
				"updated_at": a.UpdatedAt,
			}
		},
		Scan: func(row rowScanner) (*model.Amenity, error) {
			var a model.Amenity
			err := row.Scan(&a.ID, &a.Name, &a.CreatedAt, &a.UpdatedAt)
			if err != nil {
				return nil, err
			}
			return &a, nil
		},
		Attrs: map[string]string{
			"name": "name",
		},
	}
}

// ReviewTable maps model.Review onto the reviews table.
func ReviewTable() Table[*model.Review] {
	return Table[*model.Review]{
		Name: "reviews",
		Columns: []any{
			"id", "text", "rating", "user_id", "place_id", "created_at", "updated_at",
		},
		Record: func(r *model.Review) goqu.Record {
			return goqu.Record{
				"id":         r.ID,
				"text":       r.Text,
				"rating":     r.Rating,
				"user_id":    r.UserID,
				"place_id":   r.PlaceID,
				"created_at": r.CreatedAt,
				"updated_at": r.UpdatedAt,
			}
		},
		Scan: func(row rowScanner) (*model.Review, error) {
			var r model.Review
			err := row.Scan(
				&r.ID, &r.Text, &r.Rating, &r.UserID, &r.PlaceID,
				&r.CreatedAt, &r.UpdatedAt,
			)
			if err != nil {
				return nil, err
			}
			return &r, nil
		},
		Attrs: map[string]string{
			"user_id":  "user_id",
			"place_id": "place_id",
		},
	}
}
