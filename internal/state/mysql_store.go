package state

import (
	"context"
	"database/sql"
	"time"

	"github.com/calebds/tracker/internal/domain"
)

type MySQLStore struct {
	db *sql.DB
}

func NewMySQLStore(db *sql.DB) *MySQLStore {
	return &MySQLStore{db: db}
}

func (s *MySQLStore) ListRetailers(ctx context.Context) ([]domain.Retailer, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM retailers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Retailer, 0, 8)
	for rows.Next() {
		var r domain.Retailer
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *MySQLStore) GetRetailerByName(ctx context.Context, name string) (domain.Retailer, bool, error) {
	var r domain.Retailer
	err := s.db.QueryRowContext(
		ctx,
		`SELECT id, name FROM retailers WHERE name = ?`,
		name,
	).Scan(&r.ID, &r.Name)

	if err == sql.ErrNoRows {
		return domain.Retailer{}, false, nil
	}
	if err != nil {
		return domain.Retailer{}, false, err
	}
	return r, true, nil
}

func (s *MySQLStore) SeedRetailers(ctx context.Context, names []string) error {
	for _, name := range names {
		if name == "" {
			continue
		}
		_, err := s.db.ExecContext(
			ctx,
			`INSERT INTO retailers (name) VALUES (?)
			 ON DUPLICATE KEY UPDATE id = id`,
			name,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// FirstOrCreateProduct relies on the unique (name, sku) key. On conflict the
// LAST_INSERT_ID(id) trick surfaces the existing row id without touching any
// other column, which keeps concurrent identical requests from duplicating and
// never overwrites an existing record.
func (s *MySQLStore) FirstOrCreateProduct(ctx context.Context, p domain.Product) (domain.Product, bool, error) {
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO products (name, sku, url, price, in_stock)
		 VALUES (?, ?, ?, ?, ?)
		 ON DUPLICATE KEY UPDATE id = LAST_INSERT_ID(id)`,
		p.Name, p.SKU, nullString(p.URL), p.Price, p.InStock,
	)
	if err != nil {
		return domain.Product{}, false, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.Product{}, false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return domain.Product{}, false, err
	}
	// MySQL reports 1 for a fresh insert, 0 for a duplicate left unchanged.
	created := affected == 1

	out, err := s.getProductByID(ctx, uint64(id))
	if err != nil {
		return domain.Product{}, false, err
	}
	return out, created, nil
}

func (s *MySQLStore) getProductByID(ctx context.Context, id uint64) (domain.Product, error) {
	var p domain.Product
	var url sql.NullString
	err := s.db.QueryRowContext(
		ctx,
		`SELECT id, name, sku, url, price, in_stock FROM products WHERE id = ?`,
		id,
	).Scan(&p.ID, &p.Name, &p.SKU, &url, &p.Price, &p.InStock)
	if err != nil {
		return domain.Product{}, err
	}
	if url.Valid {
		p.URL = url.String
	}
	return p, nil
}

func (s *MySQLStore) EnsureStock(ctx context.Context, retailerID, productID uint64, localSKU string) (bool, error) {
	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO stock (retailer_id, product_id, sku)
		 VALUES (?, ?, ?)
		 ON DUPLICATE KEY UPDATE id = id`,
		retailerID, productID, localSKU,
	)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (s *MySQLStore) ListStockForRetailer(ctx context.Context, retailerID uint64) ([]domain.Stock, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, retailer_id, product_id, sku FROM stock WHERE retailer_id = ? ORDER BY id`,
		retailerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Stock, 0, 8)
	for rows.Next() {
		var st domain.Stock
		if err := rows.Scan(&st.ID, &st.RetailerID, &st.ProductID, &st.SKU); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *MySQLStore) CountProducts(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	return n, err
}

func (s *MySQLStore) CountStock(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM stock`).Scan(&n)
	return n, err
}

func (s *MySQLStore) GetIdempotency(ctx context.Context, endpoint string, idemKeyHash string) (IdempotencyRecord, bool, error) {
	var status int
	var body []byte
	var created time.Time
	var expires time.Time

	err := s.db.QueryRowContext(
		ctx,
		`SELECT status_code, response_body_json, created_at, expires_at
		 FROM idempotency
		 WHERE endpoint = ? AND idem_key_hash = ?`,
		endpoint, idemKeyHash,
	).Scan(&status, &body, &created, &expires)

	if err == sql.ErrNoRows {
		return IdempotencyRecord{}, false, nil
	}
	if err != nil {
		return IdempotencyRecord{}, false, err
	}

	if time.Now().UTC().After(expires.UTC()) {
		return IdempotencyRecord{}, false, nil
	}

	return IdempotencyRecord{
		StatusCode: status,
		BodyJSON:   body,
		CreatedAt:  created.UTC(),
		ExpiresAt:  expires.UTC(),
	}, true, nil
}

func (s *MySQLStore) PutIdempotency(ctx context.Context, endpoint string, idemKeyHash string, rec IdempotencyRecord) error {
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO idempotency (endpoint, idem_key_hash, status_code, response_body_json, created_at, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON DUPLICATE KEY UPDATE
		   status_code = VALUES(status_code),
		   response_body_json = VALUES(response_body_json),
		   created_at = VALUES(created_at),
		   expires_at = VALUES(expires_at)`,
		endpoint, idemKeyHash, rec.StatusCode, rec.BodyJSON, rec.CreatedAt.UTC(), rec.ExpiresAt.UTC(),
	)
	return err
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
