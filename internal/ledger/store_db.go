package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second
	writeTimeout = 5 * time.Second
)

// PostgresStore persists the ledger in three tables: the cart as
// position-ordered rows, orders plus their line items. Product data is
// stored as JSON so an order keeps its snapshot even if the catalog
// schema grows.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the tables on first run. The repo ships no
// migration tooling; the schema is small enough to own here.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	return withTimeout(ctx, writeTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS cart_items (
				position  INT PRIMARY KEY,
				product   JSONB NOT NULL,
				quantity  INT NOT NULL
			);
			CREATE TABLE IF NOT EXISTS orders (
				id             TEXT PRIMARY KEY,
				total          NUMERIC NOT NULL,
				created_at     TIMESTAMPTZ NOT NULL,
				status         TEXT NOT NULL,
				payment_method TEXT NOT NULL,
				customer       JSONB
			);
			CREATE TABLE IF NOT EXISTS order_items (
				order_id  TEXT NOT NULL REFERENCES orders(id),
				position  INT NOT NULL,
				product   JSONB NOT NULL,
				quantity  INT NOT NULL,
				PRIMARY KEY (order_id, position)
			);
		`)
		return err
	})
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.db.PingContext(ctx)
	})
}

func (s *PostgresStore) LoadCart(ctx context.Context) ([]CartLine, error) {
	var out []CartLine

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, `
			SELECT product, quantity
			FROM cart_items
			ORDER BY position ASC
		`)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]CartLine, 0, 8)
		for rows.Next() {
			var (
				raw  []byte
				line CartLine
			)
			if err := rows.Scan(&raw, &line.Quantity); err != nil {
				return err
			}
			if err := json.Unmarshal(raw, &line.Product); err != nil {
				return err
			}
			out = append(out, line)
		}
		return rows.Err()
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) SaveCart(ctx context.Context, lines []CartLine) error {
	return withTimeout(ctx, writeTimeout, func(ctx context.Context) error {
		tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()

		if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items`); err != nil {
			return err
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO cart_items (position, product, quantity)
			VALUES ($1, $2, $3)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, line := range lines {
			raw, err := json.Marshal(line.Product)
			if err != nil {
				return err
			}
			if _, err := stmt.ExecContext(ctx, i, raw, line.Quantity); err != nil {
				return err
			}
		}

		return tx.Commit()
	})
}

func (s *PostgresStore) LoadOrders(ctx context.Context) ([]Order, error) {
	var out []Order

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, `
			SELECT id, total::TEXT, created_at, status, payment_method, customer
			FROM orders
			ORDER BY created_at ASC, id ASC
		`)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]Order, 0, 8)
		for rows.Next() {
			var (
				o        Order
				totalStr string
				customer []byte
			)
			if err := rows.Scan(&o.ID, &totalStr, &o.Date, &o.Status, &o.PaymentMethod, &customer); err != nil {
				return err
			}
			if o.Total, err = decimal.NewFromString(totalStr); err != nil {
				return err
			}
			if customer != nil {
				o.CustomerInfo = &CustomerInfo{}
				if err := json.Unmarshal(customer, o.CustomerInfo); err != nil {
					return err
				}
			}
			out = append(out, o)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		for i := range out {
			items, err := s.loadItems(ctx, out[i].ID)
			if err != nil {
				return err
			}
			out[i].Items = items
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) loadItems(ctx context.Context, orderID string) ([]CartLine, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT product, quantity
		FROM order_items
		WHERE order_id = $1
		ORDER BY position ASC
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]CartLine, 0, 8)
	for rows.Next() {
		var (
			raw  []byte
			line CartLine
		)
		if err := rows.Scan(&raw, &line.Quantity); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &line.Product); err != nil {
			return nil, err
		}
		items = append(items, line)
	}
	return items, rows.Err()
}

func (s *PostgresStore) AppendOrder(ctx context.Context, o Order) error {
	return withTimeout(ctx, writeTimeout, func(ctx context.Context) error {
		tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()

		var customer []byte
		if o.CustomerInfo != nil {
			if customer, err = json.Marshal(o.CustomerInfo); err != nil {
				return err
			}
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO orders (id, total, created_at, status, payment_method, customer)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, o.ID, o.Total.String(), o.Date, o.Status, o.PaymentMethod, customer)
		if err != nil {
			return err
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO order_items (order_id, position, product, quantity)
			VALUES ($1, $2, $3, $4)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, line := range o.Items {
			raw, err := json.Marshal(line.Product)
			if err != nil {
				return err
			}
			if _, err := stmt.ExecContext(ctx, o.ID, i, raw, line.Quantity); err != nil {
				return err
			}
		}

		return tx.Commit()
	})
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}
