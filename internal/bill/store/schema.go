package store

import (
	"strconv"
	"strings"

	"github.com/MrJamesThe3rd/billbook/internal/config"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS bills (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    customer_name TEXT NOT NULL,
    customer_address TEXT,
    customer_phone TEXT,
    bill_date TEXT NOT NULL,
    due_date TEXT,
    items TEXT NOT NULL,
    subtotal REAL NOT NULL,
    tax REAL NOT NULL,
    discount REAL NOT NULL,
    total REAL NOT NULL,
    notes TEXT
);

CREATE INDEX IF NOT EXISTS idx_bills_bill_date ON bills(bill_date);
CREATE INDEX IF NOT EXISTS idx_bills_customer_name ON bills(customer_name);
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS bills (
    id BIGSERIAL PRIMARY KEY,
    customer_name TEXT NOT NULL,
    customer_address TEXT,
    customer_phone TEXT,
    bill_date TEXT NOT NULL,
    due_date TEXT,
    items TEXT NOT NULL,
    subtotal DOUBLE PRECISION NOT NULL,
    tax DOUBLE PRECISION NOT NULL,
    discount DOUBLE PRECISION NOT NULL,
    total DOUBLE PRECISION NOT NULL,
    notes TEXT
);

CREATE INDEX IF NOT EXISTS idx_bills_bill_date ON bills(bill_date);
CREATE INDEX IF NOT EXISTS idx_bills_customer_name ON bills(customer_name);
`

// dialect covers the few places where SQLite and Postgres SQL differ.
type dialect struct {
	schema string
	// byteOrder forces plain byte-wise text comparison so bill_date sorts the same on both engines.
	byteOrder  string
	positional bool
}

func dialectFor(driver string) dialect {
	if driver == config.DriverPostgres {
		return dialect{schema: postgresSchema, byteOrder: ` COLLATE "C"`, positional: true}
	}

	return dialect{schema: sqliteSchema}
}

// rebind rewrites ? placeholders as $1, $2, ... for drivers that need positional parameters.
// Queries in this package never contain a literal question mark.
func (d dialect) rebind(query string) string {
	if !d.positional {
		return query
	}

	var sb strings.Builder

	n := 0

	for _, r := range query {
		if r != '?' {
			sb.WriteRune(r)
			continue
		}

		n++
		sb.WriteByte('$')
		sb.WriteString(strconv.Itoa(n))
	}

	return sb.String()
}
