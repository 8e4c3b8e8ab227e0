package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/billbook/internal/bill"
)

var _ bill.Repository = (*Store)(nil)

type Store struct {
	db      *sql.DB
	dialect dialect
}

// New returns a Store for db. driver selects the SQL dialect ("sqlite" or "postgres").
func New(db *sql.DB, driver string) *Store {
	return &Store{db: db, dialect: dialectFor(driver)}
}

// Migrate creates the bills table and its indexes if they do not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	return nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectBillColumns = `
	id, customer_name, customer_address, customer_phone, bill_date, due_date,
	items, subtotal, tax, discount, total, notes
`

// scanBill reads a row in selectBillColumns order.
func scanBill(s scanner) (*bill.Bill, error) {
	var b bill.Bill

	var address, phone, dueDate, notes sql.NullString

	var rawItems string

	if err := s.Scan(
		&b.ID, &b.CustomerName, &address, &phone, &b.BillDate, &dueDate,
		&rawItems, &b.Subtotal, &b.Tax, &b.Discount, &b.Total, &notes,
	); err != nil {
		return nil, err
	}

	items, err := DecodeItems(rawItems)
	if err != nil {
		return nil, fmt.Errorf("bill %d: %w", b.ID, err)
	}

	b.CustomerAddress = address.String
	b.CustomerPhone = phone.String
	b.DueDate = dueDate.String
	b.Notes = notes.String
	b.Items = items

	return &b, nil
}

func (s *Store) CreateBill(ctx context.Context, b *bill.Bill) error {
	items, err := EncodeItems(b.Items)
	if err != nil {
		return err
	}

	query := s.dialect.rebind(`
		INSERT INTO bills (customer_name, customer_address, customer_phone, bill_date, due_date,
			items, subtotal, tax, discount, total, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`)

	err = s.db.QueryRowContext(ctx, query,
		b.CustomerName,
		b.CustomerAddress,
		b.CustomerPhone,
		b.BillDate,
		b.DueDate,
		items,
		b.Subtotal,
		b.Tax,
		b.Discount,
		b.Total,
		b.Notes,
	).Scan(&b.ID)
	if err != nil {
		return fmt.Errorf("creating bill: %w", err)
	}

	return nil
}

func (s *Store) GetBill(ctx context.Context, id bill.ID) (*bill.Bill, error) {
	query := s.dialect.rebind(`SELECT ` + selectBillColumns + ` FROM bills WHERE id = ?`)

	b, err := scanBill(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, bill.ErrNotFound
		}

		return nil, fmt.Errorf("getting bill: %w", err)
	}

	return b, nil
}

// ListBills returns every bill, newest bill_date first. bill_date is compared as text.
func (s *Store) ListBills(ctx context.Context) ([]*bill.Bill, error) {
	query := `SELECT ` + selectBillColumns + ` FROM bills
		ORDER BY bill_date` + s.dialect.byteOrder + ` DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing bills: %w", err)
	}
	defer rows.Close()

	bills := []*bill.Bill{}

	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning bill: %w", err)
		}

		bills = append(bills, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bills: %w", err)
	}

	return bills, nil
}

func (s *Store) UpdateBill(ctx context.Context, b *bill.Bill) error {
	items, err := EncodeItems(b.Items)
	if err != nil {
		return err
	}

	query := s.dialect.rebind(`
		UPDATE bills
		SET customer_name = ?, customer_address = ?, customer_phone = ?, bill_date = ?, due_date = ?,
			items = ?, subtotal = ?, tax = ?, discount = ?, total = ?, notes = ?
		WHERE id = ?
	`)

	res, err := s.db.ExecContext(ctx, query,
		b.CustomerName,
		b.CustomerAddress,
		b.CustomerPhone,
		b.BillDate,
		b.DueDate,
		items,
		b.Subtotal,
		b.Tax,
		b.Discount,
		b.Total,
		b.Notes,
		b.ID,
	)
	if err != nil {
		return fmt.Errorf("updating bill: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating bill: %w", err)
	}

	if n == 0 {
		return bill.ErrNotFound
	}

	return nil
}

// DeleteBill removes the bill if present. A missing id is not an error.
func (s *Store) DeleteBill(ctx context.Context, id bill.ID) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.rebind(`DELETE FROM bills WHERE id = ?`), id); err != nil {
		return fmt.Errorf("deleting bill: %w", err)
	}

	return nil
}

func (s *Store) LatestCustomerBill(ctx context.Context, customerName string) (*bill.Bill, error) {
	query := s.dialect.rebind(`SELECT ` + selectBillColumns + ` FROM bills
		WHERE customer_name = ?
		ORDER BY id DESC
		LIMIT 1`)

	b, err := scanBill(s.db.QueryRowContext(ctx, query, customerName))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, bill.ErrNotFound
		}

		return nil, fmt.Errorf("finding customer bill: %w", err)
	}

	return b, nil
}
