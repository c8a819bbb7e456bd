package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"therapy-practice-admin/internal/invoice"
	"therapy-practice-admin/internal/model"
)

// Invoice statements are built from the configured field list. Field names
// are validated as identifiers when the list is loaded.

func scanInvoice(row pgx.Row, fields invoice.Fields) (*model.Invoice, error) {
	inv := &model.Invoice{Values: make(map[string]any, len(fields))}
	dest := make([]any, 0, len(fields)+1)
	dest = append(dest, &inv.ID)
	for _, f := range fields {
		dest = append(dest, f.ScanDest())
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	for i, f := range fields {
		inv.Values[f.Name] = f.FromDest(dest[i+1])
	}
	return inv, nil
}

func selectInvoices(fields invoice.Fields) string {
	return `SELECT invoice_id, ` + strings.Join(fields.Names(), ", ") + ` FROM invoices`
}

func (s *Store) ListInvoices(ctx context.Context, fields invoice.Fields) ([]model.Invoice, error) {
	rows, err := s.pool.Query(ctx, selectInvoices(fields)+` ORDER BY invoice_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows, fields)
		if err != nil {
			return nil, err
		}
		out = append(out, *inv)
	}
	return out, rows.Err()
}

func (s *Store) GetInvoice(ctx context.Context, fields invoice.Fields, id int64) (*model.Invoice, error) {
	inv, err := scanInvoice(s.pool.QueryRow(ctx, selectInvoices(fields)+` WHERE invoice_id = $1`, id), fields)
	if err != nil {
		return nil, one(err)
	}
	return inv, nil
}

// CreateInvoice inserts one row; values are in field order.
func (s *Store) CreateInvoice(ctx context.Context, fields invoice.Fields, values []any) (int64, error) {
	ph := make([]string, len(fields))
	for i := range fields {
		ph[i] = fmt.Sprintf("$%d", i+1)
	}
	q := `INSERT INTO invoices (` + strings.Join(fields.Names(), ", ") + `)
	      VALUES (` + strings.Join(ph, ",") + `) RETURNING invoice_id`

	var id int64
	err := s.pool.QueryRow(ctx, q, values...).Scan(&id)
	return id, err
}

func (s *Store) UpdateInvoice(ctx context.Context, fields invoice.Fields, id int64, values []any) error {
	sets := make([]string, len(fields))
	for i, f := range fields {
		sets[i] = fmt.Sprintf("%s = $%d", f.Name, i+1)
	}
	q := fmt.Sprintf(`UPDATE invoices SET %s WHERE invoice_id = $%d`, strings.Join(sets, ", "), len(fields)+1)

	args := append(append([]any{}, values...), id)
	return affected(s.pool.Exec(ctx, q, args...))
}

func (s *Store) DeleteInvoice(ctx context.Context, id int64) error {
	return affected(s.pool.Exec(ctx, `DELETE FROM invoices WHERE invoice_id=$1`, id))
}

// InvoiceColumns lists the invoices table's columns other than its key.
func (s *Store) InvoiceColumns(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT column_name FROM information_schema.columns
		 WHERE table_schema = current_schema() AND table_name = 'invoices'
		   AND column_name <> 'invoice_id'
		 ORDER BY ordinal_position`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}
