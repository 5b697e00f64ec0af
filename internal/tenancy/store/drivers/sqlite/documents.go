package sqlite

import (
	"context"
	"time"

	"github.com/keyhold/keyhold/internal/tenancy/domain"
	"github.com/keyhold/keyhold/internal/tenancy/store"
)

const documentColumns = `id, property_id, name, filename, file_type, file_size, created_at`

type documentsRepo struct {
	q querier
}

func (r *documentsRepo) scanDocument(row interface{ Scan(...any) error }) (domain.Document, error) {
	var d domain.Document
	err := row.Scan(&d.ID, &d.PropertyID, &d.Name, &d.Filename, &d.FileType, &d.FileSize, &d.CreatedAt)
	if err != nil {
		return domain.Document{}, mapNotFound(err)
	}
	return d, nil
}

func (r *documentsRepo) GetDocumentByID(ctx context.Context, id string) (domain.Document, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE id = ?`, id)
	return r.scanDocument(row)
}

func (r *documentsRepo) ListDocumentsByProperty(ctx context.Context, propertyID string) ([]domain.Document, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE property_id = ? ORDER BY created_at DESC`,
		propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		d, err := r.scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

func (r *documentsRepo) CreateDocument(ctx context.Context, d domain.Document) error {
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}

	_, err := r.q.ExecContext(ctx,
		`INSERT INTO documents (id, property_id, name, filename, file_type, file_size, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.PropertyID, d.Name, d.Filename, d.FileType, d.FileSize, d.CreatedAt)
	return mapConstraint(err)
}

func (r *documentsRepo) DeleteDocument(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}
