package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"lostfound/internal/models"
)

type ReportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Ensure implementation of Reports interface at compile time.
var _ Reports = (*ReportRepository)(nil)

const (
	insertReportSQL = `INSERT INTO reports (owner_id, title, content, location, status, number, image_key, image_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	selectReportsByOwnerSQL = `SELECT id, owner_id, title, content, location, status, number, image_key, image_url, created_at, updated_at
		FROM reports WHERE owner_id = ?`

	selectAllReportsWithOwnerSQL = `SELECT r.id, r.owner_id, r.title, r.content, r.location, r.status, r.number, r.image_key, r.image_url, r.created_at, r.updated_at,
		u.name, u.email, u.number
		FROM reports r JOIN users u ON u.id = r.owner_id
		ORDER BY r.created_at DESC, r.id DESC`

	selectOwnedReportSQL = `SELECT id, owner_id, title, content, location, status, number, image_key, image_url, created_at, updated_at
		FROM reports WHERE id = ? AND owner_id = ?`

	setImageOwnedSQL = `UPDATE reports SET image_key = ?, image_url = ?, updated_at = ? WHERE id = ? AND owner_id = ?`

	deleteOwnedReportSQL = `DELETE FROM reports WHERE id = ? AND owner_id = ?`
)

// Insert stores a new report and returns its ID. Timestamps are set here if zero.
func (r *ReportRepository) Insert(ctx context.Context, rep models.Report) (int, error) {
	now := time.Now().UTC()
	createdAt, updatedAt := rep.CreatedAt, rep.UpdatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}
	res, err := r.db.ExecContext(ctx, insertReportSQL,
		rep.OwnerID, rep.Title, rep.Content, rep.Location, rep.Status,
		rep.Number, rep.ImageKey, rep.ImageURL, createdAt.UTC(), updatedAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("insert report for owner %d: %w", rep.OwnerID, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for report: %w", err)
	}
	return int(lastID), nil
}

// ListByOwner returns the owner's reports in insertion order.
func (r *ReportRepository) ListByOwner(ctx context.Context, ownerID int) ([]models.Report, error) {
	rows, err := r.db.QueryContext(ctx, selectReportsByOwnerSQL, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list reports for owner %d: %w", ownerID, err)
	}
	defer rows.Close()

	out := make([]models.Report, 0, 16)
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reports for owner %d: %w", ownerID, err)
	}
	return out, nil
}

// ListAllWithOwner returns every report newest-first with the owner's public
// identity joined in. Credential columns are never selected.
func (r *ReportRepository) ListAllWithOwner(ctx context.Context) ([]models.ReportWithOwner, error) {
	rows, err := r.db.QueryContext(ctx, selectAllReportsWithOwnerSQL)
	if err != nil {
		return nil, fmt.Errorf("list all reports: %w", err)
	}
	defer rows.Close()

	out := make([]models.ReportWithOwner, 0, 32)
	for rows.Next() {
		var rw models.ReportWithOwner
		if err := rows.Scan(
			&rw.ID, &rw.OwnerID, &rw.Title, &rw.Content, &rw.Location, &rw.Status,
			&rw.Number, &rw.ImageKey, &rw.ImageURL, &rw.CreatedAt, &rw.UpdatedAt,
			&rw.Owner.Name, &rw.Owner.Email, &rw.Owner.Number,
		); err != nil {
			return nil, fmt.Errorf("scan report with owner: %w", err)
		}
		rw.Owner.ID = rw.OwnerID
		rw.CreatedAt = rw.CreatedAt.UTC()
		rw.UpdatedAt = rw.UpdatedAt.UTC()
		out = append(out, rw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list all reports: %w", err)
	}
	return out, nil
}

// GetOwned fetches a report only when owned by ownerID. Returns (nil, nil)
// when no such row exists, whether the id is missing or owned by someone else.
func (r *ReportRepository) GetOwned(ctx context.Context, id, ownerID int) (*models.Report, error) {
	row := r.db.QueryRowContext(ctx, selectOwnedReportSQL, id, ownerID)
	rep, err := scanReport(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rep, nil
}

// UpdateOwned applies the supplied fields in a single conditional UPDATE.
// Nil pointers leave the column untouched; owner_id and number are never in
// the SET list. Returns false when no row matched the id+owner predicate.
func (r *ReportRepository) UpdateOwned(ctx context.Context, id, ownerID int, content, status *string, updatedAt time.Time) (bool, error) {
	sets := make([]string, 0, 3)
	args := make([]any, 0, 5)
	if content != nil {
		sets = append(sets, "content = ?")
		args = append(args, *content)
	}
	if status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *status)
	}
	if len(sets) == 0 {
		return false, errors.New("update report: no fields to set")
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, updatedAt.UTC(), id, ownerID)

	q := "UPDATE reports SET " + strings.Join(sets, ", ") + " WHERE id = ? AND owner_id = ?"
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return false, fmt.Errorf("update report %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for report %d: %w", id, err)
	}
	return n > 0, nil
}

// SetImageOwned swaps the image columns under the ownership predicate.
func (r *ReportRepository) SetImageOwned(ctx context.Context, id, ownerID int, imageKey, imageURL string, updatedAt time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, setImageOwnedSQL, imageKey, imageURL, updatedAt.UTC(), id, ownerID)
	if err != nil {
		return false, fmt.Errorf("set image for report %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for report %d: %w", id, err)
	}
	return n > 0, nil
}

// DeleteOwned removes the row in a single conditional DELETE. Returns false
// when nothing matched; under two concurrent deletes exactly one caller
// observes true.
func (r *ReportRepository) DeleteOwned(ctx context.Context, id, ownerID int) (bool, error) {
	res, err := r.db.ExecContext(ctx, deleteOwnedReportSQL, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("delete report %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected for report %d: %w", id, err)
	}
	return n > 0, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanReport(s scanner) (models.Report, error) {
	var rep models.Report
	if err := s.Scan(
		&rep.ID, &rep.OwnerID, &rep.Title, &rep.Content, &rep.Location, &rep.Status,
		&rep.Number, &rep.ImageKey, &rep.ImageURL, &rep.CreatedAt, &rep.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Report{}, err
		}
		return models.Report{}, fmt.Errorf("scan report: %w", err)
	}
	rep.CreatedAt = rep.CreatedAt.UTC()
	rep.UpdatedAt = rep.UpdatedAt.UTC()
	return rep, nil
}
