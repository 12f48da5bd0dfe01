package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/snaplink/snaplink/internal/model"
)

// Common errors for link repository operations.
var (
	ErrLinkNotFound = errors.New("link not found")
	ErrCodeTaken    = errors.New("short code already exists")
)

// linkColumns is the select list shared by link queries. click_count is
// derived from the clicks table so listings and detail views agree.
const linkColumns = `
	l.id, l.owner_id, l.short_code, l.short_url, l.destination_url, l.remarks,
	l.expires_at, l.created_at,
	(SELECT COUNT(*) FROM clicks c WHERE c.link_id = l.id) AS click_count
`

// CreateLink inserts a new link. The unique index on short_code is the sole
// arbiter of code uniqueness under concurrent writers; a violation surfaces
// as ErrCodeTaken so callers can retry with a fresh candidate.
func (r *Repository) CreateLink(ctx context.Context, link *model.Link) error {
	query := `
		INSERT INTO links (id, owner_id, short_code, short_url, destination_url, remarks, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		link.ID,
		link.OwnerID,
		link.ShortCode,
		link.ShortURL,
		link.DestinationURL,
		link.Remarks,
		link.ExpiresAt,
		link.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrCodeTaken
		}
		return fmt.Errorf("failed to create link: %w", err)
	}

	return nil
}

// GetLinkByID retrieves a link by its ID.
func (r *Repository) GetLinkByID(ctx context.Context, id string) (*model.Link, error) {
	query := `SELECT ` + linkColumns + ` FROM links l WHERE l.id = $1`

	link, err := scanLink(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLinkNotFound
		}
		return nil, fmt.Errorf("failed to get link by ID: %w", err)
	}

	return link, nil
}

// GetLinkByCode retrieves a link by its short code.
// This is the hot path for redirects.
func (r *Repository) GetLinkByCode(ctx context.Context, shortCode string) (*model.Link, error) {
	query := `SELECT ` + linkColumns + ` FROM links l WHERE l.short_code = $1`

	link, err := scanLink(r.pool.QueryRow(ctx, query, shortCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLinkNotFound
		}
		return nil, fmt.Errorf("failed to get link by short code: %w", err)
	}

	return link, nil
}

// ListLinks retrieves one page of an owner's links, newest first, together
// with the total match count for pagination metadata. A non-empty search term
// matches case-insensitively against destination URL, short URL, and remarks.
// Page numbers are 1-based.
func (r *Repository) ListLinks(ctx context.Context, ownerID, search string, page, limit int) ([]*model.Link, int64, error) {
	if page < 1 {
		page = 1
	}

	where := `WHERE l.owner_id = $1`
	args := []any{ownerID}

	if search != "" {
		where += ` AND (l.destination_url ILIKE $2 OR l.short_url ILIKE $2 OR l.remarks ILIKE $2)`
		args = append(args, "%"+search+"%")
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM links l ` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count links: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM links l %s ORDER BY l.created_at DESC, l.id DESC LIMIT $%d OFFSET $%d`,
		linkColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, (page-1)*limit)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list links: %w", err)
	}
	defer rows.Close()

	var links []*model.Link
	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan link: %w", err)
		}
		links = append(links, link)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating links: %w", err)
	}

	return links, total, nil
}

// UpdateLink updates a link's mutable fields. short_code and short_url move
// together; the unique index still guards code changes.
func (r *Repository) UpdateLink(ctx context.Context, link *model.Link) error {
	query := `
		UPDATE links
		SET short_code = $2, short_url = $3, destination_url = $4, remarks = $5, expires_at = $6
		WHERE id = $1
	`

	result, err := r.pool.Exec(ctx, query,
		link.ID,
		link.ShortCode,
		link.ShortURL,
		link.DestinationURL,
		link.Remarks,
		link.ExpiresAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrCodeTaken
		}
		return fmt.Errorf("failed to update link: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrLinkNotFound
	}

	return nil
}

// DeleteLink removes a link. Its clicks go with it via ON DELETE CASCADE.
func (r *Repository) DeleteLink(ctx context.Context, id string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM links WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete link: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrLinkNotFound
	}

	return nil
}

// DeleteLinksByOwner removes every link an owner holds, for account teardown.
// Returns the number of links removed.
func (r *Repository) DeleteLinksByOwner(ctx context.Context, ownerID string) (int64, error) {
	result, err := r.pool.Exec(ctx, `DELETE FROM links WHERE owner_id = $1`, ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete links by owner: %w", err)
	}

	return result.RowsAffected(), nil
}

// CodeExists checks if a short code is already taken.
func (r *Repository) CodeExists(ctx context.Context, shortCode string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM links WHERE short_code = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, shortCode).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check short code existence: %w", err)
	}

	return exists, nil
}

// scanLink scans a single row into a Link model.
func scanLink(row pgx.Row) (*model.Link, error) {
	var link model.Link
	err := row.Scan(
		&link.ID,
		&link.OwnerID,
		&link.ShortCode,
		&link.ShortURL,
		&link.DestinationURL,
		&link.Remarks,
		&link.ExpiresAt,
		&link.CreatedAt,
		&link.ClickCount,
	)
	if err != nil {
		return nil, err
	}
	return &link, nil
}
