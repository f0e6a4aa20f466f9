// Package content serves the marketing pages (FAQ, clubhouse, accommodations,
// sales-process guides). Pages ship with static fallback copy; when a
// Postgres content database is configured, editors can override any page
// without a deploy.
package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when neither the database nor the static fallback
// has the requested page.
var ErrNotFound = errors.New("content not found")

// Page is one renderable content page.
type Page struct {
	Title   string `json:"title"`
	Content string `json:"content"` // HTML
}

// Store reads page overrides from Postgres. A nil Store is valid and serves
// only the static fallbacks.
type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

// GetContent returns the page for a content type and id. Database overrides
// win; the static fallback covers everything else.
func (s *Store) GetContent(ctx context.Context, contentType, contentID string) (Page, error) {
	if s != nil && s.pool != nil {
		var p Page
		err := s.pool.QueryRow(ctx, `
			SELECT title, content FROM content_pages
			WHERE content_type = $1 AND content_id = $2`,
			contentType, contentID,
		).Scan(&p.Title, &p.Content)
		switch {
		case err == nil:
			return p, nil
		case errors.Is(err, pgx.ErrNoRows):
			// fall through to static content
		default:
			return Page{}, fmt.Errorf("query content %s/%s: %w", contentType, contentID, err)
		}
	}
	return Fallback(contentType, contentID)
}
