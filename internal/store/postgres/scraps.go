// ABOUTME: Scrap queries for the PostgreSQL store.
// ABOUTME: squirrel builds the SQL, scany scans rows into the flat record shape.

package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/harper/scraps/internal/models"
	"github.com/harper/scraps/internal/store"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var scrapColumns = []string{
	"id", "user_id", "type", "created_at",
	"content", "image_url", "image_title",
	"url", "title", "preview_image", "embed_html",
	"meta_title", "meta_rating", "meta_tags",
	"language", "code",
}

// scrapRow mirrors the scraps table with nullable type-specific columns.
type scrapRow struct {
	ID           uuid.UUID `db:"id"`
	UserID       string    `db:"user_id"`
	Type         string    `db:"type"`
	CreatedAt    time.Time `db:"created_at"`
	Content      *string   `db:"content"`
	ImageURL     *string   `db:"image_url"`
	ImageTitle   *string   `db:"image_title"`
	URL          *string   `db:"url"`
	Title        *string   `db:"title"`
	PreviewImage *string   `db:"preview_image"`
	EmbedHTML    *string   `db:"embed_html"`
	MetaTitle    *string   `db:"meta_title"`
	MetaRating   *string   `db:"meta_rating"`
	MetaTags     []string  `db:"meta_tags"`
	Language     *string   `db:"language"`
	Code         *string   `db:"code"`
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (r *scrapRow) toModel() models.Scrap {
	s := models.Scrap{
		ID:        r.ID,
		UserID:    r.UserID,
		Type:      models.Type(r.Type),
		CreatedAt: r.CreatedAt,
	}
	switch s.Type {
	case models.TypeNote:
		s.Note = &models.Note{Content: str(r.Content)}
	case models.TypeImage:
		s.Image = &models.Image{URL: str(r.ImageURL), Title: str(r.ImageTitle)}
	case models.TypeLink:
		s.Link = &models.Link{
			URL:          str(r.URL),
			Title:        str(r.Title),
			PreviewImage: str(r.PreviewImage),
			EmbedHTML:    str(r.EmbedHTML),
		}
		if r.MetaTitle != nil {
			s.Link.Meta = &models.LinkMeta{
				Title:  str(r.MetaTitle),
				Rating: str(r.MetaRating),
				Tags:   r.MetaTags,
			}
		}
	case models.TypeCode:
		s.Code = &models.Code{Language: str(r.Language), Code: str(r.Code)}
	}
	return s
}

// List returns all scraps owned by userID, newest first.
func (s *Store) List(ctx context.Context, userID string) ([]models.Scrap, error) {
	query, args, err := psql.
		Select(scrapColumns...).
		From("scraps").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	var rows []scrapRow
	if err := pgxscan.Select(ctx, s.pool, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list scraps: %w", err)
	}

	scraps := make([]models.Scrap, len(rows))
	for i := range rows {
		scraps[i] = rows[i].toModel()
	}
	return scraps, nil
}

// Insert persists a draft for userID and returns the created record with
// its server-assigned id and timestamp.
func (s *Store) Insert(ctx context.Context, userID string, draft models.Draft) (models.Scrap, error) {
	if err := draft.Validate(); err != nil {
		return models.Scrap{}, err
	}

	values := map[string]interface{}{
		"user_id": userID,
		"type":    string(draft.Type),
	}
	switch draft.Type {
	case models.TypeNote:
		values["content"] = draft.Note.Content
	case models.TypeImage:
		values["image_url"] = draft.Image.URL
		values["image_title"] = nullable(draft.Image.Title)
	case models.TypeLink:
		values["url"] = draft.Link.URL
		values["title"] = nullable(draft.Link.Title)
		values["preview_image"] = nullable(draft.Link.PreviewImage)
		values["embed_html"] = nullable(draft.Link.EmbedHTML)
		if draft.Link.Meta != nil {
			values["meta_title"] = nullable(draft.Link.Meta.Title)
			values["meta_rating"] = nullable(draft.Link.Meta.Rating)
			values["meta_tags"] = draft.Link.Meta.Tags
		}
	case models.TypeCode:
		values["language"] = nullable(draft.Code.Language)
		values["code"] = draft.Code.Code
	}

	query, args, err := psql.
		Insert("scraps").
		SetMap(values).
		Suffix("RETURNING " + strings.Join(scrapColumns, ", ")).
		ToSql()
	if err != nil {
		return models.Scrap{}, fmt.Errorf("build insert query: %w", err)
	}

	var row scrapRow
	if err := pgxscan.Get(ctx, s.pool, &row, query, args...); err != nil {
		return models.Scrap{}, fmt.Errorf("insert scrap: %w", err)
	}
	return row.toModel(), nil
}

// Delete removes a scrap scoped by both id and owner.
func (s *Store) Delete(ctx context.Context, id uuid.UUID, userID string) error {
	query, args, err := psql.
		Delete("scraps").
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete query: %w", err)
	}

	tag, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete scrap: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// get fetches one scrap by id scoped to userID.
func (s *Store) get(ctx context.Context, id uuid.UUID, userID string) (models.Scrap, error) {
	query, args, err := psql.
		Select(scrapColumns...).
		From("scraps").
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return models.Scrap{}, fmt.Errorf("build get query: %w", err)
	}

	var row scrapRow
	if err := pgxscan.Get(ctx, s.pool, &row, query, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Scrap{}, store.ErrNotFound
		}
		return models.Scrap{}, fmt.Errorf("get scrap: %w", err)
	}
	return row.toModel(), nil
}

// GetByPrefix finds a scrap owned by userID whose id starts with prefix
// (minimum 6 chars).
func (s *Store) GetByPrefix(ctx context.Context, userID, prefix string) (models.Scrap, error) {
	if len(prefix) < 6 {
		return models.Scrap{}, store.ErrPrefixTooShort
	}

	query, args, err := psql.
		Select(scrapColumns...).
		From("scraps").
		Where(sq.Eq{"user_id": userID}).
		Where("id::text LIKE ?", prefix+"%").
		Limit(2).
		ToSql()
	if err != nil {
		return models.Scrap{}, fmt.Errorf("build prefix query: %w", err)
	}

	var rows []scrapRow
	if err := pgxscan.Select(ctx, s.pool, &rows, query, args...); err != nil {
		return models.Scrap{}, fmt.Errorf("find scrap by prefix: %w", err)
	}

	if len(rows) == 0 {
		return models.Scrap{}, store.ErrNotFound
	}
	if len(rows) > 1 {
		return models.Scrap{}, fmt.Errorf("%w: %s", store.ErrAmbiguousPrefix, prefix)
	}
	return rows[0].toModel(), nil
}
