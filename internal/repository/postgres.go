package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"proposal-backend/internal/models"
)

// Postgres implements Store on top of a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) CreateCategory(ctx context.Context, category *models.Category) error {
	query := `INSERT INTO categories (id, name, sentences, created_at) VALUES ($1, $2, $3, $4)`
	_, err := p.pool.Exec(ctx, query, category.ID, category.Name, category.Sentences, category.CreatedAt)
	return err
}

func (p *Postgres) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	var c models.Category
	query := `SELECT id, name, sentences, created_at FROM categories WHERE id = $1`
	err := p.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Sentences, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	photos, err := p.categoryPhotos(ctx, id)
	if err != nil {
		return nil, err
	}
	attachPhotos(&c, photos)
	return &c, nil
}

func (p *Postgres) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, name, sentences, created_at FROM categories ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	index := map[string]int{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Sentences, &c.CreatedAt); err != nil {
			return nil, err
		}
		index[c.ID] = len(categories)
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	photos, err := p.allPhotos(ctx)
	if err != nil {
		return nil, err
	}
	for i := range photos {
		if j, ok := index[photos[i].CategoryID]; ok {
			attachPhotos(&categories[j], photos[i:i+1])
		}
	}
	return categories, nil
}

func (p *Postgres) UpdateCategory(ctx context.Context, id string, upd models.UpdateCategoryRequest) (*models.Category, error) {
	query := `UPDATE categories
	          SET name = COALESCE($2, name), sentences = COALESCE($3, sentences)
	          WHERE id = $1`
	tag, err := p.pool.Exec(ctx, query, id, upd.Name, upd.Sentences)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrNotFound
	}
	return p.GetCategory(ctx, id)
}

func (p *Postgres) DeleteCategory(ctx context.Context, id string) error {
	// owned photo rows go with it (ON DELETE CASCADE)
	tag, err := p.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) AddPhoto(ctx context.Context, photo *models.Photo) error {
	query := `INSERT INTO photos
	          (id, category_id, side, file_url, telegram_file_id, telegram_message_id, file_size, mime_type, uploaded_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := p.pool.Exec(ctx, query,
		photo.ID, photo.CategoryID, string(photo.Side), photo.FileURL,
		photo.TelegramFileID, photo.TelegramMessageID, photo.FileSize, photo.MimeType, photo.UploadedAt)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		// foreign key: the target category is gone
		return ErrNotFound
	}
	return err
}

func (p *Postgres) GetPhoto(ctx context.Context, id string) (*models.Photo, error) {
	var ph models.Photo
	query := `SELECT id, category_id, side, file_url, telegram_file_id, telegram_message_id, file_size, mime_type, uploaded_at
	          FROM photos WHERE id = $1`
	err := p.pool.QueryRow(ctx, query, id).Scan(
		&ph.ID, &ph.CategoryID, &ph.Side, &ph.FileURL,
		&ph.TelegramFileID, &ph.TelegramMessageID, &ph.FileSize, &ph.MimeType, &ph.UploadedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ph, nil
}

func (p *Postgres) DeletePhoto(ctx context.Context, id string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM photos WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) GetSettings(ctx context.Context) (*models.GlobalSettings, error) {
	var s models.GlobalSettings
	query := `SELECT id, COALESCE(before_accept_music, ''), COALESCE(after_accept_music, '')
	          FROM global_settings WHERE id = $1`
	err := p.pool.QueryRow(ctx, query, models.SettingsID).Scan(&s.ID, &s.BeforeAcceptMusic, &s.AfterAcceptMusic)
	if errors.Is(err, pgx.ErrNoRows) {
		// singleton is created lazily on first write
		return &models.GlobalSettings{ID: models.SettingsID}, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (p *Postgres) UpdateSettings(ctx context.Context, upd models.UpdateSettingsRequest) (*models.GlobalSettings, error) {
	var s models.GlobalSettings
	query := `INSERT INTO global_settings (id, before_accept_music, after_accept_music)
	          VALUES ($1, COALESCE($2, ''), COALESCE($3, ''))
	          ON CONFLICT (id) DO UPDATE SET
	            before_accept_music = COALESCE($2, global_settings.before_accept_music),
	            after_accept_music  = COALESCE($3, global_settings.after_accept_music)
	          RETURNING id, before_accept_music, after_accept_music`
	err := p.pool.QueryRow(ctx, query, models.SettingsID, upd.BeforeAcceptMusic, upd.AfterAcceptMusic).
		Scan(&s.ID, &s.BeforeAcceptMusic, &s.AfterAcceptMusic)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (p *Postgres) categoryPhotos(ctx context.Context, categoryID string) ([]models.Photo, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, category_id, side, file_url, telegram_file_id, telegram_message_id, file_size, mime_type, uploaded_at
		 FROM photos WHERE category_id = $1 ORDER BY uploaded_at`, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPhotos(rows)
}

func (p *Postgres) allPhotos(ctx context.Context) ([]models.Photo, error) {
	rows, err := p.pool.Query(ctx,
		`SELECT id, category_id, side, file_url, telegram_file_id, telegram_message_id, file_size, mime_type, uploaded_at
		 FROM photos ORDER BY uploaded_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPhotos(rows)
}

func scanPhotos(rows pgx.Rows) ([]models.Photo, error) {
	var photos []models.Photo
	for rows.Next() {
		var ph models.Photo
		if err := rows.Scan(
			&ph.ID, &ph.CategoryID, &ph.Side, &ph.FileURL,
			&ph.TelegramFileID, &ph.TelegramMessageID, &ph.FileSize, &ph.MimeType, &ph.UploadedAt); err != nil {
			return nil, err
		}
		photos = append(photos, ph)
	}
	return photos, rows.Err()
}

func attachPhotos(c *models.Category, photos []models.Photo) {
	for _, ph := range photos {
		switch ph.Side {
		case models.SideBefore:
			c.PhotosBefore = append(c.PhotosBefore, ph)
		case models.SideAfter:
			c.PhotosAfter = append(c.PhotosAfter, ph)
		}
	}
}
