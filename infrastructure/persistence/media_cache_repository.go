package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"ig-dashboard/domain/model"
	"ig-dashboard/domain/repository"
	"ig-dashboard/infrastructure/logger"
)

const mediaColumns = `media_id, media_type, media_url, permalink, thumbnail_url, caption, timestamp, like_count, comments_count, comments_data`

// MediaCacheRepository keeps the last fetched media list per Instagram account.
// Rows carry no expiry; they live until DeleteByInstagramID.
type MediaCacheRepository struct{ db *sql.DB }

func NewMediaCacheRepository(db *sql.DB) repository.IMediaCache {
	return &MediaCacheRepository{db: db}
}

func (r *MediaCacheRepository) List(ctx context.Context, instagramID string) ([]model.Media, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+mediaColumns+` FROM instagram_media WHERE instagram_id = $1 ORDER BY timestamp DESC`, instagramID)
	if err != nil {
		return nil, err
	}
	return scanMediaRows(rows)
}

func (r *MediaCacheRepository) UpsertAll(ctx context.Context, instagramID string, userID int64, items []model.Media) error {
	q := `INSERT INTO instagram_media (instagram_id, user_id, ` + mediaColumns + `, updated_at)
          VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
          ON CONFLICT (media_id) DO UPDATE SET
            instagram_id=EXCLUDED.instagram_id,
            user_id=EXCLUDED.user_id,
            media_type=EXCLUDED.media_type,
            media_url=EXCLUDED.media_url,
            permalink=EXCLUDED.permalink,
            thumbnail_url=EXCLUDED.thumbnail_url,
            caption=EXCLUDED.caption,
            timestamp=EXCLUDED.timestamp,
            like_count=EXCLUDED.like_count,
            comments_count=EXCLUDED.comments_count,
            comments_data=EXCLUDED.comments_data,
            updated_at=EXCLUDED.updated_at`
	return upsertMediaTx(ctx, r.db, q, instagramID, userID, items)
}

func (r *MediaCacheRepository) DeleteByInstagramID(ctx context.Context, instagramID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM instagram_media WHERE instagram_id = $1`, instagramID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// upsertMediaTx writes the whole batch in one transaction so readers never see
// a partially refreshed list.
func upsertMediaTx(ctx context.Context, db *sql.DB, q, instagramID string, userID int64, items []model.Media) (err error) {
	if len(items) == 0 {
		return nil
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin media upsert: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logger.GetLogger().WithField("error", rbErr).Warn("media upsert rollback failed")
			}
		}
	}()

	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		return fmt.Errorf("prepare media upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, m := range items {
		if _, err = stmt.ExecContext(ctx, mediaArgs(instagramID, userID, m, now)...); err != nil {
			return fmt.Errorf("upsert media %s: %w", m.ID, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit media upsert: %w", err)
	}
	return nil
}

func mediaArgs(instagramID string, userID int64, m model.Media, now time.Time) []interface{} {
	var comments interface{}
	if len(m.Comments) > 0 {
		comments = string(m.Comments)
	}
	return []interface{}{
		instagramID,
		userID,
		m.ID,
		m.MediaType,
		m.MediaURL,
		m.Permalink,
		nullString(m.ThumbnailURL),
		nullString(m.Caption),
		m.Timestamp,
		m.LikeCount,
		m.CommentsCount,
		comments,
		now,
	}
}

func scanMediaRows(rows *sql.Rows) ([]model.Media, error) {
	defer rows.Close()
	items := make([]model.Media, 0)
	for rows.Next() {
		var m model.Media
		var thumbnail, caption, comments sql.NullString
		var likes, commentsCount sql.NullInt64
		if err := rows.Scan(&m.ID, &m.MediaType, &m.MediaURL, &m.Permalink, &thumbnail, &caption, &m.Timestamp, &likes, &commentsCount, &comments); err != nil {
			return nil, err
		}
		m.ThumbnailURL = thumbnail.String
		m.Caption = caption.String
		m.LikeCount = intPtr(likes)
		m.CommentsCount = intPtr(commentsCount)
		if comments.Valid && comments.String != "" {
			m.Comments = json.RawMessage(comments.String)
		}
		items = append(items, m)
	}
	return items, rows.Err()
}
