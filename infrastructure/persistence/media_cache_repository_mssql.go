package persistence

import (
	"context"
	"database/sql"

	"ig-dashboard/domain/model"
	"ig-dashboard/domain/repository"
)

const mediaColumnsMSSQL = `media_id, media_type, media_url, permalink, thumbnail_url, caption, [timestamp], like_count, comments_count, comments_data`

type MediaCacheRepositoryMSSQL struct{ db *sql.DB }

func NewMediaCacheRepositoryMSSQL(db *sql.DB) repository.IMediaCache {
	return &MediaCacheRepositoryMSSQL{db: db}
}

func (r *MediaCacheRepositoryMSSQL) List(ctx context.Context, instagramID string) ([]model.Media, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+mediaColumnsMSSQL+` FROM dbo.[instagram_media] WHERE instagram_id = @p1 ORDER BY [timestamp] DESC`, instagramID)
	if err != nil {
		return nil, err
	}
	return scanMediaRows(rows)
}

func (r *MediaCacheRepositoryMSSQL) UpsertAll(ctx context.Context, instagramID string, userID int64, items []model.Media) error {
	q := `MERGE dbo.[instagram_media] WITH (HOLDLOCK) AS target
USING (VALUES (@p3)) AS src(media_id)
ON target.media_id = src.media_id
WHEN MATCHED THEN UPDATE SET
    instagram_id=@p1,
    user_id=@p2,
    media_type=@p4,
    media_url=@p5,
    permalink=@p6,
    thumbnail_url=@p7,
    caption=@p8,
    [timestamp]=@p9,
    like_count=@p10,
    comments_count=@p11,
    comments_data=@p12,
    updated_at=@p13
WHEN NOT MATCHED THEN
    INSERT (instagram_id, user_id, ` + mediaColumnsMSSQL + `, updated_at)
    VALUES (@p1,@p2,@p3,@p4,@p5,@p6,@p7,@p8,@p9,@p10,@p11,@p12,@p13);`
	return upsertMediaTx(ctx, r.db, q, instagramID, userID, items)
}

func (r *MediaCacheRepositoryMSSQL) DeleteByInstagramID(ctx context.Context, instagramID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM dbo.[instagram_media] WHERE instagram_id = @p1`, instagramID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
