package persistence

import (
	"context"
	"database/sql"
	"time"

	"ig-dashboard/domain/model"
	"ig-dashboard/domain/repository"
	"ig-dashboard/infrastructure/logger"
)

type ProfileRepositoryMSSQL struct{ db *sql.DB }

func NewProfileRepositoryMSSQL(db *sql.DB) repository.IProfile {
	return &ProfileRepositoryMSSQL{db: db}
}

func (r *ProfileRepositoryMSSQL) Upsert(ctx context.Context, p *model.Profile) error {
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC()
	}
	q := `MERGE dbo.[instagram_profiles] WITH (HOLDLOCK) AS target
USING (VALUES (@p1)) AS src(instagram_id)
ON target.instagram_id = src.instagram_id
WHEN MATCHED THEN UPDATE SET
    username=@p2,
    name=@p3,
    profile_picture_url=@p4,
    biography=@p5,
    website=@p6,
    is_business=@p7,
    media_count=@p8,
    followers_count=@p9,
    following_count=@p10,
    updated_at=@p11
WHEN NOT MATCHED THEN
    INSERT (` + profileColumns + `)
    VALUES (@p1,@p2,@p3,@p4,@p5,@p6,@p7,@p8,@p9,@p10,@p11);`
	_, err := r.db.ExecContext(ctx, q, profileArgs(p)...)
	if err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{
			"error":        err,
			"instagram_id": p.ID,
		}).Error("mssql: upsert profile failed")
	}
	return err
}

func (r *ProfileRepositoryMSSQL) Get(ctx context.Context, instagramID string) (*model.Profile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM dbo.[instagram_profiles] WHERE instagram_id = @p1`, instagramID)
	return scanProfileOrNil(row)
}
