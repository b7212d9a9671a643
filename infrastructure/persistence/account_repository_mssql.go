package persistence

import (
	"context"
	"database/sql"
	"time"

	"ig-dashboard/domain/model"
	"ig-dashboard/domain/repository"
	"ig-dashboard/infrastructure/logger"
)

// AccountRepositoryMSSQL is a SQL Server implementation of IAccount using database/sql.
type AccountRepositoryMSSQL struct{ db *sql.DB }

func NewAccountRepositoryMSSQL(db *sql.DB) repository.IAccount {
	return &AccountRepositoryMSSQL{db: db}
}

func (r *AccountRepositoryMSSQL) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM dbo.[users] WHERE id = @p1`, id)
	return scanAccountOrNil(row)
}

// UpsertInstagramAccount runs a MERGE keyed by instagram_id; HOLDLOCK keeps
// concurrent callbacks for the same id from inserting twice.
func (r *AccountRepositoryMSSQL) UpsertInstagramAccount(ctx context.Context, instagramID, accessToken, refreshToken string, expiry time.Time) (*model.Account, error) {
	q := `MERGE dbo.[users] WITH (HOLDLOCK) AS target
USING (VALUES (@p1)) AS src(instagram_id)
ON target.instagram_id = src.instagram_id
WHEN MATCHED THEN UPDATE SET
    access_token=@p3,
    refresh_token=@p4,
    token_expiry=@p5
WHEN NOT MATCHED THEN
    INSERT (username, password, instagram_id, access_token, refresh_token, token_expiry)
    VALUES (@p2, N'', @p1, @p3, @p4, @p5)
OUTPUT inserted.id, inserted.username, inserted.password, inserted.instagram_id,
    inserted.access_token, inserted.refresh_token, inserted.token_expiry, inserted.created_at;`
	row := r.db.QueryRowContext(ctx, q, instagramID, model.UsernameFor(instagramID), accessToken, nullString(refreshToken), expiry.UTC())
	acc, err := scanAccount(row)
	if err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{
			"error":        err,
			"instagram_id": instagramID,
		}).Error("mssql: upsert instagram account failed")
		return nil, err
	}
	return acc, nil
}
