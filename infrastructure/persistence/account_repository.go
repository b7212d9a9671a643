package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"ig-dashboard/domain/model"
	"ig-dashboard/domain/repository"
	"ig-dashboard/infrastructure/logger"
)

const accountColumns = `id, username, password, instagram_id, access_token, refresh_token, token_expiry, created_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// AccountRepository is the PostgreSQL implementation of IAccount.
type AccountRepository struct{ db *sql.DB }

func NewAccountRepository(db *sql.DB) repository.IAccount { return &AccountRepository{db: db} }

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM users WHERE id = $1`, id)
	return scanAccountOrNil(row)
}

func (r *AccountRepository) UpsertInstagramAccount(ctx context.Context, instagramID, accessToken, refreshToken string, expiry time.Time) (*model.Account, error) {
	q := `INSERT INTO users (username, password, instagram_id, access_token, refresh_token, token_expiry)
          VALUES ($1, '', $2, $3, $4, $5)
          ON CONFLICT (instagram_id) DO UPDATE SET
            access_token=EXCLUDED.access_token,
            refresh_token=EXCLUDED.refresh_token,
            token_expiry=EXCLUDED.token_expiry
          RETURNING ` + accountColumns
	row := r.db.QueryRowContext(ctx, q, model.UsernameFor(instagramID), instagramID, accessToken, nullString(refreshToken), expiry.UTC())
	acc, err := scanAccount(row)
	if err != nil {
		logger.GetLogger().WithFields(map[string]interface{}{
			"error":        err,
			"instagram_id": instagramID,
		}).Error("upsert instagram account failed")
		return nil, err
	}
	return acc, nil
}

func scanAccount(row rowScanner) (*model.Account, error) {
	acc := &model.Account{}
	var instagramID, accessToken, refreshToken sql.NullString
	var expiry sql.NullTime
	if err := row.Scan(&acc.ID, &acc.Username, &acc.Password, &instagramID, &accessToken, &refreshToken, &expiry, &acc.CreatedAt); err != nil {
		return nil, err
	}
	if instagramID.Valid {
		v := instagramID.String
		acc.InstagramID = &v
	}
	acc.AccessToken = accessToken.String
	acc.RefreshToken = refreshToken.String
	if expiry.Valid {
		t := expiry.Time
		acc.TokenExpiry = &t
	}
	return acc, nil
}

func scanAccountOrNil(row rowScanner) (*model.Account, error) {
	acc, err := scanAccount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return acc, err
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
