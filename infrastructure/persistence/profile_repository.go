package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"ig-dashboard/domain/model"
	"ig-dashboard/domain/repository"
)

const profileColumns = `instagram_id, username, name, profile_picture_url, biography, website, is_business, media_count, followers_count, following_count, updated_at`

type ProfileRepository struct{ db *sql.DB }

func NewProfileRepository(db *sql.DB) repository.IProfile { return &ProfileRepository{db: db} }

func (r *ProfileRepository) Upsert(ctx context.Context, p *model.Profile) error {
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC()
	}
	q := `INSERT INTO instagram_profiles (` + profileColumns + `)
          VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
          ON CONFLICT (instagram_id) DO UPDATE SET
            username=EXCLUDED.username,
            name=EXCLUDED.name,
            profile_picture_url=EXCLUDED.profile_picture_url,
            biography=EXCLUDED.biography,
            website=EXCLUDED.website,
            is_business=EXCLUDED.is_business,
            media_count=EXCLUDED.media_count,
            followers_count=EXCLUDED.followers_count,
            following_count=EXCLUDED.following_count,
            updated_at=EXCLUDED.updated_at`
	_, err := r.db.ExecContext(ctx, q, profileArgs(p)...)
	return err
}

func (r *ProfileRepository) Get(ctx context.Context, instagramID string) (*model.Profile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM instagram_profiles WHERE instagram_id = $1`, instagramID)
	return scanProfileOrNil(row)
}

func profileArgs(p *model.Profile) []interface{} {
	return []interface{}{
		p.ID,
		p.Username,
		nullString(p.Name),
		nullString(p.ProfilePictureURL),
		nullString(p.Biography),
		nullString(p.Website),
		p.IsBusiness,
		p.MediaCount,
		p.FollowersCount,
		p.FollowingCount,
		p.UpdatedAt,
	}
}

func scanProfileOrNil(row rowScanner) (*model.Profile, error) {
	p := &model.Profile{}
	var name, picture, bio, website sql.NullString
	var isBusiness sql.NullBool
	var mediaCount, followers, following sql.NullInt64
	err := row.Scan(&p.ID, &p.Username, &name, &picture, &bio, &website, &isBusiness, &mediaCount, &followers, &following, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.Name = name.String
	p.ProfilePictureURL = picture.String
	p.Biography = bio.String
	p.Website = website.String
	if isBusiness.Valid {
		v := isBusiness.Bool
		p.IsBusiness = &v
	}
	p.MediaCount = intPtr(mediaCount)
	p.FollowersCount = intPtr(followers)
	p.FollowingCount = intPtr(following)
	return p, nil
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
