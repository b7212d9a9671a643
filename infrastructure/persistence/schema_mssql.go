package persistence

import (
	"database/sql"
	"fmt"
)

var mssqlSchema = []struct {
	name string
	ddl  string
}{
	{"users", `IF NOT EXISTS (SELECT * FROM sys.objects WHERE object_id = OBJECT_ID(N'dbo.users') AND type in (N'U'))
BEGIN
    CREATE TABLE dbo.[users] (
        id INT IDENTITY(1,1) PRIMARY KEY,
        username NVARCHAR(255) NOT NULL UNIQUE,
        password NVARCHAR(255) NOT NULL,
        instagram_id NVARCHAR(64) NULL,
        access_token NVARCHAR(MAX) NULL,
        refresh_token NVARCHAR(MAX) NULL,
        token_expiry DATETIME2 NULL,
        created_at DATETIME2 NOT NULL DEFAULT SYSUTCDATETIME()
    );
    CREATE UNIQUE INDEX UX_users_instagram_id ON dbo.[users](instagram_id) WHERE instagram_id IS NOT NULL;
END`},
	{"instagram_profiles", `IF NOT EXISTS (SELECT * FROM sys.objects WHERE object_id = OBJECT_ID(N'dbo.instagram_profiles') AND type in (N'U'))
BEGIN
    CREATE TABLE dbo.[instagram_profiles] (
        id INT IDENTITY(1,1) PRIMARY KEY,
        instagram_id NVARCHAR(64) NOT NULL UNIQUE,
        username NVARCHAR(255) NOT NULL,
        name NVARCHAR(255) NULL,
        profile_picture_url NVARCHAR(MAX) NULL,
        biography NVARCHAR(MAX) NULL,
        website NVARCHAR(1024) NULL,
        is_business BIT NULL,
        media_count INT NULL,
        followers_count INT NULL,
        following_count INT NULL,
        updated_at DATETIME2 NOT NULL DEFAULT SYSUTCDATETIME()
    );
END`},
	{"instagram_media", `IF NOT EXISTS (SELECT * FROM sys.objects WHERE object_id = OBJECT_ID(N'dbo.instagram_media') AND type in (N'U'))
BEGIN
    CREATE TABLE dbo.[instagram_media] (
        id INT IDENTITY(1,1) PRIMARY KEY,
        instagram_id NVARCHAR(64) NOT NULL,
        media_id NVARCHAR(64) NOT NULL UNIQUE,
        user_id INT NOT NULL,
        media_type NVARCHAR(32) NOT NULL,
        media_url NVARCHAR(MAX) NOT NULL,
        permalink NVARCHAR(1024) NOT NULL,
        thumbnail_url NVARCHAR(MAX) NULL,
        caption NVARCHAR(MAX) NULL,
        [timestamp] NVARCHAR(64) NOT NULL,
        like_count INT NULL,
        comments_count INT NULL,
        comments_data NVARCHAR(MAX) NULL,
        updated_at DATETIME2 NOT NULL DEFAULT SYSUTCDATETIME()
    );
    CREATE INDEX IX_instagram_media_instagram_id ON dbo.[instagram_media](instagram_id);
END`},
}

// EnsureSchemaMSSQL creates the dashboard tables for SQL Server if they do not exist.
func EnsureSchemaMSSQL(db *sql.DB) error {
	for _, t := range mssqlSchema {
		if _, err := db.Exec(t.ddl); err != nil {
			return fmt.Errorf("create %s (mssql): %w", t.name, err)
		}
	}
	return nil
}
