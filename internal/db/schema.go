package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Tables lists every table the service reads or writes.
var Tables = []string{"users", "listings", "forum_posts", "forum_replies"}

var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            CHAR(36)     NOT NULL PRIMARY KEY,
		name          VARCHAR(120) NOT NULL,
		email         VARCHAR(190) NOT NULL UNIQUE,
		phone         VARCHAR(32)  NULL,
		location      VARCHAR(120) NOT NULL,
		avatar_url    VARCHAR(500) NULL,
		password_hash VARCHAR(100) NOT NULL,
		role          VARCHAR(16)  NOT NULL,
		created_at    DATETIME     NOT NULL,
		updated_at    DATETIME     NOT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS listings (
		id           CHAR(36)      NOT NULL PRIMARY KEY,
		title        VARCHAR(200)  NOT NULL,
		description  TEXT          NOT NULL,
		price        DECIMAL(12,2) NOT NULL,
		unit         VARCHAR(32)   NOT NULL,
		quantity     VARCHAR(64)   NOT NULL,
		category     VARCHAR(64)   NOT NULL,
		location     VARCHAR(120)  NOT NULL,
		images       JSON          NULL,
		seller_id    CHAR(36)      NOT NULL,
		seller_name  VARCHAR(120)  NOT NULL,
		seller_phone VARCHAR(32)   NULL,
		status       VARCHAR(16)   NOT NULL DEFAULT 'available',
		created_at   DATETIME      NOT NULL,
		updated_at   DATETIME      NOT NULL,
		KEY idx_listings_seller (seller_id),
		KEY idx_listings_created (created_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS forum_posts (
		id          CHAR(36)     NOT NULL PRIMARY KEY,
		title       VARCHAR(200) NOT NULL,
		content     TEXT         NOT NULL,
		category    VARCHAR(64)  NOT NULL,
		author_id   CHAR(36)     NOT NULL,
		author_name VARCHAR(120) NOT NULL,
		author_role VARCHAR(16)  NOT NULL,
		images      JSON         NULL,
		likes       INT          NOT NULL DEFAULT 0,
		liked_by    JSON         NULL,
		views       INT          NOT NULL DEFAULT 0,
		status      VARCHAR(16)  NOT NULL DEFAULT 'open',
		created_at  DATETIME     NOT NULL,
		updated_at  DATETIME     NOT NULL,
		KEY idx_forum_posts_created (created_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	`CREATE TABLE IF NOT EXISTS forum_replies (
		id          CHAR(36)     NOT NULL PRIMARY KEY,
		post_id     CHAR(36)     NOT NULL,
		content     TEXT         NOT NULL,
		author_id   CHAR(36)     NOT NULL,
		author_name VARCHAR(120) NOT NULL,
		author_role VARCHAR(16)  NOT NULL,
		likes       INT          NOT NULL DEFAULT 0,
		liked_by    JSON         NULL,
		is_accepted TINYINT(1)   NOT NULL DEFAULT 0,
		created_at  DATETIME     NOT NULL,
		KEY idx_forum_replies_post (post_id, created_at),
		CONSTRAINT fk_forum_replies_post FOREIGN KEY (post_id) REFERENCES forum_posts (id) ON DELETE CASCADE
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates any missing tables. Existing tables are left untouched.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schemaDDL {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create table %s: %w", Tables[i], err)
		}
	}
	return nil
}

// HasTable reports whether table exists in the connected schema. Any query error
// counts as missing.
func HasTable(ctx context.Context, db *sql.DB, table string) bool {
	var name sql.NullString
	err := db.QueryRowContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1
	`, table).Scan(&name)
	if err != nil {
		return false
	}
	return name.Valid && name.String != ""
}

// MissingTables returns the entries of Tables not present in the database.
func MissingTables(ctx context.Context, db *sql.DB) []string {
	missing := []string{}
	for _, t := range Tables {
		if !HasTable(ctx, db, t) {
			missing = append(missing, t)
		}
	}
	return missing
}
