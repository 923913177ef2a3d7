package repository

import (
	"context"
	"fmt"
)

// schema is valid for both MySQL and Postgres.  `rows` is reserved in MySQL,
// hence rows_count / seats_count.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS films (
		id          VARCHAR(64)  NOT NULL PRIMARY KEY,
		rating      VARCHAR(16)  NOT NULL,
		director    VARCHAR(255) NOT NULL,
		tags        TEXT         NOT NULL,
		title       VARCHAR(255) NOT NULL,
		about       TEXT         NOT NULL,
		description TEXT         NOT NULL,
		image       VARCHAR(255) NOT NULL,
		cover       VARCHAR(255) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		film_id     VARCHAR(64)      NOT NULL,
		id          VARCHAR(64)      NOT NULL,
		sort_order  INT              NOT NULL DEFAULT 0,
		daytime     VARCHAR(64)      NOT NULL,
		hall        INT              NOT NULL,
		rows_count  INT              NOT NULL,
		seats_count INT              NOT NULL,
		price       DOUBLE PRECISION NOT NULL,
		taken       TEXT             NOT NULL,
		PRIMARY KEY (film_id, id),
		FOREIGN KEY (film_id) REFERENCES films (id)
	)`,
}

// Migrate creates the films and sessions tables when they do not exist yet.
// It never alters existing tables.
func (r *SQLFilmRepo) Migrate(ctx context.Context) error {
	for i, stmt := range schema {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	return nil
}
