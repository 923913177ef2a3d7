package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/iliyamo/cinema-afisha/internal/model"
)

// Dialect selects the placeholder style of the relational backend.  Queries
// are written with "?" and rebound for Postgres.
type Dialect int

const (
	DialectMySQL Dialect = iota
	DialectPostgres
)

const (
	filmColumns    = `id, rating, director, tags, title, about, description, image, cover`
	sessionColumns = `film_id, id, daytime, hall, rows_count, seats_count, price, taken`
)

// SQLFilmRepo stores films in a `films` table and their sessions in a
// `sessions` table keyed by (film_id, id).  Tags and taken seats are kept as
// comma-joined text.
type SQLFilmRepo struct {
	db      *sql.DB
	dialect Dialect
}

// NewMySQLFilmRepo constructs a SQLFilmRepo over a MySQL handle.
func NewMySQLFilmRepo(db *sql.DB) *SQLFilmRepo {
	return &SQLFilmRepo{db: db, dialect: DialectMySQL}
}

// NewPostgresFilmRepo constructs a SQLFilmRepo over a Postgres handle opened
// through the pgx stdlib driver.
func NewPostgresFilmRepo(db *sql.DB) *SQLFilmRepo {
	return &SQLFilmRepo{db: db, dialect: DialectPostgres}
}

// DB exposes the underlying handle for callers that manage its lifetime.
func (r *SQLFilmRepo) DB() *sql.DB {
	return r.db
}

// FindAll returns every film ordered by id, with sessions attached.
func (r *SQLFilmRepo) FindAll(ctx context.Context) ([]model.Film, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+filmColumns+` FROM films ORDER BY id`)
	if err != nil {
		return nil, err
	}
	films, err := scanFilms(rows)
	if err != nil || len(films) == 0 {
		return films, err
	}
	if err := r.attachSessions(ctx, films, nil); err != nil {
		return nil, err
	}
	return films, nil
}

// FindByID returns the film with the given id or ErrFilmNotFound.
func (r *SQLFilmRepo) FindByID(ctx context.Context, id string) (*model.Film, error) {
	rows, err := r.db.QueryContext(ctx, r.rebind(`SELECT `+filmColumns+` FROM films WHERE id = ?`), id)
	if err != nil {
		return nil, err
	}
	films, err := scanFilms(rows)
	if err != nil {
		return nil, err
	}
	if len(films) == 0 {
		return nil, ErrFilmNotFound
	}
	if err := r.attachSessions(ctx, films, []string{id}); err != nil {
		return nil, err
	}
	return &films[0], nil
}

// FindByIDs loads all films whose id is in ids using a single IN query for
// films and another for their sessions.
func (r *SQLFilmRepo) FindByIDs(ctx context.Context, ids []string) ([]model.Film, error) {
	if len(ids) == 0 {
		return []model.Film{}, nil
	}
	in, args := inClause(ids)
	rows, err := r.db.QueryContext(ctx, r.rebind(`SELECT `+filmColumns+` FROM films WHERE id IN (`+in+`) ORDER BY id`), args...)
	if err != nil {
		return nil, err
	}
	films, err := scanFilms(rows)
	if err != nil || len(films) == 0 {
		return films, err
	}
	if err := r.attachSessions(ctx, films, ids); err != nil {
		return nil, err
	}
	return films, nil
}

// Count returns the number of rows in films.
func (r *SQLFilmRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM films`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// SaveTaken locks the session row, verifies that its taken set still equals
// prev and writes next.  The lock and the comparison happen in one
// transaction, so two concurrent reservations on the same session cannot
// both succeed from the same snapshot.
func (r *SQLFilmRepo) SaveTaken(ctx context.Context, filmID, sessionID string, prev, next model.Taken) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var raw string
	err = tx.QueryRowContext(ctx,
		r.rebind(`SELECT taken FROM sessions WHERE film_id = ? AND id = ? FOR UPDATE`),
		filmID, sessionID,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrFilmNotFound
		}
		return err
	}
	if !model.ParseTaken(raw).Equal(prev) {
		return ErrStaleSession
	}
	if _, err := tx.ExecContext(ctx,
		r.rebind(`UPDATE sessions SET taken = ? WHERE film_id = ? AND id = ?`),
		next.String(), filmID, sessionID,
	); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// attachSessions loads sessions for the given films and appends them in
// sort_order.  A nil ids slice loads sessions of every film.
func (r *SQLFilmRepo) attachSessions(ctx context.Context, films []model.Film, ids []string) error {
	q := `SELECT ` + sessionColumns + ` FROM sessions`
	var args []any
	if ids != nil {
		var in string
		in, args = inClause(ids)
		q += ` WHERE film_id IN (` + in + `)`
	}
	q += ` ORDER BY film_id, sort_order`

	rows, err := r.db.QueryContext(ctx, r.rebind(q), args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	index := make(map[string]int, len(films))
	for i := range films {
		index[films[i].ID] = i
	}
	for rows.Next() {
		var (
			filmID string
			taken  string
			s      model.Session
		)
		if err := rows.Scan(&filmID, &s.ID, &s.Daytime, &s.Hall, &s.Rows, &s.Seats, &s.Price, &taken); err != nil {
			return err
		}
		i, ok := index[filmID]
		if !ok {
			continue
		}
		s.Taken = model.ParseTaken(taken)
		films[i].Schedule = append(films[i].Schedule, s)
	}
	return rows.Err()
}

func scanFilms(rows *sql.Rows) ([]model.Film, error) {
	defer rows.Close()
	films := []model.Film{}
	for rows.Next() {
		var (
			f    model.Film
			tags string
		)
		if err := rows.Scan(&f.ID, &f.Rating, &f.Director, &tags, &f.Title, &f.About, &f.Description, &f.Image, &f.Cover); err != nil {
			return nil, err
		}
		f.Tags = splitCSV(tags)
		f.Schedule = []model.Session{}
		films = append(films, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return films, nil
}

// inClause builds "?, ?, ?" for len(ids) values along with the matching args.
func inClause(ids []string) (string, []any) {
	args := make([]any, 0, len(ids))
	var b strings.Builder
	for i, id := range ids {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("?")
		args = append(args, id)
	}
	return b.String(), args
}

// rebind rewrites "?" placeholders as $1, $2, ... for Postgres.
func (r *SQLFilmRepo) rebind(q string) string {
	if r.dialect != DialectPostgres {
		return q
	}
	var b strings.Builder
	n := 0
	for i := 0; i < len(q); i++ {
		if q[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(q[i])
	}
	return b.String()
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Import inserts films and their sessions in one transaction.  Session order
// is kept in sort_order.
func (r *SQLFilmRepo) Import(ctx context.Context, films []model.Film) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	insertFilm := r.rebind(`INSERT INTO films (` + filmColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	insertSession := r.rebind(`INSERT INTO sessions (` + sessionColumns + `, sort_order) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	for _, f := range films {
		if _, err := tx.ExecContext(ctx, insertFilm,
			f.ID, f.Rating, f.Director, strings.Join(f.Tags, ","), f.Title, f.About, f.Description, f.Image, f.Cover,
		); err != nil {
			return fmt.Errorf("insert film %s: %w", f.ID, err)
		}
		for i, s := range f.Schedule {
			if _, err := tx.ExecContext(ctx, insertSession,
				f.ID, s.ID, s.Daytime, s.Hall, s.Rows, s.Seats, s.Price, s.Taken.String(), i,
			); err != nil {
				return fmt.Errorf("insert session %s/%s: %w", f.ID, s.ID, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
