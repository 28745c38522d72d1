// Package logindbtest builds Login Data fixtures for tests.
package logindbtest

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// Row is one logins row. Timestamps are Chromium microseconds since 1601.
type Row struct {
	URL      string
	Username string
	Created  int64
	Modified int64
}

// schema is a trimmed copy of the Chromium logins table.
const schema = `CREATE TABLE logins (
	origin_url VARCHAR NOT NULL,
	action_url VARCHAR,
	username_element VARCHAR,
	username_value VARCHAR,
	password_element VARCHAR,
	password_value BLOB,
	signon_realm VARCHAR NOT NULL,
	date_created INTEGER NOT NULL,
	blacklisted_by_user INTEGER NOT NULL DEFAULT 0,
	times_used INTEGER,
	date_password_modified INTEGER NOT NULL DEFAULT 0,
	id INTEGER PRIMARY KEY AUTOINCREMENT
)`

// Create writes a Login Data database at path holding rows.
func Create(t testing.TB, path string, rows ...Row) {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(schema)
	require.NoError(t, err)
	Insert(t, db, rows...)
}

// Insert adds rows to an open fixture database.
func Insert(t testing.TB, db *sql.DB, rows ...Row) {
	t.Helper()
	for _, r := range rows {
		_, err := db.Exec(
			`INSERT INTO logins (origin_url, signon_realm, username_value, password_value, date_created, date_password_modified)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			r.URL, r.URL, r.Username, []byte("v10\x00encrypted"), r.Created, r.Modified,
		)
		require.NoError(t, err)
	}
}

// Count returns the number of rows in the logins table at path.
func Count(t testing.TB, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM logins`).Scan(&n))
	return n
}
