// Package logindb reads and deletes rows of a Chromium Login Data database.
//
// Callers always pass the path of a snapshot, never the live file.
package logindb

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/ondrovic/browser-logins/internal/types"
)

// ErrQueryFailed covers a missing table or column and a file that is not a valid database.
var ErrQueryFailed = errors.New("query failed")

const (
	selectLogins = `SELECT signon_realm, username_value, date_created, date_password_modified FROM logins`
	deleteLogin  = `DELETE FROM logins WHERE signon_realm = ? AND username_value = ?`
)

// epochDelta is the number of seconds from 1601-01-01 to 1970-01-01.
const epochDelta = 11644473600

// ToTime converts a Chromium timestamp (microseconds since 1601-01-01) to a UTC time truncated
// to the second.
func ToTime(native int64) time.Time {
	return time.Unix(native/1000000-epochDelta, 0).UTC()
}

// FromTime converts t to a Chromium timestamp at second resolution.
func FromTime(t time.Time) int64 {
	return (t.Unix() + epochDelta) * 1000000
}

func open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrQueryFailed, path, err)
	}
	return db, nil
}

// ReadAll returns every login in the database. The connection is closed before returning.
func ReadAll(path string) ([]types.Credential, error) {
	db, err := open(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query(selectLogins)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrQueryFailed, path, err)
	}
	defer rows.Close()

	credentials := []types.Credential{}
	for rows.Next() {
		var (
			url, username     sql.NullString
			created, modified sql.NullInt64
		)
		if err := rows.Scan(&url, &username, &created, &modified); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrQueryFailed, path, err)
		}
		credentials = append(credentials, types.Credential{
			URL:        url.String,
			Username:   username.String,
			CreatedAt:  ToTime(created.Int64),
			ModifiedAt: ToTime(modified.Int64),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrQueryFailed, path, err)
	}
	return credentials, nil
}

// DeleteMatching removes every row whose realm and username equal url and username, and returns
// how many went. Zero is not an error.
func DeleteMatching(path, url, username string) (int64, error) {
	db, err := open(path)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	res, err := db.Exec(deleteLogin, url, username)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrQueryFailed, path, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrQueryFailed, path, err)
	}
	return n, nil
}
