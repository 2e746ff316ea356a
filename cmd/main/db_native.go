//go:build !cgo_sqlite

package main

import (
	"database/sql"

	_ "modernc.org/sqlite"
)

func openCacheDB(path string) (*sql.DB, error) {
	return sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
}
