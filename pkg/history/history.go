// Package history reads browser history databases for bulk import.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one past page visit from a browser's history database.
type Entry struct {
	URL       string
	Domain    string
	Path      string
	Title     string
	VisitedAt time.Time
}

// chromeEpoch is 1601-01-01 UTC; Chrome stores visit times as microseconds
// since then.
var chromeEpoch = time.Date(1601, 1, 1, 0, 0, 0, 0, time.UTC)

// ChromeTime converts a Chrome timestamp to time.Time.
func ChromeTime(micros int64) time.Time {
	return chromeEpoch.Add(time.Duration(micros) * time.Microsecond)
}

// chromeMicros is the inverse of ChromeTime.
func chromeMicros(t time.Time) int64 {
	return int64(t.Sub(chromeEpoch) / time.Microsecond)
}

// openReadOnly opens a history database without taking locks, so a running
// browser does not block the import.
func openReadOnly(path string) (*sql.DB, error) {
	dsn := "file:" + path + "?mode=ro&immutable=1"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: open %s: %w", path, err)
	}
	return db, nil
}

// ReadChrome returns visits from a Chrome/Chromium History file for the
// last `days` days, most recent first.
func ReadChrome(ctx context.Context, path string, days int, now time.Time) ([]Entry, error) {
	db, err := openReadOnly(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	cutoff := chromeMicros(now.AddDate(0, 0, -days))
	rows, err := db.QueryContext(ctx, `
		SELECT urls.url, urls.title, visits.visit_time
		FROM visits JOIN urls ON visits.url = urls.id
		WHERE visits.visit_time >= ?
		ORDER BY visits.visit_time DESC`, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var rawURL string
		var title sql.NullString
		var visitTime int64
		if err := rows.Scan(&rawURL, &title, &visitTime); err != nil {
			return nil, err
		}
		e, ok := entryFromURL(rawURL, title.String, ChromeTime(visitTime))
		if ok {
			out = append(out, e)
		}
	}
	return out, rows.Err()
}

// ReadFirefox returns visits from a Firefox places.sqlite for the last
// `days` days, most recent first. Firefox stores unix microseconds.
func ReadFirefox(ctx context.Context, path string, days int, now time.Time) ([]Entry, error) {
	db, err := openReadOnly(path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	cutoff := now.AddDate(0, 0, -days).UnixMicro()
	rows, err := db.QueryContext(ctx, `
		SELECT p.url, p.title, v.visit_date
		FROM moz_historyvisits v JOIN moz_places p ON v.place_id = p.id
		WHERE v.visit_date >= ?
		ORDER BY v.visit_date DESC`, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var rawURL string
		var title sql.NullString
		var visitDate int64
		if err := rows.Scan(&rawURL, &title, &visitDate); err != nil {
			return nil, err
		}
		e, ok := entryFromURL(rawURL, title.String, time.UnixMicro(visitDate))
		if ok {
			out = append(out, e)
		}
	}
	return out, rows.Err()
}

// entryFromURL keeps http(s) page views and splits out domain and path.
func entryFromURL(rawURL, title string, at time.Time) (Entry, bool) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Hostname() == "" {
		return Entry{}, false
	}
	return Entry{
		URL:       rawURL,
		Domain:    strings.ToLower(u.Hostname()),
		Path:      u.Path,
		Title:     title,
		VisitedAt: at,
	}, true
}
