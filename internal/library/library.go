// Package library is the sqlite-backed track store. It holds one row per
// scanned file, including the stream properties (format, sample rate, bit
// depth) the playback engine needs to open the device bit-perfectly.
package library

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/tlacroix/aria/internal/track"
)

const (
	appName    = "aria"
	dbFileName = "library.db"
)

type Library struct {
	db *sql.DB
}

// Open opens (or creates) the library database at path.
func Open(path string) (*Library, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Library{db: db}, nil
}

// DefaultPath returns the XDG data location for the library database.
func DefaultPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}

// New wraps an existing database handle. The caller owns the handle's
// lifetime.
func New(db *sql.DB) (*Library, error) {
	if err := initSchema(db); err != nil {
		return nil, err
	}
	return &Library{db: db}, nil
}

func (l *Library) Close() error {
	return l.db.Close()
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS library_tracks (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			path TEXT NOT NULL UNIQUE,
			mtime INTEGER NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			artist TEXT NOT NULL DEFAULT '',
			album_artist TEXT NOT NULL DEFAULT '',
			album TEXT NOT NULL DEFAULT '',
			genre TEXT NOT NULL DEFAULT '',
			track_number INTEGER NOT NULL DEFAULT 0,
			disc_number INTEGER NOT NULL DEFAULT 0,
			format TEXT NOT NULL DEFAULT '',
			sample_rate INTEGER NOT NULL DEFAULT 0,
			bit_depth INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_library_tracks_album
			ON library_tracks(album_artist, album);
	`)
	return err
}

const trackColumns = `id, path, title, artist, album, track_number, disc_number,
	format, sample_rate, bit_depth, duration_ms`

func scanTrack(rows *sql.Rows) (track.Track, error) {
	var t track.Track
	var durationMs int64
	err := rows.Scan(&t.ID, &t.Path, &t.Title, &t.Artist, &t.Album,
		&t.TrackNumber, &t.DiscNumber, &t.Format, &t.SampleRate, &t.BitDepth,
		&durationMs)
	t.Duration = time.Duration(durationMs) * time.Millisecond
	return t, err
}

func (l *Library) queryTracks(query string, args ...any) ([]track.Track, error) {
	rows, err := l.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tracks []track.Track
	for rows.Next() {
		t, err := scanTrack(rows)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}

// AllTracks returns every track in album play order.
func (l *Library) AllTracks() ([]track.Track, error) {
	return l.queryTracks(`
		SELECT ` + trackColumns + `
		FROM library_tracks
		ORDER BY album_artist COLLATE NOCASE, album COLLATE NOCASE,
			disc_number, track_number, title COLLATE NOCASE
	`)
}

// Artists returns all distinct album artists.
func (l *Library) Artists() ([]string, error) {
	rows, err := l.db.Query(`
		SELECT DISTINCT album_artist FROM library_tracks
		ORDER BY album_artist COLLATE NOCASE
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var artists []string
	for rows.Next() {
		var artist string
		if err := rows.Scan(&artist); err != nil {
			return nil, err
		}
		artists = append(artists, artist)
	}
	return artists, rows.Err()
}

// Albums returns the albums of an album artist.
func (l *Library) Albums(albumArtist string) ([]string, error) {
	rows, err := l.db.Query(`
		SELECT DISTINCT album FROM library_tracks
		WHERE album_artist = ?
		ORDER BY album COLLATE NOCASE
	`, albumArtist)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var albums []string
	for rows.Next() {
		var album string
		if err := rows.Scan(&album); err != nil {
			return nil, err
		}
		albums = append(albums, album)
	}
	return albums, rows.Err()
}

// AlbumTracks returns the tracks of one album in play order.
func (l *Library) AlbumTracks(albumArtist, album string) ([]track.Track, error) {
	return l.queryTracks(`
		SELECT `+trackColumns+`
		FROM library_tracks
		WHERE album_artist = ? AND album = ?
		ORDER BY disc_number, track_number, title COLLATE NOCASE
	`, albumArtist, album)
}

// TrackByPath returns the track stored for path, or nil.
func (l *Library) TrackByPath(path string) (*track.Track, error) {
	ts, err := l.queryTracks(`
		SELECT `+trackColumns+`
		FROM library_tracks WHERE path = ?
	`, path)
	if err != nil {
		return nil, err
	}
	if len(ts) == 0 {
		return nil, nil
	}
	return &ts[0], nil
}

// Len returns the number of stored tracks.
func (l *Library) Len() (int, error) {
	var n int
	err := l.db.QueryRow(`SELECT COUNT(*) FROM library_tracks`).Scan(&n)
	return n, err
}
