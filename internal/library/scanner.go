package library

import (
	"database/sql"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tlacroix/aria/internal/db"
	"github.com/tlacroix/aria/internal/tags"
)

const numWorkers = 8

// ScanProgress reports the progress of a library scan.
type ScanProgress struct {
	Phase       string // "scanning", "processing", "cleaning", "done"
	Current     int
	Total       int
	CurrentFile string
}

// fileInfo holds information about a discovered music file.
type fileInfo struct {
	path  string
	mtime int64
}

// probed holds the result of probing a music file.
type probed struct {
	path  string
	mtime int64
	tag   *tags.Tag
	info  *tags.AudioInfo
}

// Refresh performs an incremental scan of the given source directories:
// new and modified files are probed and upserted, rows for files that
// disappeared from a source are removed. progress may be nil.
func (l *Library) Refresh(sources []string, progress chan<- ScanProgress) error {
	report := func(p ScanProgress) {
		if progress != nil {
			progress <- p
		}
	}

	report(ScanProgress{Phase: "scanning"})
	files, err := discover(sources)
	if err != nil {
		return err
	}

	known, err := l.knownMtimes()
	if err != nil {
		return err
	}

	var changed []fileInfo
	for _, f := range files {
		if mtime, ok := known[f.path]; !ok || mtime != f.mtime {
			changed = append(changed, f)
		}
	}

	results := probeAll(changed, func(i int, path string) {
		report(ScanProgress{Phase: "processing", Current: i + 1, Total: len(changed), CurrentFile: path})
	})

	report(ScanProgress{Phase: "cleaning"})
	present := make(map[string]bool, len(files))
	for _, f := range files {
		present[f.path] = true
	}

	err = db.WithTx(l.db, func(tx *sql.Tx) error {
		for _, r := range results {
			if err := upsert(tx, r); err != nil {
				return err
			}
		}
		return removeMissing(tx, sources, present)
	})
	if err != nil {
		return err
	}

	report(ScanProgress{Phase: "done", Total: len(files)})
	return nil
}

// discover walks the sources and collects supported music files.
func discover(sources []string) ([]fileInfo, error) {
	var files []fileInfo
	for _, src := range sources {
		err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Unreadable entries are skipped, not fatal.
				return nil
			}
			if d.IsDir() || !tags.Supported(path) {
				return nil
			}
			fi, err := d.Info()
			if err != nil {
				return nil
			}
			files = append(files, fileInfo{path: path, mtime: fi.ModTime().Unix()})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

// probeAll reads tags and stream properties for the given files with a
// small worker pool. Files that fail to probe are dropped from the scan;
// they will be retried on the next refresh.
func probeAll(files []fileInfo, onFile func(i int, path string)) []probed {
	jobs := make(chan int)
	out := make([]*probed, len(files))

	var wg sync.WaitGroup
	for range numWorkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				f := files[i]
				tag, err := tags.Read(f.path)
				if err != nil {
					continue
				}
				info, err := tags.ReadAudioInfo(f.path)
				if err != nil {
					continue
				}
				out[i] = &probed{path: f.path, mtime: f.mtime, tag: tag, info: info}
			}
		}()
	}
	for i, f := range files {
		onFile(i, f.path)
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	results := make([]probed, 0, len(files))
	for _, r := range out {
		if r != nil {
			results = append(results, *r)
		}
	}
	return results
}

func upsert(tx *sql.Tx, r probed) error {
	albumArtist := r.tag.AlbumArtist
	if albumArtist == "" {
		albumArtist = r.tag.Artist
	}
	_, err := tx.Exec(`
		INSERT INTO library_tracks
			(path, mtime, title, artist, album_artist, album, genre,
			 track_number, disc_number, format, sample_rate, bit_depth, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			mtime = excluded.mtime,
			title = excluded.title,
			artist = excluded.artist,
			album_artist = excluded.album_artist,
			album = excluded.album,
			genre = excluded.genre,
			track_number = excluded.track_number,
			disc_number = excluded.disc_number,
			format = excluded.format,
			sample_rate = excluded.sample_rate,
			bit_depth = excluded.bit_depth,
			duration_ms = excluded.duration_ms
	`, r.path, r.mtime, r.tag.Title, r.tag.Artist, albumArtist, r.tag.Album,
		r.tag.Genre, r.tag.TrackNumber, r.tag.DiscNumber, r.info.Format,
		r.info.SampleRate, r.info.BitDepth, r.info.Duration.Milliseconds())
	return err
}

// removeMissing deletes rows under the scanned sources whose file no
// longer exists. Rows outside the sources are left alone.
func removeMissing(tx *sql.Tx, sources []string, present map[string]bool) error {
	rows, err := tx.Query(`SELECT path FROM library_tracks`)
	if err != nil {
		return err
	}
	var stale []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			rows.Close()
			return err
		}
		if !present[path] && underAny(path, sources) {
			stale = append(stale, path)
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	for _, path := range stale {
		if _, err := tx.Exec(`DELETE FROM library_tracks WHERE path = ?`, path); err != nil {
			return err
		}
	}
	return nil
}

func underAny(path string, sources []string) bool {
	for _, src := range sources {
		rel, err := filepath.Rel(src, path)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func (l *Library) knownMtimes() (map[string]int64, error) {
	rows, err := l.db.Query(`SELECT path, mtime FROM library_tracks`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	known := make(map[string]int64)
	for rows.Next() {
		var path string
		var mtime int64
		if err := rows.Scan(&path, &mtime); err != nil {
			return nil, err
		}
		known[path] = mtime
	}
	return known, rows.Err()
}
