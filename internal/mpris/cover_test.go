//go:build linux

package mpris

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFakeArt(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("jpeg"), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestFindAlbumArt(t *testing.T) {
	dir := t.TempDir()
	want := filepath.Join(dir, "cover.jpg")
	writeFakeArt(t, want)

	got := FindAlbumArt(filepath.Join(dir, "01 - track.flac"))
	if got != want {
		t.Errorf("FindAlbumArt() = %q, want %q", got, want)
	}
}

func TestFindAlbumArtNone(t *testing.T) {
	dir := t.TempDir()
	if got := FindAlbumArt(filepath.Join(dir, "track.flac")); got != "" {
		t.Errorf("FindAlbumArt() = %q, want empty", got)
	}
}

func TestFindAlbumArtPrefersCover(t *testing.T) {
	dir := t.TempDir()
	writeFakeArt(t, filepath.Join(dir, "folder.jpg"))
	want := filepath.Join(dir, "cover.jpg")
	writeFakeArt(t, want)

	if got := FindAlbumArt(filepath.Join(dir, "track.flac")); got != want {
		t.Errorf("FindAlbumArt() = %q, want %q", got, want)
	}
}

func TestFindAlbumArtCapitalized(t *testing.T) {
	dir := t.TempDir()
	want := filepath.Join(dir, "Cover.jpg")
	writeFakeArt(t, want)

	if got := FindAlbumArt(filepath.Join(dir, "track.flac")); got != want {
		t.Errorf("FindAlbumArt() = %q, want %q", got, want)
	}
}
