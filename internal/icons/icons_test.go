package icons

import "testing"

func TestInitSelectsStyle(t *testing.T) {
	t.Cleanup(func() { Init(string(StyleNone)) })

	Init(string(StyleUnicode))
	if got := FormatArtist("Miles"); got != "👤 Miles" {
		t.Errorf("FormatArtist() = %q", got)
	}

	Init(string(StyleNone))
	if got := FormatArtist("Miles"); got != "Miles" {
		t.Errorf("FormatArtist() with none style = %q", got)
	}
}

func TestInitUnknownStyleFallsBackToNone(t *testing.T) {
	t.Cleanup(func() { Init(string(StyleNone)) })

	Init("bogus")
	if got := FormatAlbum("Kind of Blue"); got != "Kind of Blue" {
		t.Errorf("FormatAlbum() = %q", got)
	}
}
