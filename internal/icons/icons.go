// Package icons provides configurable icon prefixes for library entries.
package icons

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for the current style.
type Icons struct {
	Artist string
	Album  string
}

var (
	nerdIcons = Icons{
		Artist: " ", // nf-fa-user
		Album:  "󰀥 ", // nf-md-album
	}

	unicodeIcons = Icons{
		Artist: "👤 ",
		Album:  "💿 ",
	}

	noneIcons = Icons{}

	current = noneIcons
)

// Init sets the active icon set from the config value.
// Call once at startup.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleUnicode:
		current = unicodeIcons
	default:
		current = noneIcons
	}
}

// FormatArtist formats an artist name with the appropriate icon.
func FormatArtist(name string) string {
	return current.Artist + name
}

// FormatAlbum formats an album name with the appropriate icon.
func FormatAlbum(name string) string {
	return current.Album + name
}
