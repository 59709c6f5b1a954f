// Command ariaprobe is a diagnostic tool: it lists the output devices the
// playback engine would see and probes audio files for the exact stream
// properties (format, sample rate, bit depth) a bit-perfect open requires.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/tlacroix/aria/internal/device"
	"github.com/tlacroix/aria/internal/tags"
	"github.com/tlacroix/aria/internal/ui/playerbar"
)

func main() {
	listDevices := flag.Bool("devices", false, "list output devices and their native formats")
	flag.Parse()

	if *listDevices {
		if err := printDevices(); err != nil {
			log.Fatalf("list devices: %v", err)
		}
		return
	}

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: ariaprobe [-devices] file...")
		os.Exit(2)
	}

	failed := 0
	for _, path := range flag.Args() {
		if err := printProbe(path); err != nil {
			fmt.Printf("%s: %v\n", path, err)
			failed++
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func printDevices() error {
	catalog, err := device.NewSystemCatalog()
	if err != nil {
		return err
	}

	devices := catalog.Devices()
	if len(devices) == 0 {
		fmt.Println("no output devices found")
		return nil
	}

	for _, d := range devices {
		fmt.Printf("%s  %s\n", d.ID, d.Name)
		for _, f := range d.Formats {
			fmt.Printf("    %d bit / %d Hz\n", f.BitDepth, f.SampleRate)
		}
	}
	return nil
}

func printProbe(path string) error {
	if !tags.Supported(path) {
		return fmt.Errorf("unsupported file type")
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	t, err := tags.Probe(path)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", path)
	fmt.Printf("    stream:   %s\n", playerbar.FormatBadge(t.Format, t.BitDepth, t.SampleRate))
	fmt.Printf("    duration: %s\n", t.Duration.Round(time.Second))
	fmt.Printf("    size:     %s\n", humanize.Bytes(uint64(info.Size())))
	if t.Title != "" {
		fmt.Printf("    title:    %s\n", t.Title)
	}
	if t.Artist != "" {
		fmt.Printf("    artist:   %s\n", t.Artist)
	}
	if t.Album != "" {
		fmt.Printf("    album:    %s\n", t.Album)
	}
	return nil
}
