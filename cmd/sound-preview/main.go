// ABOUTME: CLI tool for previewing the volume feedback sound on a chosen device.
// ABOUTME: Plays the built-in tick, or a MP3/WAV/FLAC/OGG/AIFF file when one is given.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hongyan/audiocontrol/internal/audio"
	"github.com/hongyan/audiocontrol/internal/config"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("sound-preview", flag.ContinueOnError)
	fs.SetOutput(stderr)

	defaults := config.DefaultConfig().Feedback
	volumeFlag := fs.Float64("volume", defaults.Volume, "Volume level (0.0 to 1.0)")
	deviceFlag := fs.String("device", "", "Audio output device name (empty = system default)")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: sound-preview [options] [path-to-audio-file]\n\n")
		fmt.Fprintf(stderr, "Without a file the built-in volume tick is played.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nSupported formats: MP3, WAV, FLAC, OGG/Vorbis, AIFF\n\n")
		fmt.Fprintf(stderr, "Examples:\n")
		fmt.Fprintf(stderr, "  sound-preview\n")
		fmt.Fprintf(stderr, "  sound-preview --volume 0.3 /usr/share/sounds/freedesktop/stereo/audio-volume-change.oga\n")
		fmt.Fprintf(stderr, "  sound-preview --device \"USB Headphones\"\n")
		fmt.Fprintf(stderr, "\nList available devices:\n")
		fmt.Fprintf(stderr, "  list-devices --hardware\n")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if *volumeFlag < 0.0 || *volumeFlag > 1.0 {
		fmt.Fprintf(stderr, "Error: Volume must be between 0.0 and 1.0 (got %.2f)\n", *volumeFlag)
		return 1
	}

	soundPath := fs.Arg(0)
	if soundPath != "" {
		if _, err := os.Stat(soundPath); os.IsNotExist(err) {
			fmt.Fprintf(stderr, "Error: Sound file not found: %s\n", soundPath)
			return 1
		}
	}

	label := "volume tick"
	if soundPath != "" {
		label = filepath.Base(soundPath)
	}
	volumePercent := int(*volumeFlag * 100)
	if *deviceFlag != "" {
		fmt.Fprintf(stdout, "Playing: %s (volume: %d%%, device: %s)\n", label, volumePercent, *deviceFlag)
	} else {
		fmt.Fprintf(stdout, "Playing: %s (volume: %d%%)\n", label, volumePercent)
	}

	player, err := audio.NewPlayer(*deviceFlag, *volumeFlag)
	if err != nil {
		fmt.Fprintf(stderr, "Error creating audio player: %v\n", err)
		return 1
	}
	defer player.Close()

	if soundPath == "" {
		err = player.PlayTick()
	} else {
		err = player.Play(soundPath)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error playing sound: %v\n", err)
		return 1
	}

	fmt.Fprintln(stdout, "✓ Playback completed")
	return 0
}
