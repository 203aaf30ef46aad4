// Package status parses the text report printed by `wpctl status`.
package status

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hongyan/audiocontrol/internal/device"
)

const sinksMarker = "Sinks:"

// Any of these ends the sinks block, whatever the line prefix
var sectionEndMarkers = []string{"Sources:", "Filters:", "Streams:"}

// Example: " │  *   64. Navi 10 HDMI Audio Digital Stereo (HDMI) [vol: 0.40]"
var sinkLine = regexp.MustCompile(`^\s*│\s*(\*)?\s*(\d+)\.\s+(.+?)\s+\[vol:\s*([\d.]*)`)

// Result is the outcome of parsing one status report
type Result struct {
	Devices  []device.Device
	SawSinks bool // a "Sinks:" header was found
}

// Parse extracts the sink devices from a status report, in source order.
// Lines in the sinks block that are not device entries are skipped.
func Parse(raw string) Result {
	var res Result
	inSinks := false

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")

		if !inSinks {
			if strings.Contains(line, sinksMarker) {
				inSinks = true
				res.SawSinks = true
			}
			continue
		}

		if endsSinks(line) {
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		if d, ok := parseSinkLine(line); ok {
			res.Devices = append(res.Devices, d)
		}
	}

	return res
}

func endsSinks(line string) bool {
	for _, marker := range sectionEndMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}

func parseSinkLine(line string) (device.Device, bool) {
	m := sinkLine.FindStringSubmatch(line)
	if m == nil {
		return device.Device{}, false
	}

	name := strings.TrimSpace(m[3])
	volume, err := strconv.ParseFloat(m[4], 64)
	if err != nil {
		volume = 0.0
	}

	return device.Device{
		ID:       m[2],
		Name:     name,
		IsActive: m[1] != "",
		Volume:   volume,
		Category: device.Classify(name),
	}, true
}
