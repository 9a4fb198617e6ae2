package media

import (
	"bytes"
	"encoding/json"
	"os/exec"
	"strconv"

	"media-studio/apperr"
)

// Probe holds the metadata the pipeline checks at stage boundaries.
type Probe struct {
	Duration float64
	Width    int
	Height   int
	HasAudio bool
	HasVideo bool
}

// ProbeFile inspects a media file with ffprobe.
func ProbeFile(path string) (Probe, error) {
	var output bytes.Buffer
	cmd := exec.Command("ffprobe",
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path)
	cmd.Stdout = &output
	if err := cmd.Run(); err != nil {
		return Probe{}, apperr.Wrap(apperr.InvalidMedia, err, "ffprobe failed for %s", path)
	}

	var result struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
		Streams []struct {
			CodecType string `json:"codec_type"`
			Width     int    `json:"width"`
			Height    int    `json:"height"`
			Duration  string `json:"duration"`
		} `json:"streams"`
	}
	if err := json.Unmarshal(output.Bytes(), &result); err != nil {
		return Probe{}, apperr.Wrap(apperr.InvalidMedia, err, "parsing ffprobe output for %s", path)
	}

	var p Probe
	p.Duration, _ = strconv.ParseFloat(result.Format.Duration, 64)
	for _, s := range result.Streams {
		switch s.CodecType {
		case "video":
			if !p.HasVideo {
				p.Width, p.Height = s.Width, s.Height
			}
			p.HasVideo = true
		case "audio":
			p.HasAudio = true
		}
		// Some containers only report per-stream durations.
		if p.Duration == 0 {
			if d, err := strconv.ParseFloat(s.Duration, 64); err == nil && d > p.Duration {
				p.Duration = d
			}
		}
	}
	return p, nil
}
