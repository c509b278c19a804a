package encoding

import (
	"fmt"
	"strconv"
	"strings"

	"webmify/internal/media/ffprobe"
)

// Bitrate band boundaries for the quality mapping.
const (
	lowBandCeiling = 30
	midBandCeiling = 70
)

// BitrateForQuality maps a 0-100 quality score to a target bitrate in kbps.
// Three linear bands meet continuously at quality 30 (500 kbps) and quality
// 70 (2000 kbps): fine control at low bitrates, diminishing returns at high
// ones.
func BitrateForQuality(quality int) int {
	switch {
	case quality < lowBandCeiling:
		return 100 + 400*quality/30
	case quality < midBandCeiling:
		return 500 + 1500*(quality-30)/40
	default:
		return 2000 + 4000*(quality-70)/30
	}
}

// Filter is one semantic step of the video filter chain.
type Filter struct {
	Name string
	Args string
}

func (f Filter) String() string {
	return f.Name + "=" + f.Args
}

// FilterChain is an ordered list of filters, rendered to ffmpeg syntax only
// at the invocation boundary.
type FilterChain []Filter

// Render joins the chain into ffmpeg's -vf argument syntax.
func (c FilterChain) Render() string {
	parts := make([]string, len(c))
	for i, f := range c {
		parts[i] = f.String()
	}
	return strings.Join(parts, ",")
}

// BuildFilterChain constructs the geometric transforms in their required
// order: crop first, then scale, so crop coordinates always refer to
// source-resolution pixels.
func BuildFilterChain(crop, resize string) (FilterChain, error) {
	var chain FilterChain
	if crop != "" {
		region, err := parseCrop(crop)
		if err != nil {
			return nil, err
		}
		chain = append(chain, Filter{
			Name: "crop",
			Args: fmt.Sprintf("%d:%d:%d:%d", region.width, region.height, region.x, region.y),
		})
	}
	if resize != "" {
		width, height, err := parseResize(resize)
		if err != nil {
			return nil, err
		}
		chain = append(chain, Filter{
			Name: "scale",
			Args: fmt.Sprintf("%d:%d:force_original_aspect_ratio=decrease", width, height),
		})
	}
	return chain, nil
}

// buildArgs assembles the full ffmpeg argument list for one conversion.
func buildArgs(input, output string, bitrate int, chain FilterChain, info ffprobe.VideoInfo, opts Options) []string {
	args := []string{"-y"}
	if !opts.Verbose {
		args = append(args, "-v", "warning")
	}
	args = append(args, "-i", input)

	if len(chain) > 0 {
		args = append(args, "-vf", chain.Render())
	}

	args = append(args,
		"-c:v", "libvpx-vp9",
		"-b:v", strconv.Itoa(bitrate)+"k",
		"-deadline", "good",
		"-cpu-used", "4",
		"-pix_fmt", "yuv420p",
	)

	if opts.Threads > 0 {
		args = append(args, "-threads", strconv.Itoa(opts.Threads))
	}

	// Video-only sources get no audio mapping at all.
	if info.HasAudio {
		args = append(args, "-c:a", "libopus", "-b:a", "96k")
	}

	return append(args, output)
}
