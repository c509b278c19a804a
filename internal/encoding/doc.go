// Package encoding converts a single video file to WebM.
//
// The encoder maps a 0-100 quality score onto a VP9 target bitrate, builds
// the geometric filter chain (crop before scale, so crop coordinates refer to
// source pixels), and drives ffmpeg as a subprocess. Probing and command
// execution are injected so tests never spawn the real tools.
//
// A failed ffmpeg invocation is terminal for the file: the encoder does not
// retry and does not remove partial output; cleanup policy belongs to the
// caller.
package encoding
