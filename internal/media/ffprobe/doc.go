// Package ffprobe wraps the ffprobe binary to extract the video geometry,
// duration, and audio presence the converter needs.
//
// Probing uses two invocations: one for the first video stream's
// width,height,duration triple and one for audio-stream presence. Command
// execution goes through the Executor interface so tests can substitute a
// fake without running the real tool.
package ffprobe
