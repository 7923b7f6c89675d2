package media

import "context"

// StreamInfo describes one audio stream found by probing a container.
type StreamInfo struct {
	Channels int
}

// Prober defines the interface for inspecting a media container.
// This is a port that can be implemented by different infrastructure adapters.
type Prober interface {
	// AudioStreams returns one StreamInfo per audio stream in the file.
	// An empty result means the container carries no audio track.
	AudioStreams(ctx context.Context, path string) ([]StreamInfo, error)
}

// AudioExtractor defines the interface for demuxing the audio track into the
// canonical intermediate format (16-bit PCM WAV, 44100 Hz, stereo).
type AudioExtractor interface {
	// Extract demuxes the audio track of sourcePath into outputPath
	Extract(ctx context.Context, sourcePath, outputPath string) error
}

// Remuxer defines the interface for combining processed streams into the
// final output container.
type Remuxer interface {
	// CombineAudio muxes the video stream of videoSource (stream copy) with
	// the processed audio file into outputPath
	CombineAudio(ctx context.Context, videoSource, audioPath, outputPath string) error

	// CombineVideo muxes an already-perturbed video-only file with the audio
	// stream of audioSource, copying both streams, into outputPath
	CombineVideo(ctx context.Context, perturbedVideo, audioSource, outputPath string) error
}

// FileChecker defines the interface for checking file existence.
// This is used to validate that source files exist before processing.
type FileChecker interface {
	// Exists returns true if the file exists
	Exists(path string) bool
}
