package strategy

import (
	"voiceshield-media/domain/pipeline"
)

// transformReq builds a TransformRequest for strategies that consume
// extracted audio.
func transformReq(audioPath, workspaceDir string, rep pipeline.ProgressReporter) pipeline.TransformRequest {
	return pipeline.TransformRequest{
		SourcePath:   "source.mp4",
		AudioPath:    audioPath,
		WorkspaceDir: workspaceDir,
		Reporter:     rep,
	}
}
