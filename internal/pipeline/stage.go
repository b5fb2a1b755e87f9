package pipeline

// Stage tracks where a run is in the pipeline. Failed is terminal and only
// reachable from Normalizing, Transcribing and Indexing; speaker attribution
// and summarization degrade instead of failing.
type Stage int

const (
	StageIdle Stage = iota
	StageNormalizing
	StageTranscribing
	StageAttributingSpeakers
	StageSummarizing
	StageIndexing
	StageComplete
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageNormalizing:
		return "normalizing"
	case StageTranscribing:
		return "transcribing"
	case StageAttributingSpeakers:
		return "attributing-speakers"
	case StageSummarizing:
		return "summarizing"
	case StageIndexing:
		return "indexing"
	case StageComplete:
		return "complete"
	case StageFailed:
		return "failed"
	default:
		return "unknown"
	}
}
