package pipeline

// Stage is a step of the per-frame state machine. Every frame walks
// Idle → Resize → Histogram → Rank → Draw → Display → Clear → Idle.
type Stage int

const (
	StageIdle Stage = iota
	StageResize
	StageHistogram
	StageRank
	StageDraw
	StageDisplay
	StageClear
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "IDLE"
	case StageResize:
		return "RESIZE"
	case StageHistogram:
		return "HISTOGRAM"
	case StageRank:
		return "RANK"
	case StageDraw:
		return "DRAW"
	case StageDisplay:
		return "DISPLAY"
	case StageClear:
		return "CLEAR"
	default:
		return "UNKNOWN"
	}
}

// next returns the stage that follows s.
func (s Stage) next() Stage {
	if s >= StageClear || s < StageIdle {
		return StageIdle
	}
	return s + 1
}
