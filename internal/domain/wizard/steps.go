package wizard

// Step is the wizard's position. Transitions are strictly forward and
// backward by user action; the only implicit jump is SelectAction →
// EditData once a valid action (and, for copy, its target) is in place.
type Step int

const (
	StepUpload Step = iota
	StepSelectData
	StepSelectAction
	StepEditData
	StepReview
	StepDownload
)

func (s Step) String() string {
	switch s {
	case StepUpload:
		return "upload"
	case StepSelectData:
		return "select_data"
	case StepSelectAction:
		return "select_action"
	case StepEditData:
		return "edit_data"
	case StepReview:
		return "review"
	case StepDownload:
		return "download"
	default:
		return "unknown"
	}
}
