package metrics

const Namespace = "worklog"

const (
	LabelStatus = "status"
)
