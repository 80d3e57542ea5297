package model

// ProgressStatus is the tri-state completion status of an area or session.
type ProgressStatus string

const (
	ProgressPending    ProgressStatus = "PENDING"
	ProgressInProgress ProgressStatus = "IN_PROGRESS"
	ProgressCompleted  ProgressStatus = "COMPLETED"
)

// AreaProgress is the derived completion snapshot of one area in one
// session. It is recomputed on every read and never persisted.
type AreaProgress struct {
	AreaID         string         `json:"areaId"`
	TotalRequired  int            `json:"totalRequired"`
	Completed      int            `json:"completed"`
	PendingDefects int            `json:"pendingDefects"`
	Percentage     int            `json:"percentage"`
	Status         ProgressStatus `json:"status"`
}

// SessionProgress aggregates the area snapshots of every area the session's
// module inspects.
type SessionProgress struct {
	SessionID      string         `json:"sessionId"`
	Module         ModuleKind     `json:"module"`
	SessionStatus  SessionStatus  `json:"sessionStatus"`
	Areas          []AreaProgress `json:"areas"`
	TotalRequired  int            `json:"totalRequired"`
	Completed      int            `json:"completed"`
	PendingDefects int            `json:"pendingDefects"`
	Percentage     int            `json:"percentage"`
	Status         ProgressStatus `json:"status"`
}
