package dto

// AppDataRequest is the body of POST /app-data. Exactly one of the fields is
// expected; debugUserId is honored only when debug authentication is
// enabled in configuration.
type AppDataRequest struct {
	InitData    string `json:"initData"`
	DebugUserID *int64 `json:"debugUserId"`
}

// TaskBatchUpdateRequest is one entry of PUT /tasks/batch-update.
type TaskBatchUpdateRequest struct {
	TaskID   int64  `json:"taskId"`
	Priority *int   `json:"priority"`
	StatusID *int64 `json:"statusId"`
}

// TaskMemberUpdateRequest is the body of PUT /tasks/:id/members.
type TaskMemberUpdateRequest struct {
	CuratorID    *int64  `json:"curatorId"`
	MemberIDs    []int64 `json:"memberIds"`
	ModifierName string  `json:"modifierName"`
}

// ProjectStageUpdateRequest is the body of PUT /projects/:id/stages.
type ProjectStageUpdateRequest struct {
	StageIDs []int64 `json:"stageIds"`
}

// ProjectMemberUpdateRequest is the body of PUT /projects/:id/members.
type ProjectMemberUpdateRequest struct {
	MemberIDs    []int64 `json:"memberIds"`
	ModifierName string  `json:"modifierName"`
}

// APIResponse is the status/message/payload envelope returned by mutating
// task endpoints.
type APIResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}
