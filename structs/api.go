package structs

// UpdateProgressRequest reports a challenge completion. Points is accepted for
// wire compatibility with older clients but the server derives the credited
// value from the challenge record.
type UpdateProgressRequest struct {
	ChallengeID int `json:"challengeId" binding:"required"`
	Points      int `json:"points"`
}

// ExecuteCodeRequest carries a snippet for sandboxed execution
type ExecuteCodeRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}
