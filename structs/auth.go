package structs

// SimpleLoginRequest is the nickname-only login body
type SimpleLoginRequest struct {
	Nickname string `json:"nickname"`
}
