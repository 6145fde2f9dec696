package types

// Response is the uniform envelope for the auxiliary API endpoints.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error"`
}
