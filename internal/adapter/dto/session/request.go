package session

// ProcessVideoRequest represents the request to process a video
type ProcessVideoRequest struct {
	URL string `json:"url" validate:"required,httpurl,max=2048"`
}

// AskRequest represents a question about the processed video
type AskRequest struct {
	Question string `json:"question" validate:"required,max=4000"`
}
