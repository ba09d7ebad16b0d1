package dto

// MessageResponse is the body of every mutation response and every error
type MessageResponse struct {
	Message string `json:"message" example:"Movie added successfully"`
}

// ResultResponse wraps a successful query result
type ResultResponse struct {
	Result any `json:"result"`
}

// NewMessageResponse creates a message response
func NewMessageResponse(message string) MessageResponse {
	return MessageResponse{Message: message}
}

// NewResultResponse creates a result response
func NewResultResponse(result any) ResultResponse {
	return ResultResponse{Result: result}
}
