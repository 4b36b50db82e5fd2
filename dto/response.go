package dto

// ErrorResponseDTO is the uniform error payload of the API.
type ErrorResponseDTO struct {
	Error string `json:"error" example:"post not found"`
}

// MessageResponseDTO is the uniform acknowledgement payload of the API.
type MessageResponseDTO struct {
	Message string `json:"message" example:"ok"`
}

func NewErrorResponseDTO(msg string) ErrorResponseDTO {
	return ErrorResponseDTO{Error: msg}
}

func NewMessageResponseDTO(msg string) MessageResponseDTO {
	return MessageResponseDTO{Message: msg}
}
