package serverutils

// ErrorBody is the error envelope the frontend expects.
type ErrorBody struct {
	Error string `json:"error"`
}

func ErrorResponse(message string) ErrorBody {
	return ErrorBody{Error: message}
}

// MessageBody is the confirmation envelope for operations with no resource
// body (e.g. delete).
type MessageBody struct {
	Message string `json:"message"`
}

func MessageResponse(message string) MessageBody {
	return MessageBody{Message: message}
}
