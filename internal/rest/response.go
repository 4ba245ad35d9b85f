package rest

// ResponseError is the error body returned by handlers.
type ResponseError struct {
	Message string `json:"message"`
}
