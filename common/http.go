package common

// HttpResponse is the body of every API response. Error is set on failure, Result otherwise.
type HttpResponse[T any] struct {
	Error  *string `json:"error"`
	Result *T      `json:"result,omitempty"`
}
