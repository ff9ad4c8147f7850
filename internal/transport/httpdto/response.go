package httpdto

// ErrorCode identifies the failures the gateway reports inside an envelope.
type ErrorCode string

const (
	CodeRateLimited ErrorCode = "RATE_LIMITED"
	CodeInternal    ErrorCode = "INTERNAL_ERROR"
)

// Response is the envelope for /ping and for rate limit and internal errors.
// The user and token routes answer with bare bodies instead.
type Response[T any] struct {
	Success bool      `json:"success"`
	Data    T         `json:"data,omitempty"`
	Error   string    `json:"error,omitempty"`
	Code    ErrorCode `json:"code,omitempty"`
}

func NewSuccessResponse[T any](data T) Response[T] {
	return Response[T]{Success: true, Data: data}
}

func NewErrorResponse(msg string, code ErrorCode) Response[any] {
	return Response[any]{Error: msg, Code: code}
}
