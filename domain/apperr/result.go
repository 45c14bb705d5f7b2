package apperr

// Result is the (success, message) outcome returned by every store service.
// Code identifies the error kind when Success is false.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// OK returns a successful result with a confirmation message.
func OK(message string) Result {
	return Result{Success: true, Message: message}
}

// ResultOf converts err into a Result, using okMessage when err is nil.
func ResultOf(err error, okMessage string) Result {
	if err == nil {
		return OK(okMessage)
	}
	return Result{
		Success: false,
		Message: err.Error(),
		Code:    CodeOf(err),
	}
}

// Err returns nil for a successful result and the rebuilt error otherwise.
func (r Result) Err() error {
	if r.Success {
		return nil
	}
	return FromCode(r.Code, r.Message)
}
