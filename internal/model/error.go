package model

import "errors"

var (
	// ErrPersistence marks faults raised by the record store.
	ErrPersistence = errors.New("persistence error")
	// ErrAssetIO marks faults raised while writing, reading or removing an asset.
	ErrAssetIO = errors.New("asset io error")
)

type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Param   string `json:"param,omitempty"`
}

func (e *ValidationError) Error() string {
	return e.Message
}

// HasCode reports whether err is a *ValidationError carrying code.
func HasCode(err error, code string) bool {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Code == code
	}
	return false
}
