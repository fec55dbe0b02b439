package httpclient

import "errors"

// StructuredMessage reports the backend's own error message carried by err, if any.
func StructuredMessage(err error) (string, bool) {
	var se *StatusError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message, true
	}
	return "", false
}

// IsStatus reports whether err is a backend reply with the given status.
func IsStatus(err error, status int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Status == status
}
