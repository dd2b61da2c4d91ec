package apiclient

import "net/http"

// Response is the transport envelope of a completed call.
type Response struct {
	StatusCode int
	Header     http.Header
	Data       []byte
}

// OK reports whether the status code is in the 2xx range.
func (r Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode <= 299
}

// Unwrap strips the envelope. A non-nil err is returned as is; a 2xx response
// yields only its body; anything else becomes a *StatusError.
func Unwrap(resp Response, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, &StatusError{Response: resp}
	}
	return resp.Data, nil
}
