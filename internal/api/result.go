package api

import "encoding/json"

// CallResult is the uniform outcome of a single API operation. Exactly one
// of Data and Err is meaningful: success carries data and an empty error,
// failure carries an error and no data.
type CallResult struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data,omitempty"`
	Err        string          `json:"error,omitempty"`
	StatusCode int             `json:"status_code"`
}

// OK builds a successful result.
func OK(data json.RawMessage, status int) CallResult {
	return CallResult{Success: true, Data: data, StatusCode: status}
}

// Fail builds a failed result. Data is always nil on failure.
func Fail(errMsg string, status int) CallResult {
	return CallResult{Success: false, Err: errMsg, StatusCode: status}
}

// Decode unmarshals the result payload into out. Fails on unsuccessful
// results or empty bodies.
func (r CallResult) Decode(out any) error {
	if !r.Success {
		return &decodeError{msg: "cannot decode failed result: " + r.Err}
	}
	if len(r.Data) == 0 {
		return &decodeError{msg: "result has no body"}
	}
	return json.Unmarshal(r.Data, out)
}

type decodeError struct{ msg string }

func (e *decodeError) Error() string { return e.msg }

// Page is the shape every paginated list endpoint returns.
type Page struct {
	Entities   []json.RawMessage `json:"entities"`
	PageNumber int               `json:"pageNumber"`
	PageSize   int               `json:"pageSize"`
	PageCount  int               `json:"pageCount"`
	Total      int               `json:"total"`
}
