package scryfall

import (
	"encoding/json"
	"fmt"
)

// ResponseError is returned for any non-success response from the API.
// It is terminal for the request that produced it; callers should not retry.
type ResponseError struct {
	Op          string // Client method that issued the request
	Method      string
	URL         string
	RequestBody string
	StatusCode  int
	Body        string // Raw response text
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%s got response %d: %s", e.Op, e.StatusCode, e.Details())
}

// Details returns the API's error description, or the raw body when it is not an error object
func (e *ResponseError) Details() string {
	var apiErr struct {
		Object  string `json:"object"`
		Details string `json:"details"`
	}
	if err := json.Unmarshal([]byte(e.Body), &apiErr); err == nil && apiErr.Object == "error" && apiErr.Details != "" {
		return apiErr.Details
	}
	return e.Body
}
