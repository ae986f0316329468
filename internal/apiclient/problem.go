package apiclient

import (
	"encoding/json"
	"strings"
)

// problemDetails is the RFC 7807 shape the API uses for error bodies.
type problemDetails struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail"`
	Instance string `json:"instance"`
}

// errorDetail extracts a human-readable message from an error response
// body: the problem object's detail, then its title, then the raw body
// text. It never fails.
func errorDetail(body []byte) string {
	var problem problemDetails
	if err := json.Unmarshal(body, &problem); err == nil {
		if problem.Detail != "" {
			return problem.Detail
		}
		if problem.Title != "" {
			return problem.Title
		}
	}
	return strings.TrimSpace(string(body))
}
