package graph

import "fmt"

// Outcome is the tagged result of a Graph operation: either a success
// carrying a payload, or a failure carrying an error description the calling
// agent can act on. Operations return Outcomes instead of raising errors so
// that nothing panics across the tool boundary.
type Outcome struct {
	// Payload is the decoded response on success.
	Payload any

	// Err is the failure description. Empty on success.
	Err string

	// StatusCode is the remote HTTP status for API-level failures, 0 otherwise.
	StatusCode int

	// RecommendedFix is an actionable hint attached to credential failures.
	RecommendedFix string

	// Transport marks network-level faults (dial, timeout) so callers can
	// tell them apart from remote API rejections.
	Transport bool

	// MethodsTried lists the endpoint candidates attempted when an entire
	// read-fallback chain failed.
	MethodsTried []string
}

// Success returns a successful Outcome carrying payload.
func Success(payload any) Outcome {
	return Outcome{Payload: payload}
}

// Failure returns a failed Outcome with the given error description.
func Failure(msg string) Outcome {
	return Outcome{Err: msg}
}

// FailureWithFix returns a failed Outcome with an actionable fix attached.
func FailureWithFix(msg, fix string) Outcome {
	return Outcome{Err: msg, RecommendedFix: fix}
}

// RemoteFailure returns a failed Outcome for an HTTP error response,
// preserving the status code and raw response text.
func RemoteFailure(statusCode int, body string) Outcome {
	return Outcome{
		Err:        fmt.Sprintf("Status: %d, Response: %s", statusCode, body),
		StatusCode: statusCode,
	}
}

// TransportFailure returns a failed Outcome for a network-level fault.
func TransportFailure(err error) Outcome {
	return Outcome{Err: err.Error(), Transport: true}
}

// OK reports whether the Outcome is a success.
func (o Outcome) OK() bool {
	return o.Err == ""
}

// ToolPayload returns the JSON-serializable value handed back to the agent:
// the payload itself on success, or a structured error document on failure.
func (o Outcome) ToolPayload() any {
	if o.OK() {
		return o.Payload
	}
	m := map[string]any{
		"error":  o.Err,
		"status": "failed",
	}
	if o.StatusCode != 0 {
		m["status_code"] = o.StatusCode
	}
	if o.RecommendedFix != "" {
		m["recommended_fix"] = o.RecommendedFix
	}
	if len(o.MethodsTried) > 0 {
		m["methods_tried"] = o.MethodsTried
	}
	if o.Transport {
		m["transport_error"] = true
	}
	return m
}
