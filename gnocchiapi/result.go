package gnocchiapi

import "fmt"

// Status classifies the outcome of a store call from the dispatch workflow's
// point of view. HTTP statuses that drive the create/retry protocol get their
// own variants; everything else unexpected is a Failure.
type Status int

const (
	// OK is any 2xx response.
	OK Status = iota
	// Missing is a 404 on a measures post: the metric stream or its owning
	// resource does not exist yet.
	Missing
	// Conflict is a 409 on a create call: someone else created the resource
	// or metric stream first.
	Conflict
	// Failure is every other non-2xx response.
	Failure
)

func (s Status) String() string {
	switch s {
	case OK:
		return "ok"
	case Missing:
		return "missing"
	case Conflict:
		return "conflict"
	case Failure:
		return "failure"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Result is the outcome of a single store call. Code and Body are only
// meaningful for Failure results, where they carry the HTTP status code and
// the (truncated) response body for diagnostics.
type Result struct {
	Status Status
	Code   int
	Body   string
}

func (r Result) String() string {
	if r.Status == Failure {
		return fmt.Sprintf("%s (%d: %s)", r.Status, r.Code, r.Body)
	}
	return r.Status.String()
}
