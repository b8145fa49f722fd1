package classifier

import "errors"

const (
	CategoryAIError = "Unknown (AI Error)"
	CategoryNoData  = "Unknown (No Data)"
)

var (
	// ErrTransport covers request construction, connection failures,
	// timeouts and non-2xx replies.
	ErrTransport = errors.New("classifier transport failure")
	// ErrMalformedResponse means the body could not be decoded or a
	// candidate carried no content parts.
	ErrMalformedResponse = errors.New("classifier response malformed")
	// ErrNoCandidates means a well-formed reply that holds no answer.
	ErrNoCandidates = errors.New("classifier returned no candidates")
)

// sentinelFor maps a degradation cause to the category stored in its place.
func sentinelFor(err error) string {
	if errors.Is(err, ErrNoCandidates) {
		return CategoryNoData
	}
	return CategoryAIError
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrNoCandidates):
		return "no_data"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed"
	default:
		return "transport_error"
	}
}
