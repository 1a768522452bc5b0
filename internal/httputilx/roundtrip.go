package httputilx

import (
	"log"
	"net/http"
	"net/http/httputil"
)

// DebugTransportOption (DTO) debugging transport, prints out the request and response
// to the standard logger.
type DebugTransportOption func(*DebugTransport)

// DTORoundTripper override the default http.RoundTripper to delegate the request
// to. By default uses http.DefaultTransport.
func DTORoundTripper(rt http.RoundTripper) DebugTransportOption {
	return func(dt *DebugTransport) {
		if rt == nil {
			return
		}

		dt.delegate = rt
	}
}

// NewDebugTransport builds a http.RoundTripper that prints the request
// to the standard logger.
func NewDebugTransport(options ...DebugTransportOption) DebugTransport {
	t := DebugTransport{
		delegate: http.DefaultTransport,
	}

	for _, opt := range options {
		opt(&t)
	}

	return t
}

// DebugTransport - prints the request and response of an http request.
type DebugTransport struct {
	delegate http.RoundTripper
}

// RoundTrip - implements http.RoundTripper
func (t DebugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var (
		raw  []byte
		err  error
		resp *http.Response
	)

	if raw, err = httputil.DumpRequestOut(req, true); err == nil {
		log.Println("RAW REQUEST")
		log.Println(string(raw))
	}

	if resp, err = t.delegate.RoundTrip(req); err != nil {
		return resp, err
	}

	if raw, err = httputil.DumpResponse(resp, true); err != nil {
		return resp, err
	}

	log.Println("RAW RESPONSE")
	log.Println(string(raw))

	return resp, nil
}

// DebugRoundTripper wraps the round tripper in a debugger.
func DebugRoundTripper(rt http.RoundTripper) http.RoundTripper {
	return NewDebugTransport(DTORoundTripper(rt))
}
