package mock

import (
	"net/http"
	"net/http/httptest"
)

// Transport is an http.RoundTripper that serves requests from an in-process
// handler instead of the network.
type Transport struct {
	Handler http.Handler
}

// NewTransport returns a Transport backed by h.
func NewTransport(h http.Handler) *Transport {
	return &Transport{Handler: h}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := req.Context().Err(); err != nil {
		return nil, err
	}

	r := req.Clone(req.Context())
	if r.Body == nil {
		r.Body = http.NoBody
	}
	r.RequestURI = r.URL.RequestURI()

	rec := httptest.NewRecorder()
	t.Handler.ServeHTTP(rec, r)

	resp := rec.Result()
	resp.Request = req
	return resp, nil
}
