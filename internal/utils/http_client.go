package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates a resty client talking JSON to baseURL. A zero
// timeout leaves requests unbounded. A trace id found in the request context
// is sent in the TraceIDHeader header.
//
//	client := utils.NewHTTPClient("http://localhost:8080", 10*time.Second)
//	resp, err := client.R().Get("/api/version/")
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if traceID, ok := GetTraceIDFromContext(req.Context()); ok {
			req.SetHeader(TraceIDHeader, traceID)
		}
		return nil
	})

	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &HTTPClient{Client: client}
}
