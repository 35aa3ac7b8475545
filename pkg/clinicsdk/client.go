package clinicsdk

import (
	"net/http"
	"strings"
	"time"
)

// Client talks to the clinic service. It holds no session state; the service
// has none.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}
