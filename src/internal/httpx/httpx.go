package httpx

import "net/http"

// Doer is the minimal HTTP client interface used across packages.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// UserAgent identifies outbound requests made by titlematch.
const UserAgent = "titlematch/1.0 (+https://github.com/titlematch)"

// SetUA sets the UserAgent header on the request.
func SetUA(req *http.Request) {
	if req != nil {
		req.Header.Set("User-Agent", UserAgent)
	}
}

// SetJSON marks the request body and the accepted response as JSON.
func SetJSON(req *http.Request) {
	if req != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
	}
}
