package clubapi

import "fmt"

// APIError wraps non-2xx responses. The body is kept verbatim because the
// backend reports some conditions only as free-text messages.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("club api: status=%d body=%s", e.StatusCode, e.Body)
}

// HTTPStatus returns the backend status code.
func (e *APIError) HTTPStatus() int {
	return e.StatusCode
}
