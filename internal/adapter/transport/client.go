package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"cardfx-service/internal/domain/model"
)

// fetchJSON issues a GET and hands back status and body. Transport-level
// failures (dial, TLS, read) wrap model.ErrUpstream; status mapping is the
// caller's job because not-found means different things per provider.
func fetchJSON(ctx context.Context, client *http.Client, url string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: failed to create request: %v", model.ErrUpstream, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: failed to send request: %v", model.ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("%w: failed to read response: %v", model.ErrUpstream, err)
	}

	return resp.StatusCode, body, nil
}
