package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
)

// WaitReady polls the Ollama server's model listing until it answers
// 200 or attempts run out.
func WaitReady(ctx context.Context, serverURL string, attempts uint, delay time.Duration) error {
	if serverURL == "" {
		serverURL = DefaultServerURL
	}
	httpClient := &http.Client{Timeout: 2 * time.Second}
	url := strings.TrimRight(serverURL, "/") + "/api/tags"

	return retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			resp, err := httpClient.Do(req)
			if err != nil {
				return err
			}
			_ = resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("unhealthy status: %d", resp.StatusCode)
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(delay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
}
