package framework

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

const serviceCheckInterval = time.Millisecond * 100

// AwaitService verifies that the service under test is reachable by querying the given URL
// until it gets a response that is not a server error, or until the timeout elapses.
//
// This is the only place where the harness retries a request: it is not part of any test, it
// just avoids running the whole suite against a service that is still starting up.
func AwaitService(url string, client *http.Client, timeout time.Duration, output io.Writer) error {
	if client == nil {
		client = http.DefaultClient
	}
	fmt.Fprintf(output, "Connecting to service at %s", url)

	deadline := time.Now().Add(timeout)
	for {
		fmt.Fprintf(output, ".")
		resp, err := client.Get(url)
		if err == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
			if resp.StatusCode < 500 {
				fmt.Fprintln(output)
				fmt.Fprintf(output, "Service responded with status %d\n", resp.StatusCode)
				return nil
			}
			err = fmt.Errorf("service returned status code %d", resp.StatusCode)
		}
		if !time.Now().Before(deadline) {
			fmt.Fprintln(output)
			return fmt.Errorf("timed out, result of last query was: %w", err)
		}
		time.Sleep(serviceCheckInterval)
	}
}
