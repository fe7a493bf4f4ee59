package framework

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const jsonContentType = "application/json"

// ProbeConfig contains the parameters for NewProbe.
type ProbeConfig struct {
	// BaseURL is the URL of the resource collection, such as "https://example.com/posts".
	BaseURL string

	// HTTPClient is the client to send requests with. If nil, http.DefaultClient is used.
	HTTPClient *http.Client

	// LogCurlCommands adds an equivalent curl command line to the debug output of every request.
	LogCurlCommands bool
}

// Probe sends single HTTP requests to the resource under test and returns the raw responses.
//
// A Probe does not retry, follow up, or interpret anything; assertions are up to the caller.
type Probe struct {
	baseURL         string
	httpClient      *http.Client
	logger          Logger
	logCurlCommands bool
	requestCount    *int32
}

// ProbeRequest describes one call to the resource under test.
type ProbeRequest struct {
	// Method is the HTTP method.
	Method string

	// ID selects a single resource. If it is undefined, the request goes to the collection.
	ID ldvalue.OptionalInt

	// Body is encoded as JSON if it is not nil. If it is nil, no request body is sent.
	Body interface{}
}

// ProbeResponse is the raw response to a ProbeRequest.
type ProbeResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte

	parsed   ldvalue.Value
	parseErr error
	isParsed bool
}

// NewProbe creates a Probe for the resource collection at config.BaseURL.
func NewProbe(config ProbeConfig) *Probe {
	client := config.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	return &Probe{
		baseURL:         strings.TrimSuffix(config.BaseURL, "/"),
		httpClient:      client,
		logger:          NullLogger(),
		logCurlCommands: config.LogCurlCommands,
		requestCount:    new(int32),
	}
}

// BaseURL returns the URL of the resource collection.
func (p *Probe) BaseURL() string {
	return p.baseURL
}

// WithLogger returns a copy of the Probe that writes debug output to the specified logger.
// Each line of output is labeled with the number of the request it belongs to, counting from 1
// for every new copy.
func (p *Probe) WithLogger(logger Logger) *Probe {
	if logger == nil {
		logger = NullLogger()
	}
	p1 := *p
	p1.logger = logger
	p1.requestCount = new(int32)
	return &p1
}

// ResourceURL returns the URL of the resource with the given ID, or of the collection if the
// ID is undefined.
func (p *Probe) ResourceURL(id ldvalue.OptionalInt) string {
	if id.IsDefined() {
		return fmt.Sprintf("%s/%d", p.baseURL, id.IntValue())
	}
	return p.baseURL
}

// Do sends the request and reads the whole response. An error is returned only if the request
// could not be made or the response could not be read; any HTTP status is a valid response.
func (p *Probe) Do(r ProbeRequest) (*ProbeResponse, error) {
	url := p.ResourceURL(r.ID)

	var data []byte
	var body io.Reader
	if r.Body != nil {
		var err error
		if data, err = json.Marshal(r.Body); err != nil {
			return nil, fmt.Errorf("could not serialize request body: %w", err)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequest(r.Method, url, body)
	if err != nil {
		return nil, fmt.Errorf("could not build %s %s request: %w", r.Method, url, err)
	}
	req.Header.Set("Accept", jsonContentType)
	if data != nil {
		req.Header.Set("Content-Type", jsonContentType)
	}

	logger := PrefixLogger(p.logger, fmt.Sprintf("[request %d] ", atomic.AddInt32(p.requestCount, 1)))
	if data == nil {
		logger.Printf("Sending %s %s", r.Method, url)
	} else {
		logger.Printf("Sending %s %s with body: %s", r.Method, url, string(data))
	}
	if p.logCurlCommands {
		logger.Printf("Equivalent command: %s", CurlCommand(req, data))
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		logger.Printf("Request failed: %s", err)
		return nil, fmt.Errorf("%s %s failed: %w", r.Method, url, err)
	}
	defer func() { _ = resp.Body.Close() }()
	respData, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Printf("Reading response body failed: %s", err)
		return nil, fmt.Errorf("error reading response body from %s %s: %w", r.Method, url, err)
	}
	logger.Printf("Received status %d with body: %s", resp.StatusCode, string(respData))

	return &ProbeResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respData,
	}, nil
}

// JSON parses the response body as JSON. The body is only parsed on the first call; the
// result, including any error, is remembered for subsequent calls.
func (r *ProbeResponse) JSON() (ldvalue.Value, error) {
	if !r.isParsed {
		r.isParsed = true
		if err := json.Unmarshal(r.Body, &r.parsed); err != nil {
			r.parseErr = fmt.Errorf("malformed JSON in response body (%w): %s", err, string(r.Body))
			r.parsed = ldvalue.Null()
		}
	}
	return r.parsed, r.parseErr
}
