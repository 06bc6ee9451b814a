package client

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"discord-rest-client/conf"
	"discord-rest-client/gate"
	"discord-rest-client/httperrors"
	"discord-rest-client/routes"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"github.com/txix-open/isp-kit/json"
	"github.com/txix-open/isp-kit/log"
	"github.com/txix-open/isp-kit/validator"
	"golang.org/x/time/rate"
)

const (
	bucketHeader     = "X-RateLimit-Bucket"
	resetAfterHeader = "X-RateLimit-Reset-After"
	scopeHeader      = "X-RateLimit-Scope"
	globalScope      = "global"

	userAgent = "DiscordBot (discord-rest-client, 1.0.0)"
)

// Client dispatches requests against the API and serializes them
// behind rate limit gates discovered from 429 responses. It is the
// sole owner of the active gate set.
type Client struct {
	cli        *http.Client
	logger     log.Logger
	headers    map[string]string
	baseUrl    string
	maxRetries int
	gates      *gate.Set
	limiter    *rate.Limiter
	clock      clock.Clock
}

func New(config conf.Client, logger log.Logger) (*Client, error) {
	return NewWithClock(config, logger, clock.New())
}

// NewWithClock builds the client on an injected clock, gate resets in
// tests run on clock.NewMock.
func NewWithClock(config conf.Client, logger log.Logger, clk clock.Clock) (*Client, error) {
	err := validator.Default.ValidateToError(config)
	if err != nil {
		return nil, errors.WithMessage(err, "validate config")
	}

	globalRate := config.GetGlobalRequestsPerSecond()
	return &Client{
		cli: &http.Client{
			Timeout: config.GetRequestTimeout(),
		},
		logger: logger,
		headers: map[string]string{
			"Authorization": "Bot " + config.Token,
			"User-Agent":    userAgent,
			"Content-Type":  "application/json",
		},
		baseUrl:    config.GetBaseUrl(),
		maxRetries: config.GetMaxRetries(),
		gates:      gate.NewSet(),
		limiter:    rate.NewLimiter(rate.Limit(globalRate), globalRate),
		clock:      clk,
	}, nil
}

// Request performs method against the merged route url, absorbing rate
// limited responses into cooperative waits on the active gate set.
// A 429 never surfaces to the caller, any other status of 400 or above
// terminates immediately with a typed failure from httperrors.
func (c *Client) Request(ctx context.Context, method string, route routes.Route, body any) (*Payload, error) {
	endpoint := route.Merge(c.baseUrl)

	var requestBody []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, errors.WithMessage(err, "marshal request body")
		}
		requestBody = data
	}

	for attempt := 0; attempt < c.maxRetries; attempt++ {
	scan:
		for _, g := range c.gates.Snapshot() {
			switch g.Matches(route, endpoint) {
			case gate.MatchScope:
				c.logger.Debug(ctx, "blocking request prematurely",
					log.String("bucket", g.Bucket()),
					log.String("endpoint", endpoint),
				)
				g.Wait()
			case gate.MatchPath:
				c.logger.Debug(ctx, "blocking request to own bucket",
					log.String("bucket", g.Bucket()),
					log.String("endpoint", endpoint),
				)
				g.Wait()
				break scan
			case gate.MatchGlobal:
				c.logger.Debug(ctx, "blocking request due to global rate limit",
					log.String("endpoint", endpoint),
				)
				g.Wait()
				break scan
			case gate.MatchNone:
			}
		}

		resp, err := c.send(ctx, method, endpoint, requestBody)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			c.absorbRateLimit(ctx, resp, route, endpoint)
			continue
		}

		if resp.StatusCode >= http.StatusBadRequest {
			drain(resp)
			return nil, httperrors.FromStatusCode(resp.StatusCode, endpoint)
		}

		payload, err := readPayload(resp)
		if err != nil {
			return nil, err
		}
		return payload, nil
	}

	return nil, httperrors.RetriesExhausted(c.maxRetries, endpoint)
}

// ActiveGates reports how many buckets are currently exhausted.
func (c *Client) ActiveGates() int {
	return c.gates.Size()
}

func (c *Client) send(ctx context.Context, method string, endpoint string, body []byte) (*http.Response, error) {
	err := c.limiter.Wait(ctx)
	if err != nil {
		return nil, errors.WithMessage(err, "wait for global request rate")
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, errors.WithMessagef(err, "build request %s %s", method, endpoint)
	}
	for name, value := range c.headers {
		req.Header.Set(name, value)
	}

	resp, err := c.cli.Do(req)
	if err != nil {
		return nil, errors.WithMessagef(err, "do request %s %s", method, endpoint)
	}
	return resp, nil
}

// absorbRateLimit converts a 429 into a wait on the bucket's gate. A
// response without a readable bucket id only consumes the attempt. The
// gate removes itself from the active set the moment its reset
// elapses, before any waiter resumes.
func (c *Client) absorbRateLimit(ctx context.Context, resp *http.Response, route routes.Route, endpoint string) {
	defer drain(resp)

	bucket := resp.Header.Get(bucketHeader)
	if bucket == "" {
		c.logger.Debug(ctx, "rate limited without bucket, retrying blindly",
			log.String("endpoint", endpoint),
		)
		return
	}

	existing, ok := c.gates.Get(bucket)
	if ok {
		existing.Wait()
		return
	}

	resetAfter := parseResetAfter(resp.Header.Get(resetAfterHeader))
	global := resp.Header.Get(scopeHeader) == globalScope
	installed := gate.New(route, endpoint, bucket, global, c.clock)
	if !c.gates.Install(installed) {
		// lost the install race, reuse the winner
		winner, ok := c.gates.Get(bucket)
		if ok {
			winner.Wait()
		}
		return
	}

	c.logger.Debug(ctx, "blocking requests after resource rate limit",
		log.String("bucket", bucket),
		log.String("endpoint", endpoint),
		log.String("resetAfter", resetAfter.String()),
	)
	installed.Arm(resetAfter, func() {
		c.gates.Remove(bucket)
	})
	installed.Wait()
}

func parseResetAfter(value string) time.Duration {
	seconds, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return time.Duration(seconds * float64(time.Second))
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
