package client

import (
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/txix-open/isp-kit/json"
)

// Payload is a successful response body, decoded as JSON or read as
// text depending on the response content type.
type Payload struct {
	statusCode  int
	contentType string
	body        []byte
}

func readPayload(resp *http.Response) (*Payload, error) {
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WithMessage(err, "read response body")
	}
	return &Payload{
		statusCode:  resp.StatusCode,
		contentType: resp.Header.Get("Content-Type"),
		body:        body,
	}, nil
}

func (p *Payload) StatusCode() int {
	return p.statusCode
}

func (p *Payload) IsJson() bool {
	return strings.Contains(p.contentType, "application/json")
}

func (p *Payload) Json(value any) error {
	if !p.IsJson() {
		return errors.Errorf("unexpected content type '%s'", p.contentType)
	}
	err := json.Unmarshal(p.body, value)
	if err != nil {
		return errors.WithMessage(err, "unmarshal response body")
	}
	return nil
}

func (p *Payload) Text() string {
	return string(p.body)
}

func (p *Payload) Bytes() []byte {
	return p.body
}
