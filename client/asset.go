package client

import (
	"context"
	"io"
	"net/http"

	"discord-rest-client/httperrors"

	"github.com/pkg/errors"
)

// GetCdnAsset fetches raw bytes from the CDN namespace. Assets live
// outside bucket tracking, so the fetch never consults the active gate
// set.
func (c *Client) GetCdnAsset(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WithMessagef(err, "build request GET %s", url)
	}

	resp, err := c.cli.Do(req)
	if err != nil {
		return nil, errors.WithMessagef(err, "do request GET %s", url)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusForbidden:
		return nil, httperrors.New(httperrors.KindAuthorization, resp.StatusCode, url, errors.New("asset access forbidden"))
	case resp.StatusCode == http.StatusNotFound:
		return nil, httperrors.New(httperrors.KindNotFound, resp.StatusCode, url, errors.New("asset not found"))
	case resp.StatusCode >= http.StatusBadRequest:
		return nil, httperrors.New(httperrors.KindGeneric, resp.StatusCode, url,
			errors.Errorf("asset fetch failed with status %d", resp.StatusCode))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WithMessage(err, "read asset body")
	}
	return data, nil
}
