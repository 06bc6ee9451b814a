package httperrors_test

import (
	"net/http"
	"testing"

	"discord-rest-client/httperrors"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestFromStatusCode(t *testing.T) {
	t.Parallel()

	cases := []struct {
		statusCode int
		expected   httperrors.Kind
	}{
		{statusCode: http.StatusUnauthorized, expected: httperrors.KindAuthentication},
		{statusCode: http.StatusForbidden, expected: httperrors.KindAuthorization},
		{statusCode: http.StatusNotFound, expected: httperrors.KindNotFound},
		{statusCode: http.StatusBadRequest, expected: httperrors.KindGeneric},
		{statusCode: http.StatusInternalServerError, expected: httperrors.KindGeneric},
	}
	for _, c := range cases {
		err := httperrors.FromStatusCode(c.statusCode, "/users/@me")
		require.Equal(t, c.expected, err.Kind())
		require.Equal(t, c.statusCode, err.StatusCode())
	}
}

func TestKindOfWrappedError(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	err := httperrors.FromStatusCode(http.StatusNotFound, "/users/@me")
	wrapped := errors.WithMessage(err, "get me")

	kind, ok := httperrors.KindOf(wrapped)
	require.True(ok)
	require.Equal(httperrors.KindNotFound, kind)

	_, ok = httperrors.KindOf(errors.New("connection refused"))
	require.False(ok)
}

func TestRetriesExhausted(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	err := httperrors.RetriesExhausted(5, "/users/@me")
	require.Equal(httperrors.KindRetriesExhausted, err.Kind())
	require.Contains(err.Error(), "5 attempts")
}
