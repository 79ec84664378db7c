package fingerprint

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindInvalidAudio:      400,
		KindUnsupportedFormat: 415,
		KindDecodingError:     400,
		KindAnalysisError:     500,
		KindResourceExhausted: 503,
		KindCancelled:         499,
		KindInternal:          500,
	}
	for kind, status := range cases {
		require.Equal(t, status, kind.HTTPStatus())
	}
}

func TestWrapErrorUnwrap(t *testing.T) {
	inner := errors.New("inner")
	err := wrapError(KindAnalysisError, "outer", inner)
	require.ErrorIs(t, err, inner)
	require.Contains(t, err.Error(), "outer")
	require.Contains(t, err.Error(), "inner")
}

func TestKindOfDefaultsToInternal(t *testing.T) {
	require.Equal(t, KindInternal, KindOf(errors.New("plain")))
	require.Equal(t, KindInvalidAudio, KindOf(newError(KindInvalidAudio, "bad")))
}
