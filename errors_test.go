package snap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorMessagesNameTheirKind(t *testing.T) {
	cases := []struct {
		err  *Error
		want string
	}{
		{&Error{Kind: KindTooBig, Given: 10, Max: 5}, "too large"},
		{&Error{Kind: KindBufferTooSmall, Given: 1, Min: 5}, "too small"},
		{newError(KindEmpty), "empty"},
		{newError(KindHeader), "invalid header"},
		{&Error{Kind: KindHeaderMismatch, ExpectedLen: 5, GotLen: 3}, "decompressed length"},
		{&Error{Kind: KindOffset, Offset: 9, DstPos: 2}, "invalid offset"},
		{&Error{Kind: KindChecksum, ExpectedSum: 1, GotSum: 2}, "checksum mismatch"},
	}
	for _, c := range cases {
		require.Contains(t, strings.ToLower(c.err.Error()), c.want)
	}
}

func TestErrorSatisfiesErrorInterface(t *testing.T) {
	var err error = newError(KindEmpty)
	require.NotEmpty(t, err.Error())
}
