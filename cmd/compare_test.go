package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseShardFlag(t *testing.T) {
	cases := []struct {
		name      string
		input     string
		wantIndex int
		wantTotal int
	}{
		{name: "empty means unsharded", input: "", wantIndex: 0, wantTotal: 1},
		{name: "first of three", input: "0/3", wantIndex: 0, wantTotal: 3},
		{name: "last of three", input: "2/3", wantIndex: 2, wantTotal: 3},
		{name: "index out of range", input: "3/3", wantIndex: 0, wantTotal: 1},
		{name: "negative index", input: "-1/3", wantIndex: 0, wantTotal: 1},
		{name: "zero total", input: "0/0", wantIndex: 0, wantTotal: 1},
		{name: "garbage", input: "abc", wantIndex: 0, wantTotal: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			index, total := parseShardFlag(tc.input)

			require.Equal(t, tc.wantIndex, index)
			require.Equal(t, tc.wantTotal, total)
		})
	}
}
