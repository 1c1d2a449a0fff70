package print

import (
	"bytes"
	"testing"

	"github.com/maxsalles/mx/internal/value"
	"github.com/maxsalles/mx/modules/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	testCases := []struct {
		name     string
		line     report.Line
		expected string
	}{
		{
			name: "sorted options",
			line: report.Line{
				File:    "index.html",
				Element: "html/body/button",
				Aspect:  "tooltip",
				Options: value.Map(map[string]value.Value{
					"text":  value.String("Save"),
					"delay": value.Number(200),
					"tags":  value.List(value.Bool(true), value.Unresolved()),
				}),
			},
			expected: "index.html html/body/button tooltip\n" +
				"      delay = 200\n" +
				"      tags = [true, undefined]\n" +
				"      text = \"Save\"\n",
		},
		{
			name:     "no options",
			line:     report.Line{File: "a.html", Element: "html", Aspect: "x", Options: value.EmptyMap()},
			expected: "a.html html x\n      (no options)\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			require.NoError(t, NewEncoder(out).Encode(tc.line))
			assert.Equal(t, tc.expected, out.String())
		})
	}
}
