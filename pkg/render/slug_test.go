package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hi":            "hi",
		"Hello World":   "hello-world",
		"Hello_World":   "hello-world",
		"Café au lait":  "cafe-au-lait",
		"A  B":          "a-b",
		" trimmed ":     "trimmed",
		"Good Morning!": "good-morning",
		"":              "",
		"!!!":           "",
		"おはよう":          "おはよう",
	}
	for input, want := range cases {
		assert.Equal(t, want, Slugify(input), "input %q", input)
	}
}

func TestSlugifyCollapsesDashRuns(t *testing.T) {
	assert.Equal(t, "a-b", Slugify("a - _ b"))
}
