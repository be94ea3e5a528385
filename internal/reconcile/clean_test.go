package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanScrapedName(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "plain name passes through",
			raw:  "Igor Shesterkin",
			want: "Igor Shesterkin",
		},
		{
			name: "whitespace collapsed",
			raw:  "  Igor   Shesterkin\n",
			want: "Igor Shesterkin",
		},
		{
			name: "serialized dict keeps values only",
			raw:  "{'name': 'Igor Shesterkin', 'status': 'Confirmed'}",
			want: "Igor Shesterkin Confirmed",
		},
		{
			name: "split name fields joined with single space",
			raw:  "{'first': 'Igor', 'last': 'Shesterkin'}",
			want: "Igor Shesterkin",
		},
		{
			name: "double quoted wrapper",
			raw:  `{"name": "Jeremy Swayman"}`,
			want: "Jeremy Swayman",
		},
		{
			name: "numeric fragments dropped",
			raw:  "{'name': 'Juuse Saros', 'rank': '12'}",
			want: "Juuse Saros",
		},
		{
			name: "key value fragment without braces",
			raw:  "'name': 'Linus Ullmark'",
			want: "Linus Ullmark",
		},
		{
			name: "empty input",
			raw:  "",
			want: "",
		},
		{
			name: "whitespace only",
			raw:  "   ",
			want: "",
		},
		{
			name: "hyphenated name untouched",
			raw:  "Marc-Andre Fleury",
			want: "Marc-Andre Fleury",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanScrapedName(tt.raw))
		})
	}
}

func TestCleanScrapedNameIsPure(t *testing.T) {
	raw := "{'name': 'Igor Shesterkin'}"
	first := CleanScrapedName(raw)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, CleanScrapedName(raw))
	}
}
