package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Segment
	}{
		{
			name: "bold in the middle",
			in:   "a **b** c",
			want: []Segment{{Text: "a "}, {Text: "b", Bold: true}, {Text: " c"}},
		},
		{
			name: "malformed marker pair stays plain",
			in:   "**x*",
			want: []Segment{{Text: "**x*"}},
		},
		{
			name: "several spans",
			in:   "**BZ** e **TI**",
			want: []Segment{{Text: "BZ", Bold: true}, {Text: " e "}, {Text: "TI", Bold: true}},
		},
		{
			name: "no markup",
			in:   "plain text",
			want: []Segment{{Text: "plain text"}},
		},
		{
			name: "empty",
			in:   "",
			want: nil,
		},
		{
			name: "span does not cross lines",
			in:   "**a\nb**",
			want: []Segment{{Text: "**a\nb**"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.in))
		})
	}
}

func TestRender(t *testing.T) {
	assert.Equal(t, "<span>a <strong>b</strong> c</span>", string(Render("a **b** c")))
	assert.Equal(t, "<span>**x*</span>", string(Render("**x*")))
	assert.Equal(t, "", string(Render("")))
}

func TestRenderEscapesMarkup(t *testing.T) {
	out := string(Render(`<script>alert(1)</script> **<b>oi</b>**`))
	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "<b>")
	assert.Contains(t, out, "<strong>")
}
