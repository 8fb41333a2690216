package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Open daily.", "Open daily."},
		{"empty", "", ""},
		{"markup", "<p>Join a <strong>ranger</strong> for a walk.</p><p>Meet at the flagpole.</p>", "Join a ranger for a walk.\nMeet at the flagpole."},
		{"entities", "Rock &amp; Roll &quot;Tour&quot;", `Rock & Roll "Tour"`},
		{"line breaks", "Line one<br/>Line two", "Line one\nLine two"},
		{"control characters", "Road\x1b[31m closed\x00", "Road[31m closed"},
		{"whitespace", "  lots   of \t space \n\n\n next ", "lots of space\nnext"},
		{"carriage returns", "a\r\nb", "a\nb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cleanText(tt.in))
		})
	}
}
