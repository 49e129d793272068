package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Input
	}{
		{
			name: "Field text",
			text: "  Курсова робота ",
			want: Input{Kind: FieldInput, Text: "Курсова робота"},
		},
		{
			name: "Command without args",
			text: "/cancel",
			want: Input{Kind: Command, Command: "cancel", Args: []string{}, Text: "/cancel"},
		},
		{
			name: "Command with args",
			text: "/edit topic",
			want: Input{Kind: Command, Command: "edit", Args: []string{"topic"}, Text: "/edit topic"},
		},
		{
			name: "Bot suffix and case",
			text: "/START@orderdesk_bot ref42",
			want: Input{Kind: Command, Command: "start", Args: []string{"ref42"}, Text: "/START@orderdesk_bot ref42"},
		},
		{
			name: "Bare slash",
			text: "/",
			want: Input{Kind: Command, Text: "/"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text))
		})
	}
}

func TestInputArg(t *testing.T) {
	in := Classify("/edit volume now")
	assert.True(t, in.IsCommand())
	assert.Equal(t, "volume", in.Arg(0))
	assert.Equal(t, "now", in.Arg(1))
	assert.Equal(t, "", in.Arg(2))
	assert.Equal(t, "", in.Arg(-1))
}

func TestInputRest(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "Text after command", text: "/support  my order is late ", want: "my order is late"},
		{name: "Line breaks kept", text: "/feedback great\nthanks", want: "great\nthanks"},
		{name: "Bot suffix", text: "/support@orderdesk_bot help", want: "help"},
		{name: "No text", text: "/support", want: ""},
		{name: "Field input", text: "support me", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text).Rest())
		})
	}
}
