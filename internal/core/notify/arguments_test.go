package notify_test

import (
	"testing"

	"github.com/hay-kot/desknotify/internal/core/notify"
	"github.com/stretchr/testify/assert"
)

func TestArguments_Encode(t *testing.T) {
	args := notify.Arguments{
		notify.ArgURI:      "https://example.com/?a=1;b=2",
		notify.ArgCategory: "info",
	}

	assert.Equal(t, "category=info;uri=https://example.com/?a%3D1%3Bb%3D2", args.Encode())
	assert.Equal(t, "", notify.Arguments{}.Encode())
}

func TestParseArguments(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want notify.Arguments
	}{
		{name: "empty", in: "", want: notify.Arguments{}},
		{name: "pairs", in: "category=info;entrance=tray", want: notify.Arguments{"category": "info", "entrance": "tray"}},
		{name: "key without value", in: "flag;category=info", want: notify.Arguments{"flag": "", "category": "info"}},
		{name: "escaped", in: "uri=a%3Db%3Bc%2525", want: notify.Arguments{"uri": "a=b;c%25"}},
		{name: "trailing separator", in: "category=info;", want: notify.Arguments{"category": "info"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, notify.ParseArguments(tt.in))
		})
	}
}

func TestArguments_EncodeParse(t *testing.T) {
	args := notify.Arguments{"k=1": "v;%2", notify.ArgEntrance: "main"}
	assert.Equal(t, args, notify.ParseArguments(args.Encode()))
}
