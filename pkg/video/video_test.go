package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Embed
		ok   bool
	}{
		{
			name: "youtube watch link",
			raw:  "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=10s",
			want: Embed{Provider: ProviderYouTube, ID: "dQw4w9WgXcQ", URL: "https://www.youtube.com/embed/dQw4w9WgXcQ"},
			ok:   true,
		},
		{
			name: "youtube short link",
			raw:  "https://youtu.be/dQw4w9WgXcQ",
			want: Embed{Provider: ProviderYouTube, ID: "dQw4w9WgXcQ", URL: "https://www.youtube.com/embed/dQw4w9WgXcQ"},
			ok:   true,
		},
		{
			name: "youtube embed link",
			raw:  "https://www.youtube.com/embed/dQw4w9WgXcQ",
			want: Embed{Provider: ProviderYouTube, ID: "dQw4w9WgXcQ", URL: "https://www.youtube.com/embed/dQw4w9WgXcQ"},
			ok:   true,
		},
		{
			name: "vimeo link",
			raw:  "https://vimeo.com/76979871",
			want: Embed{Provider: ProviderVimeo, ID: "76979871", URL: "https://player.vimeo.com/video/76979871?badge=0&autopause=0"},
			ok:   true,
		},
		{
			name: "bare numeric id is vimeo",
			raw:  " 76979871 ",
			want: Embed{Provider: ProviderVimeo, ID: "76979871", URL: "https://player.vimeo.com/video/76979871?badge=0&autopause=0"},
			ok:   true,
		},
		{
			name: "other http url passes through",
			raw:  "https://cdn.example.com/intro.mp4",
			want: Embed{Provider: ProviderDirect, URL: "https://cdn.example.com/intro.mp4"},
			ok:   true,
		},
		{
			name: "empty",
			raw:  "   ",
			ok:   false,
		},
		{
			name: "unrecognised text",
			raw:  "my video",
			ok:   false,
		},
		{
			name: "youtube id too short is not youtube",
			raw:  "youtu.be/abc",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Normalize(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
