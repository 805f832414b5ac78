package pathnorm

import (
	"errors"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "file uri with host and percent encoding",
			in:   "file://localhost/Users/eve/Music/Caf%C3%A9%20Tacvba/Eres.mp3",
			want: "/Users/eve/Music/Café Tacvba/Eres.mp3",
		},
		{
			name: "file uri without host",
			in:   "file:///music/artist/track.flac",
			want: "/music/artist/track.flac",
		},
		{
			name: "plain path untouched",
			in:   "/music/artist/track.flac",
			want: "/music/artist/track.flac",
		},
		{
			name: "plain path with percent encoding",
			in:   "/music/A%20Tribe/track.mp3",
			want: "/music/A Tribe/track.mp3",
		},
		{
			name: "literal percent survives",
			in:   "/music/100% Sugar/track.mp3",
			want: "/music/100% Sugar/track.mp3",
		},
		{
			name: "html entity",
			in:   "/music/Simon &#38; Garfunkel/Sound of Silence.mp3",
			want: "/music/Simon & Garfunkel/Sound of Silence.mp3",
		},
		{
			name: "decomposed unicode recomposes",
			in:   "/music/Cafe\u0301/track.mp3",
			want: "/music/Caf\u00e9/track.mp3",
		},
		{
			name: "windows drive artifact",
			in:   "file://localhost/C:/Music/song.mp3",
			want: "C:/Music/song.mp3",
		},
		{
			name: "backslashes become slashes",
			in:   `C:\Music\Oasis\Wonderwall.mp3`,
			want: "C:/Music/Oasis/Wonderwall.mp3",
		},
		{
			name: "surrounding whitespace trimmed",
			in:   "  /music/track.mp3\n",
			want: "/music/track.mp3",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Normalize(tc.in)
			if err != nil {
				t.Fatalf("Normalize(%q): %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestNormalizeEmpty(t *testing.T) {
	for _, in := range []string{"", "   ", "\t\n", "://"} {
		if _, err := Normalize(in); !errors.Is(err, ErrEmptyLocation) {
			t.Errorf("Normalize(%q) error = %v, want ErrEmptyLocation", in, err)
		}
	}
}

func TestNormalizeIsStable(t *testing.T) {
	// Already-normal output passes through unchanged when fed back in.
	first, err := Normalize("file://localhost/m%C3%BAsica/Beyonc\u0065\u0301/Halo.mp3")
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}
	second, err := Normalize(first)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if first != second {
		t.Errorf("normalization not stable: %q then %q", first, second)
	}
}
