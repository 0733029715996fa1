package utils

import "testing"

func TestExtractVideoID(t *testing.T) {
	cases := []struct {
		url  string
		id   string
		isOK bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://youtube.com/watch?v=abc123&t=42s", "abc123", true},
		{"https://youtu.be/xyz789?si=share", "xyz789", true},
		{"https://vimeo.com/123456", "", false},
		{"https://www.youtube.com/watch?v=", "", false},
	}
	for _, c := range cases {
		id, ok := ExtractVideoID(c.url)
		if id != c.id || ok != c.isOK {
			t.Errorf("ExtractVideoID(%q) = (%q, %v), ожидалось (%q, %v)", c.url, id, ok, c.id, c.isOK)
		}
	}
}

func TestYouTubeThumbnail(t *testing.T) {
	want := "https://img.youtube.com/vi/abc/maxresdefault.jpg"
	if got := YouTubeThumbnail("abc"); got != want {
		t.Errorf("YouTubeThumbnail = %q", got)
	}
}
