package utils

import (
	"fmt"
	"regexp"
)

var youtubeIDRe = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/)([^&\n?#]+)`)

// ExtractVideoID достаёт id ролика из ссылки youtube.com/watch?v= или youtu.be/.
func ExtractVideoID(url string) (string, bool) {
	m := youtubeIDRe.FindStringSubmatch(url)
	if len(m) < 2 || m[1] == "" {
		return "", false
	}
	return m[1], true
}

func YouTubeThumbnail(videoID string) string {
	return fmt.Sprintf("https://img.youtube.com/vi/%s/maxresdefault.jpg", videoID)
}
