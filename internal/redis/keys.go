package redis

import "fmt"

const ns = "stagelink:v1"

func KeyArtistSummary(artistID int64) string {
	return fmt.Sprintf("%s:artist:%d:summary", ns, artistID)
}

func KeyArtistCalendar(artistID int64) string {
	return fmt.Sprintf("%s:artist:%d:calendar", ns, artistID)
}

func KeyArtistList(category, location string) string {
	return fmt.Sprintf("%s:artists:%s:%s", ns, category, location)
}

func KeyRateLimit(scope, id string) string {
	return fmt.Sprintf("%s:rl:%s:%s", ns, scope, id)
}

func ChannelNotifications() string {
	return ns + ":notifications"
}
