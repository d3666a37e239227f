package redis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "stagelink:v1:artist:7:summary", KeyArtistSummary(7))
	assert.Equal(t, "stagelink:v1:artist:7:calendar", KeyArtistCalendar(7))
	assert.Equal(t, "stagelink:v1:artists:band:berlin", KeyArtistList("band", "berlin"))
	assert.Equal(t, "stagelink:v1:rl:booking:org:3", KeyRateLimit("booking", "org:3"))
	assert.Equal(t, "stagelink:v1:notifications", ChannelNotifications())
}
