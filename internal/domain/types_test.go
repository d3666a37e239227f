package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArtistProfile_DisplayName(t *testing.T) {
	tests := []struct {
		name    string
		profile ArtistProfile
		want    string
	}{
		{
			name:    "named group",
			profile: ArtistProfile{IsGroup: true, GroupName: "The Jazz Trio", ContactName: "Dana"},
			want:    "The Jazz Trio",
		},
		{
			name:    "group without a name falls back to contact",
			profile: ArtistProfile{IsGroup: true, ContactName: "Dana"},
			want:    "Dana",
		},
		{
			name:    "solo act",
			profile: ArtistProfile{IsGroup: false, GroupName: "ignored", ContactName: "Dana"},
			want:    "Dana",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.profile.DisplayName())
		})
	}
}

func TestOrganizerProfile_DisplayName(t *testing.T) {
	assert.Equal(t, "Acme Events", OrganizerProfile{FullName: "Acme Events"}.DisplayName())
}
