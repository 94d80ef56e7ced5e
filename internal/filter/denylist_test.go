package filter

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadEntries(t *testing.T) {
	input := strings.Join([]string{
		"# a full-line comment",
		"ADS.Example.com   # trailing comment",
		"  tracker.net  ",
		"",
		"doubleclick.net",
		"   # nothing but a comment",
	}, "\n")

	entries, err := ReadEntries(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"ads.example.com", "tracker.net", "doubleclick.net"}, entries)
}

func TestReadEntries_empty(t *testing.T) {
	entries, err := ReadEntries(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestNewDenylist_noFalseNegatives(t *testing.T) {
	entries := make([]string, 0, 1000)
	for i := 0; i < 1000; i++ {
		entries = append(entries, fmt.Sprintf("host-%d.example.org", i))
	}

	d, err := NewDenylist(entries)
	require.NoError(t, err)

	// Every inserted entry must always be found.
	for _, e := range entries {
		assert.True(t, d.Contains(e), "entry %q not found", e)
	}
}

func TestDenylist_Match(t *testing.T) {
	d, err := NewDenylist([]string{"ads.example.com", "tracker.net", "test"})
	require.NoError(t, err)

	testCases := []struct {
		name   string
		domain string
		want   bool
	}{{
		name:   "exact",
		domain: "ads.example.com",
		want:   true,
	}, {
		name:   "subdomain",
		domain: "images.ads.example.com",
		want:   true,
	}, {
		name:   "deep subdomain",
		domain: "a.b.images.ads.example.com",
		want:   true,
	}, {
		name:   "parent not listed",
		domain: "example.com",
		want:   false,
	}, {
		name:   "tld entry",
		domain: "anything.test",
		want:   true,
	}, {
		name:   "other entry exact",
		domain: "tracker.net",
		want:   true,
	}, {
		name:   "unrelated",
		domain: "images.example.net",
		want:   false,
	}, {
		name:   "empty",
		domain: "",
		want:   false,
	}}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, d.Match(tc.domain))
		})
	}
}

func TestNewDenylist_emptyEntries(t *testing.T) {
	d, err := NewDenylist(nil)
	require.NoError(t, err)

	assert.False(t, d.Match("example.com"))
}

func TestMatchWildcards(t *testing.T) {
	rules := []string{"*.example.com", "exact.org"}

	assert.True(t, MatchWildcards("ads.example.com", rules))
	assert.True(t, MatchWildcards("exact.org", rules))
	assert.False(t, MatchWildcards("example.net", rules))
	assert.False(t, MatchWildcards("ads.example.com", nil))
}
