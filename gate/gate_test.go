package gate_test

import (
	"sync/atomic"
	"testing"
	"time"

	"discord-rest-client/gate"
	"discord-rest-client/routes"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"
)

const baseUrl = "https://discord.com/api/v10"

func TestMatches(t *testing.T) {
	t.Parallel()

	messages := routes.Route{Path: "/channels/{channel_id}/messages", ChannelId: 7}
	cases := []struct {
		name      string
		gateRoute routes.Route
		global    bool
		candidate routes.Route
		expected  gate.Match
	}{
		{
			name:      "shared channel id on unrelated path",
			gateRoute: messages,
			candidate: routes.Route{Path: "/channels/{channel_id}/typing", ChannelId: 7},
			expected:  gate.MatchScope,
		},
		{
			name:      "shared guild id",
			gateRoute: routes.Route{Path: "/guilds/{guild_id}/emojis", GuildId: 1},
			candidate: routes.Route{Path: "/guilds/{guild_id}/members", GuildId: 1},
			expected:  gate.MatchScope,
		},
		{
			name:      "shared webhook token",
			gateRoute: routes.Route{Path: "/webhooks/{webhook_id}/{webhook_token}", WebhookId: 5, WebhookToken: "t"},
			candidate: routes.Route{Path: "/webhooks/{webhook_id}/{webhook_token}/messages", WebhookId: 9, WebhookToken: "t"},
			expected:  gate.MatchScope,
		},
		{
			name:      "scope wins over identical path",
			gateRoute: messages,
			candidate: messages,
			expected:  gate.MatchScope,
		},
		{
			name:      "identical literal path without shared scope",
			gateRoute: routes.Route{Path: "/users/@me"},
			candidate: routes.Route{Path: "/users/@me"},
			expected:  gate.MatchPath,
		},
		{
			name:      "global gate matches unrelated route",
			gateRoute: routes.Route{Path: "/users/@me"},
			global:    true,
			candidate: routes.Route{Path: "/gateway/bot"},
			expected:  gate.MatchGlobal,
		},
		{
			name:      "unset ids do not overlap",
			gateRoute: routes.Route{Path: "/users/@me"},
			candidate: routes.Route{Path: "/gateway/bot"},
			expected:  gate.MatchNone,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := gate.New(c.gateRoute, c.gateRoute.Merge(baseUrl), "bucket", c.global, clock.NewMock())
			require.Equal(t, c.global, g.Global())
			require.Equal(t, "bucket", g.Bucket())
			match := g.Matches(c.candidate, c.candidate.Merge(baseUrl))
			require.Equal(t, c.expected, match)
		})
	}
}

func TestWaitersResumeTogetherAfterReset(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	mock := clock.NewMock()
	set := gate.NewSet()
	route := routes.Route{Path: "/channels/{channel_id}/messages", ChannelId: 7}
	g := gate.New(route, route.Merge(baseUrl), "b1", false, mock)
	require.True(set.Install(g))

	resumed := int32(0)
	done := make(chan struct{})
	for i := 0; i < 5; i++ {
		go func() {
			g.Wait()
			atomic.AddInt32(&resumed, 1)
			done <- struct{}{}
		}()
	}
	g.Arm(500*time.Millisecond, func() {
		set.Remove("b1")
	})

	mock.Add(499 * time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	require.EqualValues(0, atomic.LoadInt32(&resumed))
	require.Equal(1, set.Size())

	mock.Add(2 * time.Millisecond)
	for i := 0; i < 5; i++ {
		select {
		case <-done:
		case <-time.After(time.Second):
			require.Fail("waiter did not resume after reset elapsed")
		}
	}
	require.EqualValues(5, atomic.LoadInt32(&resumed))
	require.Equal(0, set.Size())
}

func TestSetKeepsSingleGatePerBucket(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	set := gate.NewSet()
	route := routes.Route{Path: "/users/@me"}
	first := gate.New(route, route.Merge(baseUrl), "b1", false, clock.NewMock())
	second := gate.New(route, route.Merge(baseUrl), "b1", false, clock.NewMock())

	require.True(set.Install(first))
	require.False(set.Install(second))
	require.Equal(1, set.Size())

	found, ok := set.Get("b1")
	require.True(ok)
	require.Same(first, found)

	set.Remove("b1")
	_, ok = set.Get("b1")
	require.False(ok)
	require.Empty(set.Snapshot())
}
