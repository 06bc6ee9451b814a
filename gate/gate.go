package gate

import (
	"time"

	"discord-rest-client/routes"

	"github.com/benbjohnson/clock"
)

type Match int

const (
	MatchNone Match = iota
	// MatchScope is advisory: the candidate shares a channel, guild or
	// webhook identifier with the gated route. Callers wait and keep
	// scanning, a request may overlap several scoped gates.
	MatchScope
	// MatchPath and MatchGlobal are authoritative for the candidate,
	// no further scanning is needed after waiting.
	MatchPath
	MatchGlobal
)

// Gate blocks requests to an exhausted rate limit bucket until the
// reset duration elapses. All metadata is bound at construction so the
// gate may be scanned concurrently while it is being armed.
type Gate struct {
	route      routes.Route
	mergedPath string
	bucket     string
	global     bool
	clk        clock.Clock
	done       chan struct{}
}

func New(route routes.Route, mergedPath string, bucket string, global bool, clk clock.Clock) *Gate {
	return &Gate{
		route:      route,
		mergedPath: mergedPath,
		bucket:     bucket,
		global:     global,
		clk:        clk,
		done:       make(chan struct{}),
	}
}

// Arm starts the reset timer. When it fires, onElapse runs first and
// only then the waiters are released, so a gate never remains visible
// in the active set after its wait has elapsed.
func (g *Gate) Arm(resetAfter time.Duration, onElapse func()) {
	timer := g.clk.Timer(resetAfter)
	go func() {
		<-timer.C
		if onElapse != nil {
			onElapse()
		}
		close(g.done)
	}()
}

// Wait suspends the caller until the armed duration elapses. It cannot
// fail, all concurrent waiters resume together.
func (g *Gate) Wait() {
	<-g.done
}

func (g *Gate) Bucket() string {
	return g.bucket
}

func (g *Gate) Global() bool {
	return g.global
}

// Matches reports why the candidate route must wait on this gate, in
// priority order: shared scope first, then exact literal path, then the
// global flag. The scope check is deliberately broad, a gate on a
// specific channel also blocks unrelated paths that carry the same
// channel id.
func (g *Gate) Matches(candidate routes.Route, mergedPath string) Match {
	switch {
	case sharedId(g.route.ChannelId, candidate.ChannelId),
		sharedId(g.route.GuildId, candidate.GuildId),
		sharedId(g.route.WebhookId, candidate.WebhookId),
		sharedToken(g.route.WebhookToken, candidate.WebhookToken):
		return MatchScope
	case g.mergedPath == mergedPath:
		return MatchPath
	case g.global:
		return MatchGlobal
	default:
		return MatchNone
	}
}

func sharedId(a int64, b int64) bool {
	return a != 0 && a == b
}

func sharedToken(a string, b string) bool {
	return a != "" && a == b
}
