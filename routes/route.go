package routes

import (
	"strconv"
	"strings"
)

// Route describes a logical endpoint: a path template plus the
// identifiers used both to build the literal request path and to decide
// which rate limit gates apply to it. A zero id or an empty token means
// the identifier is not set.
type Route struct {
	Path         string
	GuildId      int64
	ChannelId    int64
	WebhookId    int64
	WebhookToken string
}

// Merge substitutes the route identifiers into the path template and
// prepends baseUrl. Unset identifiers render as empty strings, the
// caller only references placeholders it has set.
func (r Route) Merge(baseUrl string) string {
	replacer := strings.NewReplacer(
		"{guild_id}", formatSnowflake(r.GuildId),
		"{channel_id}", formatSnowflake(r.ChannelId),
		"{webhook_id}", formatSnowflake(r.WebhookId),
		"{webhook_token}", r.WebhookToken,
	)
	return baseUrl + replacer.Replace(r.Path)
}

func formatSnowflake(id int64) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(id, 10)
}
