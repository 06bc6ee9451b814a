package domain

type Emoji struct {
	Id            string   `json:"id"`
	Name          string   `json:"name"`
	Roles         []string `json:"roles,omitempty"`
	User          *User    `json:"user,omitempty"`
	RequireColons bool     `json:"require_colons,omitempty"`
	Managed       bool     `json:"managed,omitempty"`
	Animated      bool     `json:"animated,omitempty"`
	Available     bool     `json:"available,omitempty"`
}

type CreateEmoji struct {
	Name string `json:"name"`
	// Image is a base64 encoded data URI.
	Image string   `json:"image"`
	Roles []string `json:"roles,omitempty"`
}

type EditEmoji struct {
	Name  string   `json:"name,omitempty"`
	Roles []string `json:"roles,omitempty"`
}
