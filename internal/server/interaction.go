package server

// Discord interaction wire constants.
const (
	interactionPing    = 1
	interactionCommand = 2

	responsePong           = 1
	responseChannelMessage = 4
)

// Interaction is the subset of a Discord interaction payload the bot reads.
// Member is set for interactions invoked inside a guild, User for DMs.
type Interaction struct {
	Type   int             `json:"type"`
	Data   InteractionData `json:"data"`
	Member *Member         `json:"member"`
	User   *User           `json:"user"`
}

// InteractionData carries the invoked command name and its options.
type InteractionData struct {
	Name    string          `json:"name"`
	Options []CommandOption `json:"options"`
}

// CommandOption is one named argument of a slash command. Values arrive as
// JSON strings or numbers depending on the registered option type.
type CommandOption struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// Member identifies the guild member who invoked an interaction.
type Member struct {
	User User `json:"user"`
}

// User identifies a Discord user.
type User struct {
	ID       int64  `json:"id,string"`
	Username string `json:"username"`
}

// actor returns the username of whoever invoked the interaction, for audit
// log reasons.
func (i *Interaction) actor() string {
	if i.Member != nil {
		return i.Member.User.Username
	}
	if i.User != nil {
		return i.User.Username
	}
	return "unknown"
}

func (d InteractionData) stringOption(name string) string {
	for _, o := range d.Options {
		if o.Name == name {
			if s, ok := o.Value.(string); ok {
				return s
			}
		}
	}
	return ""
}

func (d InteractionData) intOption(name string, fallback int) int {
	for _, o := range d.Options {
		if o.Name == name {
			if f, ok := o.Value.(float64); ok {
				return int(f)
			}
		}
	}
	return fallback
}

// interactionResponse is the bot's reply to an interaction.
type interactionResponse struct {
	Type int                      `json:"type"`
	Data *interactionResponseData `json:"data,omitempty"`
}

type interactionResponseData struct {
	Content string `json:"content"`
}
