package facebook

// Config holds the Facebook app settings and endpoint locations.
type Config struct {
	AppID       string // app id registered with Facebook
	AppSecret   string // app secret for the code exchange
	CallbackURL string // must match the app's configured redirect URI
	DialogURL   string // OAuth dialog endpoint; defaulted when empty
	GraphURL    string // Graph API base; overridden in tests
}

const (
	defaultDialogURL = "https://www.facebook.com/v12.0/dialog/oauth"
	defaultGraphURL  = "https://graph.facebook.com/v12.0"
)

func (c Config) withDefaults() Config {
	if c.DialogURL == "" {
		c.DialogURL = defaultDialogURL
	}
	if c.GraphURL == "" {
		c.GraphURL = defaultGraphURL
	}
	return c
}
