package mailer

const (
	// DefaultTemplateName is used when no template name is provided.
	DefaultTemplateName = "template"

	// DefaultContentName is used when no content document name is provided.
	DefaultContentName = "content"

	// DefaultFallbackDomain is substituted for {{domain}} in templates
	// when the value set carries no domain.
	DefaultFallbackDomain = "https://example.com"
)

// Config holds mailer configuration.
// Embed this in your app config for env parsing with caarlos0/env.
//
// GlobalDomain switches body formatting from replacing only the first
// {{domain}} per line to replacing all of them. It is off by default.
type Config struct {
	TemplateName   string      `env:"MAILER_TEMPLATE_NAME" envDefault:"template"`
	ContentName    string      `env:"MAILER_CONTENT_NAME" envDefault:"content"`
	FallbackDomain string      `env:"MAILER_FALLBACK_DOMAIN" envDefault:"https://example.com"`
	SenderEmail    string      `env:"MAILER_SENDER_EMAIL"`
	SenderName     string      `env:"MAILER_SENDER_NAME"`
	ValuePolicy    ValuePolicy `env:"MAILER_VALUE_POLICY" envDefault:"none"`
	GlobalDomain   bool        `env:"MAILER_GLOBAL_DOMAIN" envDefault:"false"`
}

func (c Config) withDefaults() Config {
	if c.TemplateName == "" {
		c.TemplateName = DefaultTemplateName
	}
	if c.ContentName == "" {
		c.ContentName = DefaultContentName
	}
	if c.FallbackDomain == "" {
		c.FallbackDomain = DefaultFallbackDomain
	}
	if c.ValuePolicy == "" {
		c.ValuePolicy = PolicyNone
	}
	return c
}

// DefaultSender returns the configured default sender address, if any.
func (c Config) DefaultSender() (Address, bool) {
	if c.SenderEmail == "" {
		return Address{}, false
	}
	return Address{Name: c.SenderName, Email: c.SenderEmail}, true
}
