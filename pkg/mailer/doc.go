// Package mailer composes transactional emails from keyed content documents
// and HTML templates, and sends them through pluggable providers.
//
// # Architecture
//
//   - Source: reads named documents (fs.FS, S3 via pkg/storage, Redis via pkg/redis)
//   - TemplateRepository / ContentRepository: load templates and content entries
//   - BodyFormatter: turns a multi-line body into paragraph HTML
//   - Composer: merges a content entry into a template
//   - Sender: interface implemented by providers (resend, postmark, brevo, devsender)
//   - Mailer: validates addresses, composes, and hands the result to a Sender
//
// # Documents
//
// A content document is a JSON object keyed by content key:
//
//	{
//	  "welcome": {
//	    "subject": "Welcome aboard",
//	    "body": "Hi {{values.name}}!\nYour profile: {{domain}}/u/{{values.username}}",
//	    "callToAction": {"label": "Get started", "url": "{{domain}}/start"}
//	  }
//	}
//
// A template is raw HTML with {{title}}, {{domain}}, {{body}}, {{buttonURL}}
// and {{buttonLabel}} tokens. Any other {{word}} token is left as is.
//
// # Substitution rules
//
// Body lines resolve {{values.<name>}} from the value set, blanking names that
// are missing. Only the first {{domain}} per line is replaced unless
// Config.GlobalDomain is set. Template tokens are resolved by scanning the
// template, so unknown tokens survive. Values are inserted without escaping;
// set Config.ValuePolicy to "escape" or "strip" for untrusted values.
//
// # Usage
//
//	composer := mailer.NewComposerFromSources(
//		mailer.NewFSSource(assets, "templates"),
//		mailer.NewFSSource(assets, "content"),
//		mailer.Config{},
//	)
//
//	sender, err := resend.New(resend.Config{APIKey: key})
//	if err != nil {
//		return err
//	}
//
//	m := mailer.New(sender, composer, mailer.Config{
//		SenderEmail: "team@example.com",
//		SenderName:  "Team",
//	})
//
//	receipt, err := m.Send(ctx, mailer.SendParams{
//		To: []mailer.Address{{Name: "Joe", Email: "joe@example.com"}},
//		ComposeParams: mailer.ComposeParams{
//			ContentKey: "new-like",
//			Values:     mailer.Values{"liker": "Jane", "domain": "https://example.com"},
//		},
//	})
//
// # Errors
//
//   - ErrTemplateLoad, ErrContentLoad: returned inside *LoadError with the attempted name
//   - ErrContentKeyNotFound: the document has no entry for the content key
//   - ErrComposition: wraps any load failure raised while composing
//   - ErrInvalidAddress, ErrNoRecipient, ErrNoSender: rejected before composing
//   - ErrSendFailed: the provider returned an error
package mailer
