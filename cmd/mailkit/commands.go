package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/mailkit/internal/httpapi"
	"github.com/dmitrymomot/mailkit/internal/server"
	"github.com/dmitrymomot/mailkit/pkg/mailer"
)

func newServeCmd(cfg *AppConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			log := newLogger(*cfg)

			a, err := newApp(ctx, *cfg, log, true)
			if err != nil {
				return err
			}

			router := httpapi.NewRouter(httpapi.Deps{
				Mailer:   a.mailer,
				Contents: a.contents,
				Checks:   a.checks,
				Logger:   log,
			})

			opts := []server.Option{server.WithLogger(log)}
			for _, hook := range a.hooks {
				opts = append(opts, server.WithShutdownHook(hook))
			}
			return server.New(cfg.Server, router, opts...).Run(ctx)
		},
	}
}

// composeFlags are shared by compose and send.
type composeFlags struct {
	values   []string
	template string
	content  string
}

func (f *composeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.values, "value", "v", nil, "value as name=value (repeatable)")
	cmd.Flags().StringVar(&f.template, "template", "", "template name (default from MAILER_TEMPLATE_NAME)")
	cmd.Flags().StringVar(&f.content, "content", "", "content document name (default from MAILER_CONTENT_NAME)")
}

func (f *composeFlags) params(key string) (mailer.ComposeParams, error) {
	values, err := parseValues(f.values)
	if err != nil {
		return mailer.ComposeParams{}, err
	}
	return mailer.ComposeParams{
		ContentKey:   key,
		Values:       values,
		TemplateName: f.template,
		ContentName:  f.content,
	}, nil
}

func newComposeCmd(cfg *AppConfig) *cobra.Command {
	var (
		flags  composeFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "compose <content-key>",
		Short: "Print a composed email without sending it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			params, err := flags.params(args[0])
			if err != nil {
				return err
			}

			a, err := newApp(ctx, *cfg, newLogger(*cfg), false)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			composed, err := a.mailer.Preview(ctx, params)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), composed)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Subject: %s\n\n%s\n", composed.Subject, composed.Body)
			return err
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print {subject, body} as JSON")
	return cmd
}

func newSendCmd(cfg *AppConfig) *cobra.Command {
	var (
		flags composeFlags
		to    []string
		from  string
		tags  []string
	)

	cmd := &cobra.Command{
		Use:   "send <content-key>",
		Short: "Compose an email and deliver it through the configured provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			params, err := flags.params(args[0])
			if err != nil {
				return err
			}

			a, err := newApp(ctx, *cfg, newLogger(*cfg), true)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			sp := mailer.SendParams{
				To:            make([]mailer.Address, len(to)),
				Tags:          mailer.SimpleTags(tags...),
				ComposeParams: params,
			}
			for i, addr := range to {
				sp.To[i] = mailer.Address{Email: addr}
			}
			if from != "" {
				sp.From = &mailer.Address{Email: from}
			}

			receipt, err := a.mailer.Send(ctx, sp)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), receipt)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringSliceVar(&to, "to", nil, "recipient address (repeatable)")
	cmd.Flags().StringVar(&from, "from", "", "sender address (default from MAILER_SENDER_EMAIL)")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tag name (repeatable)")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newKeysCmd(cfg *AppConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "keys [content-name]",
		Short: "List the content keys of a content document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			a, err := newApp(ctx, *cfg, newLogger(*cfg), false)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			var name string
			if len(args) == 1 {
				name = args[0]
			}
			doc, err := a.contents.Document(ctx, name)
			if err != nil {
				return err
			}
			for _, key := range doc.Keys() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), key); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newPublishCmd(cfg *AppConfig) *cobra.Command {
	var prune bool

	cmd := &cobra.Command{
		Use:   "publish <dir>",
		Short: "Upload templates and content documents from a local directory to the S3 or Redis source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := newLogger(*cfg)

			a, err := newApp(ctx, *cfg, log, false)
			if err != nil {
				return err
			}
			defer a.close(ctx)

			if a.store == nil {
				return fmt.Errorf("publish needs SOURCE_KIND=%s or %s, got %q", SourceS3, SourceRedis, cfg.Source.Kind)
			}

			res, err := publish(ctx, a.store, os.DirFS(args[0]), prune)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "published %d documents, pruned %d\n", res.Published, res.Pruned)
			return err
		},
	}

	cmd.Flags().BoolVar(&prune, "prune", false, "delete remote documents that are not present in dir")
	return cmd
}

// publishable lists the document extensions uploaded by publish.
var publishable = map[string]bool{".html": true, ".json": true, ".yaml": true}

type publishResult struct {
	Published int
	Pruned    int
}

// publish uploads every template and content document in fsys to dst,
// keeping relative paths. With prune set, documents in dst that fsys does not
// have are deleted afterwards. Only publishable names are ever pruned.
func publish(ctx context.Context, dst store, fsys fs.FS, prune bool) (publishResult, error) {
	var res publishResult
	local := make(map[string]bool)

	err := fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !publishable[path.Ext(name)] {
			return nil
		}

		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}
		if err := dst.Put(ctx, name, data); err != nil {
			return fmt.Errorf("publish %s: %w", name, err)
		}
		local[name] = true
		res.Published++
		return nil
	})
	if err != nil || !prune {
		return res, err
	}

	remote, err := dst.Names(ctx)
	if err != nil {
		return res, fmt.Errorf("list remote documents: %w", err)
	}
	for _, name := range remote {
		if local[name] || !publishable[path.Ext(name)] {
			continue
		}
		if err := dst.Delete(ctx, name); err != nil {
			return res, fmt.Errorf("prune %s: %w", name, err)
		}
		res.Pruned++
	}
	return res, nil
}

// parseValues turns name=value pairs into mailer.Values.
func parseValues(pairs []string) (mailer.Values, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	values := make(mailer.Values, len(pairs))
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid value %q: expected name=value", p)
		}
		values[name] = value
	}
	return values, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
