package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"studio_landing_go/models"
	"studio_landing_go/services/i18n"
	"studio_landing_go/services/leadform"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// errNotSent makes the process exit non-zero without printing usage
var errNotSent = errors.New("lead was not sent")

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:           "lead-submit",
		Short:         "Submit a lead to the studio relay",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), v, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.String("endpoint", "http://localhost:8080/api/send-tg", "relay endpoint")
	flags.String("name", "", "visitor name")
	flags.String("email", "", "visitor email")
	flags.String("phone", "", "visitor phone")
	flags.String("message", "", "message text")
	flags.String("token", "", "pre-issued bot-check token; skips the browser")
	flags.String("page-url", "http://localhost:8080/", "landing page that loads the bot-check script")
	flags.String("site-key", "", "bot-check site key (read from the page when empty)")
	flags.String("lang", i18n.DefaultLang, "language for messages")
	flags.Duration("timeout", leadform.DefaultTimeout, "request timeout")

	v.BindPFlags(flags)
	v.SetEnvPrefix("LEAD")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return cmd
}

func run(ctx context.Context, v *viper.Viper, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := i18n.Load(); err != nil {
		return fmt.Errorf("failed to load translations: %w", err)
	}

	client := leadform.NewClient(v.GetString("endpoint"), tokenSource(v),
		leadform.WithLanguage(v.GetString("lang")),
		leadform.WithObserver(func(s leadform.State) {
			fmt.Fprintf(out, "… %s\n", s)
		}),
	)

	ctx, cancel := context.WithTimeout(ctx, v.GetDuration("timeout"))
	defer cancel()

	outcome := client.Attempt(ctx, models.LeadDraft{
		Name:        v.GetString("name"),
		Email:       v.GetString("email"),
		Phone:       v.GetString("phone"),
		MessageText: v.GetString("message"),
	})

	printOutcome(out, outcome)
	if !outcome.Succeeded() {
		return errNotSent
	}
	return nil
}

func tokenSource(v *viper.Viper) leadform.TokenSource {
	if token := v.GetString("token"); token != "" {
		return leadform.StaticTokenSource(token)
	}
	return &leadform.ChromeTokenSource{
		PageURL: v.GetString("page-url"),
		SiteKey: v.GetString("site-key"),
		Timeout: 30 * time.Second,
	}
}

func printOutcome(out io.Writer, o leadform.Outcome) {
	fmt.Fprintf(out, "%s: %s\n", o.State, o.Message)

	fields := make([]string, 0, len(o.Fields))
	for f := range o.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		fmt.Fprintf(out, "  %s: %s\n", f, o.Fields[f])
	}
}
