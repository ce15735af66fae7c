package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	bind          string
	botName       string
	codeLength    int
	console       bool
	pollTimeout   time.Duration
	port          int
	prefix        string
	profile       bool
	tlsCert       string
	tlsKey        string
	token         string
	verbose       bool
	version       bool
	webhookSecret string
}

func (c *Config) validate() error {
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.codeLength < 3 || c.codeLength > 16 {
		return fmt.Errorf("invalid code length (must be between 3-16 inclusive): %d", c.codeLength)
	}
	if c.token == "" && !c.console {
		return errors.New("either --token or --console must be provided")
	}
	return nil
}

func (c *Config) scheme() string {
	if c.tlsCert != "" && c.tlsKey != "" {
		return "https"
	}
	return "http"
}

func newCmd(cfg *Config) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("SANTABOX")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "santabox",
		Short:         "A Secret Santa bot that assigns gift pairings without revealing them.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return Serve(cmd.Context(), cfg)
		},
	}

	fs := cmd.Flags()

	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: SANTABOX_BIND)")
	fs.StringVar(&cfg.botName, "bot-name", "", "bot username, used for deep links and QR codes (env: SANTABOX_BOT_NAME)")
	fs.IntVar(&cfg.codeLength, "code-length", 4, "length of generated game codes (env: SANTABOX_CODE_LENGTH)")
	fs.BoolVar(&cfg.console, "console", false, "serve a local web chat for trying the bot without a token (env: SANTABOX_CONSOLE)")
	fs.DurationVar(&cfg.pollTimeout, "poll-timeout", 50*time.Second, "telegram long poll timeout (env: SANTABOX_POLL_TIMEOUT)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: SANTABOX_PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all URLs, for use behind reverse proxy (env: SANTABOX_PREFIX)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: SANTABOX_PROFILE)")
	fs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate (env: SANTABOX_TLS_CERT)")
	fs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile (env: SANTABOX_TLS_KEY)")
	fs.StringVar(&cfg.token, "token", "", "telegram bot api token (env: SANTABOX_TOKEN)")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: SANTABOX_VERBOSE)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: SANTABOX_VERSION)")
	fs.StringVar(&cfg.webhookSecret, "webhook-secret", "", "serve a telegram webhook at /telegram/webhook/<secret> instead of polling (env: SANTABOX_WEBHOOK_SECRET)")

	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("santabox v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
