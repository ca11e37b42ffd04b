package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	wikitext "github.com/growler/go-wikitext"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "wikitext",
	Short: "Compile wikitext documents to HTML",
	Long: `wikitext is a compiler for a Wikidot-style markup dialect.

It parses a document into a typed element tree and renders that tree to
HTML, collecting non-fatal parse diagnostics along the way.

  wikitext render page.wtx       Render a document to HTML
  wikitext parse page.wtx        Print the element tree as JSON
  wikitext inspect page.wtx      Summarize a document's structure`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .wikitext.yml)")
	rootCmd.PersistentFlags().String("locale", "en", "locale for rendered messages")
	rootCmd.PersistentFlags().String("messages", "", "YAML file with message catalog overrides")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	bindFlags(rootCmd.PersistentFlags())
}

// bindFlags wires every persistent flag except --config into viper. A
// bind failure is a wiring bug in the flag set itself, so it panics at
// startup like a duplicate block registration would.
func bindFlags(flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" {
			return
		}
		if err := viper.BindPFlag(f.Name, f); err != nil {
			panic(fmt.Sprintf("binding flag %q: %s", f.Name, err))
		}
	})
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".wikitext")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}
	viper.SetEnvPrefix("WIKITEXT")
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintln(os.Stderr, "config:", err)
		}
	}
}

func logger() *slog.Logger {
	if !viper.GetBool("verbose") {
		return nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func renderOptions() (wikitext.Options, error) {
	opts := wikitext.Options{Logger: logger()}
	locale, err := language.Parse(viper.GetString("locale"))
	if err != nil {
		return opts, fmt.Errorf("invalid locale %q: %w", viper.GetString("locale"), err)
	}
	opts.Locale = locale
	if path := viper.GetString("messages"); path != "" {
		messages, err := loadMessages(path)
		if err != nil {
			return opts, err
		}
		opts.Messages = messages
	}
	return opts, nil
}

// loadMessages reads a YAML catalog of the form locale -> key -> text
// and turns it into a lookup function. The base language is tried when
// the exact tag has no entry.
func loadMessages(path string) (wikitext.MessageFunc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading messages: %w", err)
	}
	var catalog map[string]map[string]string
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parsing messages: %w", err)
	}
	return func(locale language.Tag, key string) (string, bool) {
		if m, ok := catalog[locale.String()]; ok {
			if s, ok := m[key]; ok {
				return s, true
			}
		}
		base, _ := locale.Base()
		if m, ok := catalog[base.String()]; ok {
			if s, ok := m[key]; ok {
				return s, true
			}
		}
		return "", false
	}, nil
}

// readSource reads the document from the named file, or stdin for "-"
// or no argument.
func readSource(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func reportExceptions(exceptions []wikitext.Exception) {
	for _, exc := range exceptions {
		fmt.Fprintln(os.Stderr, "warning:", exc.String())
	}
}

func parseArgs(args []string) (*wikitext.Tree, []wikitext.Exception, error) {
	src, err := readSource(args)
	if err != nil {
		return nil, nil, err
	}
	tree, exceptions, err := wikitext.ParseLogger(logger(), src)
	if err != nil {
		return nil, nil, fmt.Errorf("parse failed: %w", err)
	}
	return tree, exceptions, nil
}
