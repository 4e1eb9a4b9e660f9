package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/zoobzio/hashid"
	"go.uber.org/zap"
	"lukechampine.com/uint128"
)

// app carries state shared by every subcommand.
type app struct {
	out, errOut io.Writer
	configPath  string
	v           *viper.Viper
	cfg         Config
	log         *zap.Logger
}

var errNoSalt = errors.New("no salt configured (set --salt, HASHID_SALT or salt in the config file)")

func newRootCmd(a *app) *cobra.Command {
	a.v = newViper()

	root := &cobra.Command{
		Use:           "hashid",
		Short:         "Convert numeric ids to and from obfuscated hash strings",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig(a.v, a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log = newLogger(cfg.Log, a.errOut)
			a.log.Debug("configuration loaded",
				zap.Uint("min_length", cfg.MinLength),
				zap.Int("alphabet_size", len([]rune(cfg.Alphabet))),
				zap.Bool("salt_set", cfg.Salt != ""),
				zap.String("config_file", a.v.ConfigFileUsed()),
			)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "path to a YAML config file")
	pf.String("salt", "", "salt shared by every party that encodes or decodes")
	pf.Uint("min-length", hashid.DefaultMinLength, "minimum hash string length")
	pf.String("alphabet", hashid.DefaultAlphabet, "characters hash strings are built from")
	pf.String("log-level", "warn", "log level: debug, info, warn, error")
	pf.String("log-format", "console", "log format: console or json")

	_ = a.v.BindPFlag("salt", pf.Lookup("salt"))
	_ = a.v.BindPFlag("min_length", pf.Lookup("min-length"))
	_ = a.v.BindPFlag("alphabet", pf.Lookup("alphabet"))
	_ = a.v.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = a.v.BindPFlag("log.format", pf.Lookup("log-format"))

	root.AddCommand(newSaltCmd(a), newEncodeCmd(a), newDecodeCmd(a))
	return root
}

// codec publishes the configured settings and returns the active codec.
func (a *app) codec() (*hashid.NumericCodec, error) {
	if a.cfg.Salt == "" {
		return nil, errNoSalt
	}
	if err := a.cfg.options().Build(); err != nil {
		return nil, err
	}
	return hashid.Active(), nil
}

func newSaltCmd(a *app) *cobra.Command {
	var (
		count      int
		deriveFrom string
		namespace  string
	)

	cmd := &cobra.Command{
		Use:   "salt",
		Short: "Print a new random salt, or derive one from a secret",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if deriveFrom != "" {
				salt, err := hashid.DeriveSalt([]byte(deriveFrom), namespace)
				if err != nil {
					return err
				}
				a.log.Debug("derived salt", zap.String("namespace", namespace))
				_, err = fmt.Fprintln(a.out, salt)
				return err
			}

			if count < 1 {
				return fmt.Errorf("--count must be at least 1, got %d", count)
			}
			for i := 0; i < count; i++ {
				if _, err := fmt.Fprintln(a.out, hashid.GenerateSalt()); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of salts to generate")
	cmd.Flags().StringVar(&deriveFrom, "derive-from", "", "derive the salt from this secret (at least 16 bytes)")
	cmd.Flags().StringVar(&namespace, "namespace", "", "namespace separating salts derived from one secret")
	return cmd
}

func newEncodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "encode VALUE...",
		Short: "Encode unsigned integers (up to 128 bits) as hash strings",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			nc, err := a.codec()
			if err != nil {
				return err
			}
			for _, arg := range args {
				v, err := uint128.FromString(arg)
				if err != nil {
					return fmt.Errorf("invalid value %q: %w", arg, err)
				}
				s, err := nc.Encode(v)
				if err != nil {
					return err
				}
				a.log.Debug("encoded", zap.String("value", arg), zap.Int("length", len(s)))
				if _, err := fmt.Fprintln(a.out, s); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newDecodeCmd(a *app) *cobra.Command {
	var width string

	cmd := &cobra.Command{
		Use:   "decode HASH...",
		Short: "Decode hash strings back to unsigned integers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			w, ok := hashid.ParseWidth(width)
			if !ok {
				return fmt.Errorf("invalid --width %q", width)
			}
			nc, err := a.codec()
			if err != nil {
				return err
			}
			for _, arg := range args {
				v, err := nc.Decode(arg)
				if err != nil {
					return err
				}
				if v.Cmp(w.Max()) > 0 {
					return &hashid.RangeError{Value: v, Width: w}
				}
				if _, err := fmt.Fprintln(a.out, v.String()); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&width, "width", "w", "128", "destination width: 8, 16, 32, 64, 128 or ptr")
	return cmd
}
