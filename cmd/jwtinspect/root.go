package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	jwtinspect "github.com/auth0/go-jwt-inspect"
)

// errCheckFailed makes the process exit non-zero after the result has been
// printed.
var errCheckFailed = errors.New("check failed")

type options struct {
	output   string
	logLevel string
	decoder  string
	latin1   bool
	now      int64
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "jwtinspect",
		Short:         "Decode and structurally validate JWTs",
		Long:          `Decode the header and payload of a compact JWT and check its claims. Signatures are not verified.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.output, "output", "o", "json", "output format: json or yaml")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	flags.StringVar(&opts.decoder, "decoder", "", fmt.Sprintf("base64url decoder, one of %v", jwtinspect.DecoderNames()))
	flags.BoolVar(&opts.latin1, "latin1", false, "read decoded segments one byte per character instead of as UTF-8")
	flags.Int64Var(&opts.now, "now", 0, "evaluate expiry at this unix time instead of the current time")

	cmd.AddCommand(
		newDecodeCmd(opts),
		newIdentityCmd(opts),
		newExpiredCmd(opts),
		newValidateCmd(opts),
	)
	return cmd
}

func (o *options) inspector(cmd *cobra.Command) (*jwtinspect.Inspector, error) {
	level, err := logrus.ParseLevel(o.logLevel)
	if err != nil {
		return nil, err
	}
	logger := logrus.New()
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetLevel(level)

	inspectorOpts := []jwtinspect.Option{
		jwtinspect.WithLogger(jwtinspect.NewLogrusLogger(logger)),
	}
	if o.decoder != "" {
		inspectorOpts = append(inspectorOpts, jwtinspect.WithDecoderName(o.decoder))
	}
	if o.latin1 {
		inspectorOpts = append(inspectorOpts, jwtinspect.WithLatin1Text())
	}
	if cmd.Flags().Changed("now") {
		at := time.Unix(o.now, 0)
		inspectorOpts = append(inspectorOpts, jwtinspect.WithClock(func() time.Time { return at }))
	}

	return jwtinspect.New(inspectorOpts...)
}

func (o *options) write(w io.Writer, v any) error {
	switch o.output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown output format %q", o.output)
}

// readToken returns the token argument, reading it from in when it is "-".
func readToken(arg string, in io.Reader) (string, error) {
	if arg != "-" {
		return strings.TrimSpace(arg), nil
	}
	raw, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("reading token from stdin: %w", err)
	}
	return strings.TrimSpace(string(raw)), nil
}
