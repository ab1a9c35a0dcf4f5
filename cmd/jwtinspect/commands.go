package main

import (
	"github.com/spf13/cobra"

	jwtinspect "github.com/auth0/go-jwt-inspect"
)

type tokenFunc func(cmd *cobra.Command, opts *options, inspector *jwtinspect.Inspector, token string) error

func tokenCommand(opts *options, use, short string, run tokenFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <token|->",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := readToken(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}
			inspector, err := opts.inspector(cmd)
			if err != nil {
				return err
			}
			return run(cmd, opts, inspector, token)
		},
	}
}

func newDecodeCmd(opts *options) *cobra.Command {
	return tokenCommand(opts, "decode", "Print the decoded header, payload and raw segments",
		func(cmd *cobra.Command, opts *options, inspector *jwtinspect.Inspector, token string) error {
			decoded, err := inspector.DecodeToken(token)
			if err != nil {
				return err
			}
			return opts.write(cmd.OutOrStdout(), decoded)
		})
}

func newIdentityCmd(opts *options) *cobra.Command {
	return tokenCommand(opts, "identity", "Print the user identity claims",
		func(cmd *cobra.Command, opts *options, inspector *jwtinspect.Inspector, token string) error {
			id, err := inspector.ExtractIdentity(token)
			if err != nil {
				return err
			}
			return opts.write(cmd.OutOrStdout(), id)
		})
}

func newExpiredCmd(opts *options) *cobra.Command {
	return tokenCommand(opts, "expired", "Print whether the token is expired; exits 1 if it is",
		func(cmd *cobra.Command, opts *options, inspector *jwtinspect.Inspector, token string) error {
			expired := inspector.IsExpired(token)
			if err := opts.write(cmd.OutOrStdout(), map[string]bool{"expired": expired}); err != nil {
				return err
			}
			if expired {
				return errCheckFailed
			}
			return nil
		})
}

func newValidateCmd(opts *options) *cobra.Command {
	return tokenCommand(opts, "validate", "Print the structural validation report; exits 1 if invalid",
		func(cmd *cobra.Command, opts *options, inspector *jwtinspect.Inspector, token string) error {
			report := inspector.ValidateToken(token)
			if err := opts.write(cmd.OutOrStdout(), report); err != nil {
				return err
			}
			if !report.Valid {
				return errCheckFailed
			}
			return nil
		})
}
