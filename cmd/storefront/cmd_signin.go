package main

import (
	"fmt"
	"github.com/nikolayk812/storefront-cart/internal/config"
	"github.com/nikolayk812/storefront-cart/internal/export"
	"github.com/nikolayk812/storefront-cart/internal/port"
	"github.com/spf13/cobra"
)

func (a *app) newSignInCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signin",
		Short: "Sign in to Google Drive for order export",
		Long: `Runs the OAuth consent flow for the drive export target and caches the
token. checkout signs in on demand as well; this command does it up front.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.cfg.Export.Target != config.ExportDrive {
				return fmt.Errorf("signin is only needed for the %q export target, configured %q",
					config.ExportDrive, a.cfg.Export.Target)
			}

			ctx, cancel := a.commandContext(cmd)
			defer cancel()

			auth, err := export.NewAuthenticatorFromFile(a.cfg.Export.CredentialsFile, a.cfg.Export.TokenFile, a.in, a.out)
			if err != nil {
				return err
			}

			if auth.IsSignedIn() {
				a.notifier.Notify(port.NotifyInfo, "Already signed in to Google Drive")
				return nil
			}

			if err := auth.SignIn(ctx); err != nil {
				return a.fail("Sign in to Google Drive failed", err)
			}

			a.notifier.Notify(port.NotifySuccess, "Signed in to Google Drive")
			return nil
		},
	}
}
