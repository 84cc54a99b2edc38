package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jrsteele09/go-auth-client/identity"
	"github.com/jrsteele09/go-auth-client/internal/config"
	"github.com/jrsteele09/go-auth-client/internal/utils"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type rootFlags struct {
	clientName string
	verbose    bool
}

func newRootCommand(cfg config.Config) *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:           "identity",
		Short:         "Log in to an identity provider and use the session",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			if flags.verbose {
				log.Logger = log.Logger.Level(zerolog.DebugLevel)
			}
		},
	}
	root.PersistentFlags().StringVar(&flags.clientName, "client", "@oneblink/cli", "client name the session belongs to")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log requests and token decisions")

	newClient := func() (*identity.Client, error) {
		return identity.New(flags.clientName, nil, identity.WithConfig(cfg), identity.WithLogger(log.Logger))
	}

	root.AddCommand(
		newLoginCommand(cfg, newClient),
		newLogoutCommand(newClient),
		newTokenCommand(newClient),
		newProfileCommand(newClient),
		newAssumeRoleCommand(newClient),
		newSettingsCommand(newClient),
		newTenantCommand(newClient),
	)
	return root
}

type clientFactory func() (*identity.Client, error)

func newLoginCommand(cfg config.Config, newClient clientFactory) *cobra.Command {
	var (
		opts    identity.LoginOptions
		noStore bool
	)
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in (browser by default)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			displayAppname(cmd.ErrOrStderr(), cfg.GetAppName())
			opts.StoreJWT = utils.Ptr(!noStore)
			tok, err := client.Login(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if noStore {
				fmt.Fprintln(cmd.OutOrStdout(), tok)
				return nil
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "Success! Welcome.")
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.Username, "username", "u", "", "log in with a username and password")
	f.BoolVar(&opts.UsernamePrompt, "prompt-username", false, "prompt for the username")
	f.StringVarP(&opts.Password, "password", "p", "", "password for --username")
	f.StringVar(&opts.SMS, "sms", "", "send a verification code to this phone number")
	f.BoolVar(&opts.SMSPrompt, "prompt-sms", false, "prompt for a phone number")
	f.StringVar(&opts.Email, "email", "", "send a verification code to this email address")
	f.BoolVar(&opts.EmailPrompt, "prompt-email", false, "prompt for an email address")
	f.BoolVar(&opts.UsePreference, "preference", false, "use the remembered login preference")
	f.BoolVar(&noStore, "no-store", false, "print the token instead of storing it")
	return cmd
}

func newLogoutCommand(newClient clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke and forget the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			if err := client.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "Logged out.")
			return nil
		},
	}
}

func newTokenCommand(newClient clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Print a valid session token, refreshing it if needed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			tok, err := client.AccessToken(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
}

func newProfileCommand(newClient clientFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the logged in user's profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			profile, err := client.Profile(cmd.Context(), "")
			if err != nil {
				return err
			}
			return printJSON(profile.Claims)
		},
	}
}

func newAssumeRoleCommand(newClient clientFactory) *cobra.Command {
	var params map[string]string
	cmd := &cobra.Command{
		Use:   "assume-role",
		Short: "Exchange the session for temporary AWS credentials",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			extra := make(map[string]any, len(params))
			for k, v := range params {
				extra[k] = v
			}
			creds, err := client.AssumeRole(cmd.Context(), extra)
			if err != nil {
				return err
			}
			return printJSON(creds)
		},
	}
	cmd.Flags().StringToStringVar(&params, "param", nil, "extra delegation parameters (key=value)")
	return cmd
}

func newSettingsCommand(newClient clientFactory) *cobra.Command {
	var params map[string]string
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Fetch the service settings for the session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			settings, err := client.ServiceSettings(cmd.Context(), params)
			if err != nil {
				return err
			}
			return printJSON(settings)
		},
	}
	cmd.Flags().StringToStringVar(&params, "param", nil, "extra query parameters (key=value)")
	return cmd
}

func newTenantCommand(newClient clientFactory) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tenant",
		Short: "Show the current and previous tenants",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			selection, err := client.Tenants(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(selection)
		},
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "set <name>",
			Short: "Select the current tenant",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				client, err := newClient()
				if err != nil {
					return err
				}
				selection, err := client.SetTenant(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printJSON(selection)
			},
		},
		&cobra.Command{
			Use:   "remove <name>",
			Short: "Forget a tenant",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				client, err := newClient()
				if err != nil {
					return err
				}
				selection, err := client.RemoveTenant(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return printJSON(selection)
			},
		},
	)
	return cmd
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
