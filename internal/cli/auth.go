package cli

import (
	"net/url"

	"github.com/spf13/cobra"
)

func newAuthCmd() *cobra.Command {
	authCmd := &cobra.Command{
		Use:   "auth",
		Short: "Signup and login",
	}

	authCmd.AddCommand(newSignupCmd())
	authCmd.AddCommand(newLoginCmd())

	return authCmd
}

func newSignupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signup <username> <password>",
		Short: "Register a new user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result MessageResult

			form := url.Values{}
			form.Set("username", args[0])
			form.Set("password", args[1])

			if err := client.PostForm("/api/auth/signup", form, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <username> <password>",
		Short: "Log in and remember the user id for later commands",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result LoginResult

			form := url.Values{}
			form.Set("username", args[0])
			form.Set("password", args[1])

			if err := client.PostForm("/api/auth/login", form, &result); err != nil {
				return err
			}

			if err := cfg.SaveUserID(result.UserID); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
