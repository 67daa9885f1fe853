package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hatchsocial/hatchclient"
)

func newLoginCmd(a *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, cleanup, err := a.newClient(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			if _, err := c.Login(cmd.Context(), email, password); err != nil {
				return err
			}
			if !c.Session().IsAuthenticated() {
				return errors.New("login response carried no token")
			}

			var user struct {
				Email string `json:"email"`
			}
			_ = json.Unmarshal(c.Session().User(), &user)
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", user.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, cleanup, err := a.newClient(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			// The local session is cleared even when the backend call fails.
			_, err = c.Logout(cmd.Context())
			return err
		},
	}
}

func newStatsCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print dashboard statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, cleanup, err := a.newClient(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			body, err := c.DashboardStats(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), format, body)
		},
	}
	addFormatFlag(cmd, &format)
	return cmd
}

func newGetCmd(a *app) *cobra.Command {
	var (
		format string
		params []string
		fresh  bool
	)

	cmd := &cobra.Command{
		Use:   "get <path>",
		Short: "Issue a GET against any endpoint",
		Example: `  hatchctl get /auth/profile --param status=active --param limit=10
  hatchctl get /auth/profile -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := parseParams(params)
			if err != nil {
				return err
			}

			c, cleanup, err := a.newClient(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			body, err := c.Request(cmd.Context(), http.MethodGet, args[0], &hatchclient.RequestOptions{
				Params:  query,
				NoCache: fresh,
			})
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), format, body)
		},
	}
	addFormatFlag(cmd, &format)
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "query parameter as key=value (repeatable)")
	cmd.Flags().BoolVar(&fresh, "no-cache", false, "bypass the response cache")
	return cmd
}

func parseParams(pairs []string) (hatchclient.Params, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	params := make(hatchclient.Params, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q: want key=value", pair)
		}
		params[key] = value
	}
	return params, nil
}
