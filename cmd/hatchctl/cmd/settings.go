package cmd

import "github.com/spf13/cobra"

func newSettingsCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show dashboard settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, cleanup, err := a.newClient(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			settings, err := c.Settings(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), format, settings)
		},
	}
	addFormatFlag(cmd, &format)
	cmd.AddCommand(newSettingsSetCmd(a))
	return cmd
}

func newSettingsSetCmd(a *app) *cobra.Command {
	var (
		theme, language, timezone  string
		refreshInterval            int
		notifications, autoRefresh bool
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change dashboard settings; unset flags keep their saved values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, cleanup, err := a.newClient(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			settings, err := c.Settings(cmd.Context())
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("theme") {
				settings.Theme = theme
			}
			if flags.Changed("language") {
				settings.Language = language
			}
			if flags.Changed("timezone") {
				settings.Timezone = timezone
			}
			if flags.Changed("refresh-interval") {
				settings.RefreshInterval = refreshInterval
			}
			if flags.Changed("notifications") {
				settings.Notifications = notifications
			}
			if flags.Changed("auto-refresh") {
				settings.AutoRefresh = autoRefresh
			}
			return c.SaveSettings(cmd.Context(), settings)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&theme, "theme", "", "dark or light")
	flags.StringVar(&language, "language", "", "interface language")
	flags.StringVar(&timezone, "timezone", "", "IANA timezone")
	flags.IntVar(&refreshInterval, "refresh-interval", 0, "auto-refresh period in milliseconds")
	flags.BoolVar(&notifications, "notifications", true, "show notifications")
	flags.BoolVar(&autoRefresh, "auto-refresh", true, "refresh dashboard data periodically")
	return cmd
}
