package cmd

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

func newOfflineCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "offline",
		Short: "Save and sync payloads kept while offline",
	}
	cmd.AddCommand(newOfflineSaveCmd(a), newOfflineListCmd(a), newOfflineSyncCmd(a))
	return cmd
}

func newOfflineSaveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "save <endpoint> <json>",
		Short:   "Store a payload to post on the next sync",
		Example: `  hatchctl offline save /auth/profile '{"name":"Jane","email":"jane@example.com"}'`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !json.Valid([]byte(args[1])) {
				return fmt.Errorf("payload for %s is not valid JSON", args[0])
			}

			c, cleanup, err := a.newClient(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			return c.StoreOffline(cmd.Context(), args[0], json.RawMessage(args[1]))
		},
	}
}

func newOfflineListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored payloads by endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, cleanup, err := a.newClient(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			data, err := c.OfflineData(cmd.Context())
			if err != nil {
				return err
			}

			endpoints := make([]string, 0, len(data))
			for endpoint := range data {
				endpoints = append(endpoints, endpoint)
			}
			sort.Strings(endpoints)

			out := cmd.OutOrStdout()
			for _, endpoint := range endpoints {
				fmt.Fprintf(out, "%s\t%s\n", endpoint, data[endpoint])
			}
			return nil
		},
	}
}

func newOfflineSyncCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Post every stored payload and keep the ones that fail",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, cleanup, err := a.newClient(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			return c.SyncOfflineData(cmd.Context())
		},
	}
}
