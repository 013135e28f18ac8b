// cmd/wififailover/client.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/tamzrod/wififailover/internal/api"
	"github.com/tamzrod/wififailover/internal/config"
)

const clientTimeout = 30 * time.Second

// clientFlags are shared by every subcommand that talks to the daemon.
type clientFlags struct {
	addr string
}

func (f *clientFlags) bind(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&f.addr, "addr", config.DefaultListen, "daemon API address")
}

func (f *clientFlags) client() (*api.Client, context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), clientTimeout)
	return api.NewClient(f.addr), ctx, cancel
}

// ---- trusted ----

func newTrustedCmd() *cobra.Command {
	var cf clientFlags

	cmd := &cobra.Command{
		Use:   "trusted",
		Short: "Manage trusted failover networks",
	}
	cf.bind(cmd)

	list := &cobra.Command{
		Use:   "list",
		Short: "List trusted SSIDs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ctx, cancel := cf.client()
			defer cancel()

			ssids, err := c.Trusted(ctx)
			if err != nil {
				return err
			}
			for _, s := range ssids {
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			return nil
		},
	}

	var password string
	add := &cobra.Command{
		Use:   "add <ssid>",
		Short: "Trust an SSID and store its password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ctx, cancel := cf.client()
			defer cancel()
			return c.Trust(ctx, args[0], password)
		},
	}
	add.Flags().StringVarP(&password, "password", "p", "", "network password")
	_ = add.MarkFlagRequired("password")

	remove := &cobra.Command{
		Use:   "remove <ssid>",
		Short: "Forget an SSID and its password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ctx, cancel := cf.client()
			defer cancel()
			return c.Untrust(ctx, args[0])
		},
	}

	cmd.AddCommand(list, add, remove)
	return cmd
}

// ---- networks ----

func newNetworksCmd() *cobra.Command {
	var (
		cf          clientFlags
		onlyTrusted bool
	)

	cmd := &cobra.Command{
		Use:   "networks",
		Short: "Scan and list visible networks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ctx, cancel := cf.client()
			defer cancel()

			views, err := c.Networks(ctx, onlyTrusted)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SSID\tMAC\tSIGNAL\tCHANNEL\tSECURITY\tCONNECTED\tTRUSTED")
			for _, v := range views {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%t\t%t\n",
					v.SSID, v.MAC, v.SignalLevel, v.Channel, v.Security, v.Connected, v.Trusted)
			}
			return w.Flush()
		},
	}
	cf.bind(cmd)
	cmd.Flags().BoolVar(&onlyTrusted, "trusted", false, "only trusted networks other than the active one")
	return cmd
}

// ---- active / refresh / state ----

func newActiveCmd() *cobra.Command {
	var cf clientFlags

	cmd := &cobra.Command{
		Use:   "active",
		Short: "Show the currently associated network",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ctx, cancel := cf.client()
			defer cancel()

			snap, err := c.Active(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd, snap)
		},
	}
	cf.bind(cmd)
	return cmd
}

func newRefreshCmd() *cobra.Command {
	var cf clientFlags

	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Ask the daemon for an immediate cycle",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ctx, cancel := cf.client()
			defer cancel()
			return c.Refresh(ctx)
		},
	}
	cf.bind(cmd)
	return cmd
}

func newStateCmd() *cobra.Command {
	var cf clientFlags

	cmd := &cobra.Command{
		Use:   "state",
		Short: "Show the control loop state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, ctx, cancel := cf.client()
			defer cancel()

			st, err := c.State(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd, st)
		},
	}
	cf.bind(cmd)
	return cmd
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

