// cmd/wififailover/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "wififailover",
		Short:         "Keep a Wi-Fi link alive by failing over to trusted networks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newRunCmd(),
		newTrustedCmd(),
		newNetworksCmd(),
		newActiveCmd(),
		newRefreshCmd(),
		newStateCmd(),
	)
	return root
}
