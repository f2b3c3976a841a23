package main

import (
	"os"

	"github.com/spf13/cobra"

	"cheki/internal/interfaces/cli/migrate"
	"cheki/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cheki",
		Short: "Cheki - fiscal receipt lookup service",
		Long:  `Cheki resolves scanned receipt QR codes to full receipt data through the tax service mobile API, managing the upstream session lifecycle transparently.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
