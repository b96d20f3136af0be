package cli

import (
	"untile/internal/server"

	"github.com/spf13/cobra"
)

func ServeAppCommand() *cobra.Command {
	var port string

	command := &cobra.Command{
		Use:     "serve",
		Short:   "Serve an API to descramble images over the web",
		Example: "untile serve --port 8888",
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.StartServer(cmd.Context(), port)
		},
	}

	command.Flags().StringVar(&port, "port", "8080", "Port on which to start the server")

	return command
}
