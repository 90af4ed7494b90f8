package cmd

import (
	"fmt"

	"github.com/KaramelBytes/biasscan-cli/internal/report"
	"github.com/KaramelBytes/biasscan-cli/internal/server"
	"github.com/spf13/cobra"
)

var (
	srvAddr   string
	srvUpload int
	srvLoad   loadFlags
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analyzer over HTTP (upload a file, get the bias report)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := srvAddr
		maxMB := srvUpload
		if cfg != nil {
			if !cmd.Flags().Changed("addr") && cfg.ServerAddr != "" {
				addr = cfg.ServerAddr
			}
			if !cmd.Flags().Changed("max-upload-mb") && cfg.MaxUploadMB > 0 {
				maxMB = cfg.MaxUploadMB
			}
		}
		opt, err := srvLoad.options(cmd)
		if err != nil {
			return err
		}
		workers := 4
		if cfg != nil && cfg.Workers > 0 {
			workers = cfg.Workers
		}
		srv := server.New(server.Config{
			Addr:           addr,
			MaxUploadBytes: int64(maxMB) << 20,
			Load:           opt,
			Report:         report.Options{Workers: workers},
		})
		fmt.Fprintf(cmd.OutOrStdout(), "Listening on http://%s\n", addr)
		return srv.Run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&srvAddr, "addr", "127.0.0.1:8080", "listen address")
	serveCmd.Flags().IntVar(&srvUpload, "max-upload-mb", 32, "maximum upload size in MiB")
	srvLoad.register(serveCmd)
}
