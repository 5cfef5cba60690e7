package main

import (
	"path/filepath"

	"github.com/Veraticus/billscout/internal/api"
	"github.com/Veraticus/billscout/internal/certs"
	"github.com/Veraticus/billscout/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the classification and scoring HTTP API",
		Long: `Serve the HTTP API. With --tls the server uses a self-signed localhost
certificate kept next to the database, generated on first use.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			classifier, err := loadClassifier()
			if err != nil {
				return err
			}

			var opts []api.ServerOption
			if viper.GetBool("server.tls") {
				cert, err := certs.NewStore(certDir()).Certificate()
				if err != nil {
					return err
				}
				opts = append(opts, api.WithCertificate(cert))
			}

			server := api.NewServer(classifier, newScorer(), opts...)
			return server.ListenAndServe(cmd.Context(), viper.GetString("server.addr"))
		},
	}

	cmd.Flags().String("addr", defaultServerAddr, "Listen address")
	cmd.Flags().Bool("tls", false, "Serve HTTPS with a local self-signed certificate")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("server.tls", cmd.Flags().Lookup("tls"))

	return cmd
}

// certDir returns server.cert_dir, defaulting to a certs directory beside the database.
func certDir() string {
	if dir := viper.GetString("server.cert_dir"); dir != "" {
		return config.ExpandPath(dir)
	}
	return filepath.Join(filepath.Dir(config.DatabasePath(viper.GetString("database.path"))), "certs")
}
