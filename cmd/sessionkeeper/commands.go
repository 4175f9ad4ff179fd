package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/larriantoniy/tg_session_keeper/internal/config"
)

func initCredentialsCmd() *cobra.Command {
	var (
		apiID   int32
		apiHash string
		output  string
	)

	cmd := &cobra.Command{
		Use:   "init-credentials",
		Short: "Write the api_id/api_hash file used by the menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				output = cfg.Path(cfg.CredentialsFile)
			}

			if err := config.SaveCredentials(output, config.Credentials{ApiID: apiID, ApiHash: apiHash}); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "credentials written to %s\n", output)
			return nil
		},
	}
	cmd.Flags().Int32Var(&apiID, "api-id", 0, "Telegram API ID")
	cmd.Flags().StringVar(&apiHash, "api-hash", "", "Telegram API hash")
	cmd.Flags().StringVarP(&output, "output", "o", "", "credentials file (default: credentials_file from config)")
	_ = cmd.MarkFlagRequired("api-id")
	_ = cmd.MarkFlagRequired("api-hash")
	return cmd
}

func showConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			out, err := renderConfig(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

// renderConfig прячет пароль Redis
func renderConfig(cfg *config.AppConfig) ([]byte, error) {
	shown := *cfg
	if shown.Redis.Password != "" {
		shown.Redis.Password = "***"
	}
	return yaml.Marshal(&shown)
}
