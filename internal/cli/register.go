package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"eventnite/internal/config"
	"eventnite/internal/discord"
)

func init() {
	rootCmd.AddCommand(registerCmd)
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register the bot's slash commands on the configured guild",
	RunE:  registerCommands,
}

func registerCommands(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	client := discord.NewRESTClient(cfg.Discord.Token, cfg.Discord.ApplicationID, cfg.Discord.GuildID)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := client.RegisterCommands(ctx); err != nil {
		return fmt.Errorf("registering commands: %w", err)
	}

	fmt.Printf("Commands registered on guild %d.\n", cfg.Discord.GuildID)
	return nil
}
