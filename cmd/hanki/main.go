package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"codeberg.org/snonux/hanki/internal/ai"
	"codeberg.org/snonux/hanki/internal/ankiconnect"
	"codeberg.org/snonux/hanki/internal/cli"
	"codeberg.org/snonux/hanki/internal/config"
	"codeberg.org/snonux/hanki/internal/enhance"
	"codeberg.org/snonux/hanki/internal/shell"
	"codeberg.org/snonux/hanki/internal/speech"
)

func main() {
	flags := cli.NewFlags()

	rootCmd := cli.CreateRootCommand(flags)

	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runShell(flags)
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runShell(flags *cli.Flags) error {
	// All configuration is resolved once, here, and handed to the
	// components that need it.
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if flags.AnkiURL != "" {
		cfg.AnkiURL = flags.AnkiURL
	}
	if flags.ChatModel != "" {
		cfg.ChatModel = flags.ChatModel
	}

	ctx := context.Background()

	client := ankiconnect.NewClient(cfg.AnkiURL)
	fmt.Println("Checking AnkiConnect connection...")
	if err := client.CheckAvailability(ctx); err != nil {
		return err
	}
	fmt.Printf("Successfully connected to AnkiConnect!\n\n")

	generator := ai.NewGenerator(cfg.OpenRouterKey, cfg.OpenRouterBaseURL, cfg.ChatModel)
	synthesizer := speech.NewSynthesizer(speech.Config{
		APIKey:  cfg.ElevenKey,
		VoiceID: cfg.ElevenVoiceID,
		ModelID: cfg.ElevenModelID,
	})

	sh := shell.New(
		client,
		enhance.NewEnhancer(client, generator),
		enhance.NewAudioEnhancer(client, synthesizer, os.Stdout),
		generator,
		shell.NewTerminalPrompter(),
		os.Stdout,
	)
	sh.ClearScreen = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

	return sh.Run(ctx)
}
