// Package cli wires the cobra root command and viper configuration for the
// hanki binary.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/hanki/internal"
)

// CreateRootCommand creates and configures the root cobra command. The
// entire surface is menu-driven: hanki takes no positional arguments.
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hanki",
		Short: "Korean Anki Flashcard Enhancer",
		Long: `hanki enriches Korean vocabulary flashcards in a running Anki instance
through the AnkiConnect add-on.

It generates linguistic metadata (word type, examples, conjugations,
phonetics and more) with an OpenAI-compatible language model, synthesizes
pronunciation audio via ElevenLabs, and writes everything back to your
deck. Start it without arguments and navigate the menus.`,
		Args:    cobra.NoArgs,
		Version: internal.Version,
	}

	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.hanki.yaml)")

	cmd.Flags().StringVar(&flags.AnkiURL, "anki-url", "", "AnkiConnect endpoint (default http://localhost:8765)")
	cmd.Flags().StringVar(&flags.ChatModel, "model", "", "Chat model for metadata generation (default gpt-4)")

	viper.BindPFlag("anki.url", cmd.Flags().Lookup("anki-url"))
	viper.BindPFlag("openrouter.model", cmd.Flags().Lookup("model"))
}

// InitConfig initializes viper configuration.
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".hanki")
	}

	viper.SetEnvPrefix("HANKI")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
