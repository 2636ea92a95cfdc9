package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arcanaland/scrydeck/internal/card"
	"github.com/arcanaland/scrydeck/internal/config"
	"github.com/arcanaland/scrydeck/internal/deck"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// deckCmd represents the deck command group
var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Manage decklists in your deck library",
	Long:  `Commands for managing decklists in your deck library.`,
}

// deckListCmd represents the deck list command
var deckListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List available decklists in your deck library",
	RunE: func(cmd *cobra.Command, args []string) error {
		libraryPath := config.GetDeckLibraryPath()

		if _, err := os.Stat(libraryPath); os.IsNotExist(err) {
			fmt.Printf("Deck library at %s does not exist.\n", libraryPath)
			fmt.Println("Run 'scrydeck deck init' to create it.")
			return nil
		}

		names, err := config.ListDecks()
		if err != nil {
			return fmt.Errorf("error reading deck library: %w", err)
		}

		if len(names) == 0 {
			fmt.Println("No decklists found in your deck library.")
			fmt.Println("You can add decklists by copying .txt files to:", libraryPath)
			return nil
		}

		for _, name := range names {
			d, err := deck.LoadDeck(filepath.Join(libraryPath, name+deck.Extension))
			if err != nil {
				logger.Debug("skipping decklist", zap.String("deck", name), zap.Error(err))
				continue
			}

			counts := fmt.Sprintf("%d main, %d side", d.Count(card.Mainboard), d.Count(card.Sideboard))
			if name == cfg.DefaultDeck {
				fmt.Printf("* %s (%s) %s\n", name, counts, color.GreenString("[DEFAULT]"))
			} else {
				fmt.Printf("  %s (%s)\n", name, counts)
			}
		}
		return nil
	},
}

// deckSetDefaultCmd represents the deck set-default command
var deckSetDefaultCmd = &cobra.Command{
	Use:   "set-default [deck_name]",
	Short: "Set the default decklist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deckName := args[0]

		deckPath, err := config.GetDeckPath(deckName)
		if err != nil {
			return err
		}

		// Make sure it parses
		if _, err := deck.LoadDeck(deckPath); err != nil {
			return fmt.Errorf("not a valid decklist: %w", err)
		}

		if err := config.SetDefaultDeck(deckName); err != nil {
			return fmt.Errorf("error setting default deck: %w", err)
		}

		fmt.Printf("Default deck set to: %s\n", deckName)
		return nil
	},
}

// deckInitCmd represents the deck init command
var deckInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the deck library",
	RunE: func(cmd *cobra.Command, args []string) error {
		libraryPath := config.GetDeckLibraryPath()

		if err := os.MkdirAll(libraryPath, 0755); err != nil {
			return fmt.Errorf("error creating deck library: %w", err)
		}

		fmt.Println("Deck library initialized at:", libraryPath)
		fmt.Println("You can now add decklists by copying .txt files to this directory.")
		fmt.Println("Config file initialized at:", config.GetConfigFilePath())
		return nil
	},
}

func init() {
	RootCmd.AddCommand(deckCmd)
	deckCmd.AddCommand(deckListCmd)
	deckCmd.AddCommand(deckSetDefaultCmd)
	deckCmd.AddCommand(deckInitCmd)
}
