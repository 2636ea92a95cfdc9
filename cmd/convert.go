package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/arcanaland/scrydeck/internal/config"
	"github.com/arcanaland/scrydeck/internal/converter"
	"github.com/arcanaland/scrydeck/internal/pile"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var convertCmd = &cobra.Command{
	Use:   "convert [deck]",
	Short: "Convert a decklist into a Tabletop Simulator saved object",
	Long: `Convert looks up every card of a decklist on Scryfall and writes a Tabletop Simulator
saved object with a Mainboard, a Sideboard and a "Tokens & Dual Faced Cards" deck.

The decklist is taken from the deck argument, which is looked up in your deck library
(XDG_DATA_HOME/scrydeck/decks) or used as a path. Without an argument --input is read,
or your default deck when --input is not given and a default is set.

Examples:
  scrydeck convert
  scrydeck convert burn -o burn.json
  scrydeck convert -i ./lists/burn.txt -s https://example.com/sleeve.png`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")
		output, _ := cmd.Flags().GetString("output")
		sleeve, _ := cmd.Flags().GetString("sleeve")

		inputPath, err := resolveInput(cmd, args, input)
		if err != nil {
			return err
		}
		if sleeve == "" {
			sleeve = cfg.Sleeve
		}

		raw, err := os.ReadFile(inputPath)
		if err != nil {
			return fmt.Errorf("error reading decklist: %w", err)
		}
		logger.Info("converting decklist", zap.String("input", inputPath), zap.String("output", output))

		conv := converter.New(newClient(), converter.WithSleeve(sleeve), converter.WithLogger(logger))
		doc, err := conv.Convert(cmd.Context(), string(raw))

		var notFound *pile.NotFoundError
		if errors.As(err, &notFound) {
			fmt.Fprintln(os.Stderr, color.YellowString("Could not find the following cards:"))
			for _, e := range notFound.NotFound {
				line := e.Raw
				if line == "" {
					line = e.String()
				}
				fmt.Fprintln(os.Stderr, color.RedString("  %s", line))
			}
			return fmt.Errorf("%d cards could not be found", len(notFound.NotFound))
		}
		if err != nil {
			return err
		}

		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("error creating output file: %w", err)
		}
		defer file.Close()

		if err := converter.Write(file, doc); err != nil {
			return err
		}

		fmt.Printf("%s %s -> %s\n", color.GreenString("✓"), inputPath, output)
		for _, obj := range doc.ObjectStates {
			fmt.Printf("  %-28s %d cards\n", obj.Nickname, len(obj.DeckIDs))
		}
		return nil
	},
}

// resolveInput picks the decklist to convert: the deck argument, an explicit
// --input, the configured default deck, then the --input default
func resolveInput(cmd *cobra.Command, args []string, input string) (string, error) {
	if len(args) == 1 {
		return config.GetDeckPath(args[0])
	}
	if cmd.Flags().Changed("input") || cfg.DefaultDeck == "" {
		return input, nil
	}

	deckPath, err := config.GetDeckPath(cfg.DefaultDeck)
	if err != nil {
		return "", fmt.Errorf("error loading default deck: %w", err)
	}
	return deckPath, nil
}

func init() {
	RootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringP("input", "i", "deck.txt", "Decklist to read")
	convertCmd.Flags().StringP("output", "o", "deck.json", "Tabletop Simulator JSON file to write")
	convertCmd.Flags().StringP("sleeve", "s", "", "Card back image URL (defaults to the sleeve from config)")
}
