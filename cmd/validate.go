package cmd

import (
	"fmt"

	"github.com/arcanaland/scrydeck/internal/config"
	"github.com/arcanaland/scrydeck/internal/validator"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [deck]",
	Short: "Check a decklist before converting it",
	Long: `Validate checks that a decklist can be converted without surprises.
It reports lines that are not card entries, cards without a set code or collector number,
cards listed twice on the same board and oversized sideboards. No cards are looked up.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deckPath, err := config.GetDeckPath(args[0])
		if err != nil {
			return err
		}

		v := validator.NewValidator(deckPath)
		results, err := v.Validate()
		if err != nil {
			return fmt.Errorf("validation error: %w", err)
		}

		fmt.Println("Validation Results:")
		fmt.Println("-------------------")

		if len(results.Errors) == 0 {
			fmt.Printf("%s Decklist '%s' is valid.\n", color.GreenString("✅"), deckPath)
		} else {
			fmt.Printf("%s Decklist '%s' has %d validation errors:\n", color.RedString("❌"), deckPath, len(results.Errors))
			for i, err := range results.Errors {
				fmt.Printf("%d. %s\n", i+1, color.RedString("%s", err))
			}
			return fmt.Errorf("validation failed")
		}

		if len(results.Warnings) > 0 {
			fmt.Println("\nWarnings:")
			for i, warn := range results.Warnings {
				fmt.Printf("%d. %s\n", i+1, color.YellowString("%s", warn))
			}
		}

		return nil
	},
}
