package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/arcanaland/scrydeck/internal/ansi"
	"github.com/arcanaland/scrydeck/internal/card"
	"github.com/arcanaland/scrydeck/internal/scryfall"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

const artSpacing = 4

var showCmd = &cobra.Command{
	Use:   "show [card name]",
	Short: "Display information about a card with ANSI art",
	Long: `Show looks a card up on Scryfall and displays its details next to ANSI terminal art.
Names are matched fuzzily unless --exact is given. Use --set and --number to show
an exact printing instead.

Examples:
  scrydeck show lightning bolt
  scrydeck show --exact "Delver of Secrets"
  scrydeck show --set m10 --number 146`,
	RunE: func(cmd *cobra.Command, args []string) error {
		exact, _ := cmd.Flags().GetBool("exact")
		set, _ := cmd.Flags().GetString("set")
		number, _ := cmd.Flags().GetString("number")
		noArt, _ := cmd.Flags().GetBool("no-art")

		client := newClient()
		ctx := cmd.Context()
		name := strings.Join(args, " ")

		var (
			rec *card.Record
			err error
		)
		switch {
		case set != "" || number != "":
			if set == "" || number == "" {
				return fmt.Errorf("--set and --number must be given together")
			}
			rec, err = client.Printing(ctx, set, number)
		case name == "":
			return fmt.Errorf("a card name or --set and --number is required")
		case exact:
			rec, err = client.Named(ctx, name)
		default:
			rec, err = client.NamedFuzzy(ctx, name)
		}
		if err != nil {
			return fmt.Errorf("error getting card: %w", err)
		}

		tokens, err := client.Tokens(ctx, rec.TokenIDs())
		if err != nil {
			logger.Warn("could not look up tokens", zap.String("card", rec.Name), zap.Error(err))
			tokens = nil
		}

		art := ""
		if !noArt {
			art = renderArt(cmd, client, rec)
		}

		displayCard(rec, tokens, art)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)

	showCmd.Flags().Bool("exact", false, "Match the card name exactly")
	showCmd.Flags().String("set", "", "Set code of the printing to show")
	showCmd.Flags().String("number", "", "Collector number of the printing to show")
	showCmd.Flags().Bool("no-art", false, "Do not download and render the card image")
}

// renderArt downloads the card image; failures only cost the art
func renderArt(cmd *cobra.Command, client *scryfall.Client, rec *card.Record) string {
	imageURL := rec.PreviewImage()
	if imageURL == "" {
		return ""
	}
	img, err := client.Image(cmd.Context(), imageURL)
	if err != nil {
		logger.Warn("could not load card image", zap.String("url", imageURL), zap.Error(err))
		return ""
	}
	return ansi.Render(img, ansi.DefaultWidth, ansi.DefaultHeight)
}

// displayCard prints the card information with its art on the left
func displayCard(rec *card.Record, tokens []card.Record, art string) {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = 80
	}

	artWidth := 0
	if art != "" {
		artWidth = ansi.DefaultWidth + artSpacing
	}
	infoWidth := width - artWidth - 4
	if infoWidth < 20 {
		infoWidth = 20
	}

	label := func(name string) string {
		return color.CyanString("%-8s", name+":")
	}

	info := []string{
		label("Card") + color.HiWhiteString("%s", rec.Name),
	}
	if rec.ManaCost != "" {
		info = append(info, label("Cost")+color.HiWhiteString("%s", rec.ManaCost))
	}
	if rec.TypeLine != "" {
		info = append(info, label("Type")+color.HiWhiteString("%s", rec.TypeLine))
	}
	setName := strings.ToUpper(rec.Set)
	if rec.SetName != "" {
		setName = fmt.Sprintf("%s (%s)", rec.SetName, strings.ToUpper(rec.Set))
	}
	info = append(info,
		label("Set")+color.HiWhiteString("%s", setName),
		label("Number")+color.HiWhiteString("%s", rec.CollectorNumber),
	)
	if rec.Rarity != "" {
		info = append(info, label("Rarity")+color.HiWhiteString("%s", rec.Rarity))
	}
	if rec.ID != uuid.Nil {
		info = append(info, label("ID")+color.HiBlackString("%s", rec.ID))
	}

	if rec.OracleText != "" {
		info = append(info, "")
		info = append(info, wrapOracle(rec.OracleText, infoWidth)...)
	}

	if rec.IsDoubleFaced() {
		for _, face := range rec.CardFaces {
			info = append(info, "", color.CyanString("%s", face.Name)+" "+color.HiBlackString("%s", face.ManaCost))
			if face.TypeLine != "" {
				info = append(info, color.HiWhiteString("%s", face.TypeLine))
			}
			if face.OracleText != "" {
				info = append(info, wrapOracle(face.OracleText, infoWidth)...)
			}
		}
	}

	if len(tokens) > 0 {
		info = append(info, "", color.CyanString("Tokens:"))
		for _, token := range tokens {
			info = append(info, fmt.Sprintf("  • %s (%s)", token.Name, strings.ToUpper(token.Set)))
		}
	}

	ansi.SideBySide(os.Stdout, art, info, artSpacing)
}

// wrapOracle wraps rules text, keeping one paragraph per ability
func wrapOracle(text string, width int) []string {
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		lines = append(lines, ansi.Wrap(paragraph, width)...)
	}
	return lines
}
