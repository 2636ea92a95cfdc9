package deck

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/arcanaland/scrydeck/internal/card"
)

// SideboardMarker separates the mainboard from the sideboard in exported decklists
const SideboardMarker = "\n\nSIDEBOARD:\n"

// linePattern matches "<qty> <name> (<set>) <number>", where set and number are optional.
// Without a set code the name must run to the end of the line.
var linePattern = regexp.MustCompile(
	`(?m)(?P<qty>\d+) (?P<name>[\p{L}\p{N}_ :&'/,-]+)(?: \((?P<set>\w+)\)|$)(?: (?P<num>[\w★-]+))?`,
)

var (
	qtyGroup  = linePattern.SubexpIndex("qty")
	nameGroup = linePattern.SubexpIndex("name")
	setGroup  = linePattern.SubexpIndex("set")
	numGroup  = linePattern.SubexpIndex("num")
)

// Parse converts raw decklist text into card entries, mainboard first.
// Text that does not look like a card line is skipped.
func Parse(text string) []card.Entry {
	main, side, hasSide := splitSections(text)

	entries := parseSection(main, card.Mainboard)
	if hasSide {
		entries = append(entries, parseSection(side, card.Sideboard)...)
	}
	return entries
}

// UnmatchedLines returns the non-blank lines Parse ignores
func UnmatchedLines(text string) []string {
	main, side, hasSide := splitSections(text)

	sections := []string{main}
	if hasSide {
		sections = append(sections, side)
	}

	var lines []string
	for _, section := range sections {
		for _, line := range strings.Split(section, "\n") {
			line = strings.TrimSpace(line)
			if line == "" || line == strings.TrimSpace(SideboardMarker) {
				continue
			}
			if !linePattern.MatchString(line) {
				lines = append(lines, line)
			}
		}
	}
	return lines
}

func splitSections(text string) (main, side string, hasSide bool) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.SplitN(text, SideboardMarker, 2)
	if len(parts) == 2 {
		return parts[0], parts[1], true
	}
	return parts[0], "", false
}

func parseSection(section string, board card.Board) []card.Entry {
	var entries []card.Entry
	for _, m := range linePattern.FindAllStringSubmatch(section, -1) {
		qty, err := strconv.Atoi(m[qtyGroup])
		if err != nil {
			continue
		}
		entry, err := card.NewEntry(qty, m[nameGroup], m[setGroup], m[numGroup], board, m[0])
		if err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}
