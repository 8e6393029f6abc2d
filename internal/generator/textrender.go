package generator

import (
	"strconv"
	"strings"

	"storybook-server/internal/models"
)

// Fallback phrases substituted when the profile has no data for a token.
const (
	fallbackActivities = "many fun activities"
	fallbackFamily     = "their family"
	fallbackParent     = "their parent"
)

const paragraphSeparator = "\n\n"

// FormatList joins items using serial-comma grammar:
// [] -> fallback phrase, [A] -> "A", [A B] -> "A and B",
// [A B C] -> "A, B, and C".
func FormatList(items []string) string {
	switch len(items) {
	case 0:
		return fallbackActivities
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		return strings.Join(items[:len(items)-1], ", ") + ", and " + items[len(items)-1]
	}
}

// FormatParentNames joins the set parent names with the same grammar,
// falling back to a neutral plural phrase when none are set.
func FormatParentNames(parents models.ParentNames) string {
	names := make([]string, 0, 3)
	if parents.Mother != "" {
		names = append(names, parents.Mother)
	}
	if parents.Father != "" {
		names = append(names, parents.Father)
	}
	if parents.Guardian != "" {
		names = append(names, parents.Guardian)
	}
	switch len(names) {
	case 0:
		return fallbackFamily
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
	}
}

// MainParentName picks a single parent for singular contexts,
// preferring mother, then father, then guardian.
func MainParentName(parents models.ParentNames) string {
	switch {
	case parents.Mother != "":
		return parents.Mother
	case parents.Father != "":
		return parents.Father
	case parents.Guardian != "":
		return parents.Guardian
	default:
		return fallbackParent
	}
}

// substituteTokens globally replaces every known placeholder with
// child-specific values. Unknown data never leaves a raw token behind:
// each replacement has a safe default.
func substituteTokens(text string, child models.StoryMetadata) string {
	replacer := strings.NewReplacer(
		"{childName}", child.ChildName,
		"{childAge}", strconv.Itoa(child.ChildAge),
		"{parentNames}", FormatParentNames(child.ParentNames),
		"{parentName}", MainParentName(child.ParentNames),
		"{hobbies}", FormatList(child.Preferences.Hobbies),
		"{favoriteToys}", FormatList(child.Preferences.FavoriteToys),
		"{interests}", FormatList(child.Preferences.Interests),
	)
	return replacer.Replace(text)
}

// RenderPages fills the theme template with child data and splits the
// result into at most targetPages page texts.
//
// The split is purely arithmetic: paragraphs are grouped
// ceil(paragraphCount/targetPages) per page, in original order, and a
// page's text is its paragraphs rejoined with a blank line. Fewer
// paragraphs than pages yields fewer pages; that is accepted, not an error.
func RenderPages(template string, child models.StoryMetadata, targetPages int) []string {
	text := substituteTokens(template, child)

	rawParagraphs := strings.Split(text, paragraphSeparator)
	paragraphs := make([]string, 0, len(rawParagraphs))
	for _, p := range rawParagraphs {
		if strings.TrimSpace(p) != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	if len(paragraphs) == 0 || targetPages <= 0 {
		return nil
	}

	perPage := (len(paragraphs) + targetPages - 1) / targetPages
	pages := make([]string, 0, targetPages)
	for i := 0; i < len(paragraphs); i += perPage {
		end := i + perPage
		if end > len(paragraphs) {
			end = len(paragraphs)
		}
		pages = append(pages, strings.TrimSpace(strings.Join(paragraphs[i:end], paragraphSeparator)))
	}
	return pages
}
