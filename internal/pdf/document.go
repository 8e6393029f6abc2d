package pdf

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"storybook-server/internal/models"
)

// namePattern matches capitalized words (and multi-word runs of them),
// candidates for name highlighting inside page text.
var namePattern = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`)

// familyWords are never highlighted even when capitalized: выделение
// предназначено для имен, а не для слов-обращений к родителям.
var familyWords = []string{"mom", "dad", "mother", "father", "parent", "guardian"}

const documentCSS = `
        @import url('https://fonts.googleapis.com/css2?family=Fredoka:wght@300;400;500;600&family=Poppins:wght@300;400;500&display=swap');

        * {
            margin: 0;
            padding: 0;
            box-sizing: border-box;
        }

        body {
            font-family: 'Poppins', sans-serif;
            line-height: 1.6;
            color: #333;
            background: linear-gradient(135deg, #f5f7fa 0%, #c3cfe2 100%);
        }

        .story-container {
            max-width: 210mm;
            margin: 0 auto;
            background: white;
            box-shadow: 0 0 20px rgba(0,0,0,0.1);
        }

        .story-header {
            background: linear-gradient(135deg, #667eea 0%, #764ba2 100%);
            color: white;
            padding: 40px 30px;
            text-align: center;
        }

        .story-title {
            font-family: 'Fredoka', cursive;
            font-size: 2.5rem;
            font-weight: 600;
            margin-bottom: 10px;
            text-shadow: 2px 2px 4px rgba(0,0,0,0.3);
        }

        .story-subtitle {
            font-size: 1.2rem;
            font-weight: 300;
            opacity: 0.9;
        }

        .story-page {
            padding: 30px;
            min-height: calc(297mm - 80px);
            display: flex;
            flex-direction: column;
            position: relative;
        }

        .page-number {
            position: absolute;
            top: 15px;
            right: 30px;
            font-family: 'Fredoka', cursive;
            font-size: 1.1rem;
            color: #6B73FF;
            background: rgba(107, 115, 255, 0.1);
            padding: 5px 12px;
            border-radius: 15px;
        }

        .page-content {
            flex: 1;
            display: flex;
            flex-direction: column;
            justify-content: center;
            gap: 30px;
            margin-top: 20px;
        }

        .page-image {
            text-align: center;
            margin-bottom: 20px;
        }

        .page-image img {
            max-width: 100%;
            max-height: 400px;
            border-radius: 15px;
            box-shadow: 0 10px 30px rgba(0,0,0,0.2);
            object-fit: cover;
        }

        .page-text {
            font-size: 1.3rem;
            line-height: 1.8;
            text-align: center;
            color: #444;
            font-weight: 400;
        }

        .page-text p {
            margin-bottom: 20px;
        }

        .child-name {
            color: #6B73FF;
            font-weight: 600;
            font-family: 'Fredoka', cursive;
        }

        .page-break {
            page-break-after: always;
        }

        .story-footer {
            background: #f8f9fa;
            padding: 30px;
            text-align: center;
            color: #666;
            border-top: 1px solid #e9ecef;
        }

        .footer-message {
            font-family: 'Fredoka', cursive;
            font-size: 1.3rem;
            margin-bottom: 10px;
            color: #6B73FF;
        }

        .footer-subtitle {
            font-size: 1rem;
            font-style: italic;
        }

        @media print {
            body {
                background: white;
            }

            .story-container {
                box-shadow: none;
            }
        }

        .first-letter {
            font-size: 3rem;
            float: left;
            line-height: 1;
            padding-right: 8px;
            margin-top: 4px;
            font-family: 'Fredoka', cursive;
            color: #6B73FF;
        }
`

// BuildStoryHTML renders the complete print-ready HTML document for a story.
// now is injected so tests can pin the footer date.
func BuildStoryHTML(story *models.Story, now time.Time) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("    <meta charset=\"UTF-8\">\n")
	b.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	fmt.Fprintf(&b, "    <title>%s</title>\n", html.EscapeString(story.Title))
	fmt.Fprintf(&b, "    <style>%s</style>\n</head>\n<body>\n", documentCSS)

	b.WriteString("    <div class=\"story-container\">\n")
	b.WriteString("        <div class=\"story-header\">\n")
	fmt.Fprintf(&b, "            <h1 class=\"story-title\">%s</h1>\n", html.EscapeString(story.Title))
	fmt.Fprintf(&b, "            <p class=\"story-subtitle\">A personalized story for %s</p>\n",
		html.EscapeString(story.Metadata.ChildName))
	b.WriteString("        </div>\n")

	for i, page := range story.Pages {
		b.WriteString("        <div class=\"story-page\">\n")
		fmt.Fprintf(&b, "            <div class=\"page-number\">%d</div>\n", page.PageNumber)
		b.WriteString("            <div class=\"page-content\">\n")
		if page.ImageURL != nil {
			b.WriteString("                <div class=\"page-image\">\n")
			fmt.Fprintf(&b, "                    <img src=\"%s\" alt=\"Story illustration\" />\n",
				html.EscapeString(*page.ImageURL))
			b.WriteString("                </div>\n")
		}
		fmt.Fprintf(&b, "                <div class=\"page-text\">%s</div>\n", FormatPageText(page.Text))
		b.WriteString("            </div>\n")
		b.WriteString("        </div>\n")
		if i < len(story.Pages)-1 {
			b.WriteString("        <div class=\"page-break\"></div>\n")
		}
	}

	b.WriteString("        <div class=\"story-footer\">\n")
	b.WriteString("            <div class=\"footer-message\">The End ✨</div>\n")
	b.WriteString("            <div class=\"footer-subtitle\">\n")
	b.WriteString("                Created with love by StoryBook<br>\n")
	fmt.Fprintf(&b, "                Generated on %s\n", now.Format("January 2, 2006"))
	b.WriteString("            </div>\n")
	b.WriteString("        </div>\n")
	b.WriteString("    </div>\n</body>\n</html>")

	return b.String()
}

// FormatPageText turns raw page text into the HTML body of a page:
// paragraphs become <p> blocks, capitalized names get a highlight span and
// each paragraph opens with a drop cap.
//
// The drop cap takes the first rune of the raw paragraph, so a paragraph
// opening with the child's name keeps valid markup: the rest of that word
// simply goes unhighlighted.
func FormatPageText(text string) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	for _, paragraph := range strings.Split(text, "\n\n") {
		paragraph = strings.TrimSpace(paragraph)
		if paragraph == "" {
			continue
		}

		first, size := utf8.DecodeRuneInString(paragraph)
		rest := paragraph[size:]

		b.WriteString("<p>")
		fmt.Fprintf(&b, `<span class="first-letter">%s</span>`, html.EscapeString(string(first)))
		b.WriteString(highlightNames(html.EscapeString(rest)))
		b.WriteString("</p>")
	}
	return b.String()
}

// highlightNames wraps capitalized name-like runs in a highlight span,
// leaving family words (Mom, Dad, ...) untouched.
func highlightNames(escaped string) string {
	return namePattern.ReplaceAllStringFunc(escaped, func(match string) string {
		lower := strings.ToLower(match)
		for _, word := range familyWords {
			if strings.Contains(lower, word) {
				return match
			}
		}
		return `<span class="child-name">` + match + `</span>`
	})
}
