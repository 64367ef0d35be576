package render

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

var (
	reHeading   = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBoldLine  = regexp.MustCompile(`^\*\*([^*]+)\*\*:?$`)
	reBold      = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet    = regexp.MustCompile(`^[\-\*]\s+(.+)$`)
	reNumbered  = regexp.MustCompile(`^\d+\.\s+(.+)$`)
	reSeparator = regexp.MustCompile(`^(_{3,}|-{3,}|\*{3,})$`)
)

// MinutesDOCX converts minutes markdown to a styled docx file.
// A line that is entirely bold is treated as a section heading.
func MinutesDOCX(title, markdown, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("%w: new docx: %w", ErrRender, err)
	}

	addStyledRun(doc.AddParagraph(""), title, true, 16)

	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || reSeparator.MatchString(trimmed) {
			continue
		}

		if m := reHeading.FindStringSubmatch(trimmed); m != nil {
			addStyledRun(doc.AddParagraph(""), m[2], true, headingSize(len(m[1])))
			continue
		}

		if m := reBoldLine.FindStringSubmatch(trimmed); m != nil {
			addStyledRun(doc.AddParagraph(""), m[1], true, 14)
			continue
		}

		if m := reBullet.FindStringSubmatch(trimmed); m != nil {
			indent := ""
			if strings.HasPrefix(line, "  ") {
				indent = "    "
			}
			addRichText(doc.AddParagraph(""), indent+"• "+m[1])
			continue
		}

		if reNumbered.MatchString(trimmed) {
			addRichText(doc.AddParagraph(""), trimmed)
			continue
		}

		addRichText(doc.AddParagraph(""), trimmed)
	}

	if err := doc.SaveTo(outputPath); err != nil {
		return fmt.Errorf("%w: save docx: %w", ErrRender, err)
	}
	return nil
}

// TranscriptDOCX writes the full transcript followed by the chunk list
func TranscriptDOCX(title, transcript string, chunks []string, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("%w: new docx: %w", ErrRender, err)
	}

	addStyledRun(doc.AddParagraph(""), title, true, 16)
	doc.AddParagraph("")
	doc.AddParagraph("").AddText(transcript).Font(fontName).Size(fontSize).Color("000000")

	if len(chunks) > 0 {
		doc.AddParagraph("")
		addStyledRun(doc.AddParagraph(""), "Chunks", true, 14)
		for _, c := range chunks {
			doc.AddParagraph("").AddText(c).Font(fontName).Size(fontSize).Color("000000")
		}
	}

	if err := doc.SaveTo(outputPath); err != nil {
		return fmt.Errorf("%w: save docx: %w", ErrRender, err)
	}
	return nil
}

func headingSize(level int) uint64 {
	switch level {
	case 1:
		return 16
	case 2:
		return 15
	case 3:
		return 14
	default:
		return fontSize
	}
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	text = cleanMarkdownInline(text)
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

func addRichText(p *docx.Paragraph, text string) {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			clean := cleanMarkdownInline(part)
			p.AddText(clean).Font(fontName).Size(fontSize).Color("000000")
		}
		if i < len(matches) {
			clean := cleanMarkdownInline(matches[i][1])
			p.AddText(clean).Font(fontName).Size(fontSize).Color("000000").Bold(true)
		}
	}
}

func cleanMarkdownInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}
