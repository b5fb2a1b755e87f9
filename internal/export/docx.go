package export

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/nguyentantai21042004/visionmeet/internal/meeting"
)

const (
	fontName = "Calibri"
	fontSize = 12
)

var (
	reHeading  = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBold     = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet   = regexp.MustCompile(`^[\-\*]\s+(.+)$`)
	reNumbered = regexp.MustCompile(`^\d+\.\s+(.+)$`)
)

// WriteReport renders the meeting record as a styled docx: the summary (or
// the summarization error), followed by per-speaker panels.
func WriteReport(record *meeting.Record, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), record.ID, true, 16)
	doc.AddParagraph("")

	addStyledRun(doc.AddParagraph(""), "Summary", true, 14)
	if record.Summary != "" {
		addMarkdown(doc, record.Summary)
	} else if record.SummaryErr != "" {
		addRichText(doc.AddParagraph(""), "Summary unavailable: "+record.SummaryErr)
	} else {
		addRichText(doc.AddParagraph(""), "No summary was generated for this meeting.")
	}

	doc.AddParagraph("")
	addStyledRun(doc.AddParagraph(""), "Speakers", true, 14)
	for _, speaker := range record.Speakers {
		addStyledRun(doc.AddParagraph(""), speaker.Name, true, fontSize)
		addRichText(doc.AddParagraph(""), speakerStats(speaker))
		if speaker.Sample != "" {
			addRichText(doc.AddParagraph(""), "Sample: "+speaker.Sample)
		}
	}

	return doc.SaveTo(outputPath)
}

// WriteTranscript renders the timestamped transcript as a plain docx.
func WriteTranscript(record *meeting.Record, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), record.ID+" - Transcript", true, 16)
	doc.AddParagraph("")

	for _, seg := range record.Transcript {
		if seg.Text == "" {
			continue
		}
		p := doc.AddParagraph("")
		p.AddText(fmt.Sprintf("[%s] %s", seg.Label, seg.Text)).Font(fontName).Size(fontSize).Color("000000")
	}

	return doc.SaveTo(outputPath)
}

// speakerStats formats the per-speaker counters, showing Unknown for
// fallback profiles.
func speakerStats(p meeting.Profile) string {
	duration, segments := "Unknown", "Unknown"
	if p.Duration != nil {
		duration = fmt.Sprintf("%ds", *p.Duration)
	}
	if p.Segments != nil {
		segments = fmt.Sprintf("%d", *p.Segments)
	}
	return fmt.Sprintf("Speaking time: %s, segments: %s", duration, segments)
}

// addMarkdown renders lightweight markdown (headings, bullets, bold) into
// styled paragraphs.
func addMarkdown(doc *docx.RootDoc, markdown string) {
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "---" {
			continue
		}

		if m := reHeading.FindStringSubmatch(trimmed); m != nil {
			addStyledRun(doc.AddParagraph(""), m[2], true, headingSize(len(m[1])))
			continue
		}

		if m := reBullet.FindStringSubmatch(trimmed); m != nil {
			addRichText(doc.AddParagraph(""), "• "+m[1])
			continue
		}

		if m := reNumbered.FindStringSubmatch(trimmed); m != nil {
			addRichText(doc.AddParagraph(""), trimmed)
			continue
		}

		addRichText(doc.AddParagraph(""), trimmed)
	}
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
