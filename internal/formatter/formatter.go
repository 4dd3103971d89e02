// package formatter renders a playlist and its songs as CSV, Markdown, plain text or JSON
package formatter

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/vibes/internal/models"
	"github.com/desertthunder/vibes/internal/shared"
)

// Format names an output encoding.
type Format string

const (
	Text     Format = "text"
	Markdown Format = "markdown"
	CSV      Format = "csv"
	JSON     Format = "json"
)

// Formats lists the accepted values of --format.
var Formats = []Format{Text, Markdown, CSV, JSON}

// ParseFormat maps a flag value to a [Format]. "md" is accepted for Markdown.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", Text:
		return Text, nil
	case "md", Markdown:
		return Markdown, nil
	case CSV, JSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: format %q (want text, markdown, csv or json)", shared.ErrInvalidFlag, s)
	}
}

// Export is a playlist together with its songs in display order.
type Export struct {
	Playlist models.Playlist `json:"playlist"`
	Songs    []models.Song   `json:"songs"`
}

// Render encodes export in the given format.
func Render(export *Export, format Format) ([]byte, error) {
	switch format {
	case Text:
		return ExportToText(export)
	case Markdown:
		return ExportToMarkdown(export, "")
	case CSV:
		return ExportToCSV(export)
	case JSON:
		return ExportToJSON(export)
	default:
		return nil, fmt.Errorf("%w: format %q", shared.ErrInvalidFlag, format)
	}
}

// FormatLikes renders n with comma thousands separators, e.g. 12345 as "12,345".
func FormatLikes(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// Summary renders the header line under the playlist title: author, likes, song count and total length.
func Summary(playlist models.Playlist, songs []models.Song) string {
	noun := "songs"
	if len(songs) == 1 {
		noun = "song"
	}
	return fmt.Sprintf("%s • %s likes • %d %s, %s",
		playlist.Author, FormatLikes(playlist.Likes), len(songs), noun, models.TotalDuration(songs))
}

// ExportToCSV converts an Export to CSV format with columns: #, ID, Title, Artist, Album, Duration, Meaning
func ExportToCSV(export *Export) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"#", "ID", "Title", "Artist", "Album", "Duration", "Meaning"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, song := range export.Songs {
		record := []string{
			strconv.Itoa(i + 1),
			strconv.FormatInt(song.ID, 10),
			song.Title,
			song.Artist,
			song.Album,
			song.Duration,
			song.MeaningText(),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts an Export to Markdown format with optional cover image
func ExportToMarkdown(export *Export, imageFilename string) ([]byte, error) {
	var buf bytes.Buffer
	p := export.Playlist

	fmt.Fprintf(&buf, "# %s\n\n", p.Name)

	if imageFilename != "" {
		fmt.Fprintf(&buf, "![Cover](%s)\n\n", imageFilename)
	}

	if d := p.DescriptionText(); d != "" {
		fmt.Fprintf(&buf, "%s\n\n", d)
	}

	fmt.Fprintf(&buf, "**Author**: %s\n", p.Author)
	fmt.Fprintf(&buf, "**Likes**: %s\n", FormatLikes(p.Likes))
	fmt.Fprintf(&buf, "**Songs**: %d\n", len(export.Songs))
	fmt.Fprintf(&buf, "**Length**: %s\n\n", models.TotalDuration(export.Songs))

	buf.WriteString("## Songs\n\n")
	buf.WriteString("| # | Title | Artist | Album | Duration |\n")
	buf.WriteString("|---|-------|--------|-------|----------|\n")
	for i, song := range export.Songs {
		fmt.Fprintf(&buf, "| %d | %s | %s | %s | %s |\n",
			i+1, escapeCell(song.Title), escapeCell(song.Artist), escapeCell(song.Album), song.Duration)
	}

	var meanings bytes.Buffer
	for _, song := range export.Songs {
		if m := song.MeaningText(); m != "" {
			fmt.Fprintf(&meanings, "### %s - %s\n\n%s\n\n", song.Title, song.Artist, m)
		}
	}
	if meanings.Len() > 0 {
		buf.WriteString("\n## Meanings\n\n")
		buf.Write(meanings.Bytes())
	}

	return buf.Bytes(), nil
}

// ExportToText converts an Export to plain text format
func ExportToText(export *Export) ([]byte, error) {
	var buf bytes.Buffer
	p := export.Playlist

	fmt.Fprintf(&buf, "Playlist: %s\n", p.Name)
	if d := p.DescriptionText(); d != "" {
		fmt.Fprintf(&buf, "Description: %s\n", d)
	}
	fmt.Fprintf(&buf, "%s\n\n", Summary(p, export.Songs))

	for i, song := range export.Songs {
		fmt.Fprintf(&buf, "%2d. %s - %s (%s) [%s]\n", i+1, song.Artist, song.Title, song.Album, song.Duration)
	}

	return buf.Bytes(), nil
}

// ExportToJSON converts an Export to indented JSON using the API field names
func ExportToJSON(export *Export) ([]byte, error) {
	songs := export.Songs
	if songs == nil {
		songs = []models.Song{}
	}
	data, err := json.MarshalIndent(Export{Playlist: export.Playlist, Songs: songs}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return append(data, '\n'), nil
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("%w: empty URL provided", shared.ErrInvalidInput)
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}

// MarkdownExportResult contains information about files created by WriteMarkdownExport
type MarkdownExportResult struct {
	Directory  string
	Files      []string
	CoverImage string
	Warning    error
}

// WriteMarkdownExport writes {dir}/README.md and, when client is non-nil, {dir}/cover.jpg downloaded from the
// playlist cover URL. A failed download is reported in Warning and does not fail the export.
func WriteMarkdownExport(ctx context.Context, export *Export, outputDir string, client *http.Client) (*MarkdownExportResult, error) {
	if outputDir == "" {
		outputDir = fmt.Sprintf("playlist_%d", export.Playlist.ID)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	result := &MarkdownExportResult{Directory: outputDir, Files: []string{}}

	var coverImageFilename string
	if client != nil && export.Playlist.CoverURL != "" {
		imageData, err := DownloadImage(ctx, client, export.Playlist.CoverURL)
		if err != nil {
			result.Warning = err
		} else {
			coverImageFilename = "cover.jpg"
			coverImagePath := filepath.Join(outputDir, coverImageFilename)
			if err := os.WriteFile(coverImagePath, imageData, 0644); err != nil {
				result.Warning = fmt.Errorf("failed to save cover image: %w", err)
				coverImageFilename = ""
			} else {
				result.CoverImage = coverImagePath
				result.Files = append(result.Files, coverImagePath)
			}
		}
	}

	mdData, err := ExportToMarkdown(export, coverImageFilename)
	if err != nil {
		return nil, fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := filepath.Join(outputDir, "README.md")
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write Markdown file: %w", err)
	}

	result.Files = append(result.Files, mdFile)
	return result, nil
}

// WriteFile renders export in format and writes it to path.
//
// Defaults to playlist_{id}.{ext} as the filename.
func WriteFile(export *Export, format Format, path string) (string, error) {
	if path == "" {
		path = fmt.Sprintf("playlist_%d.%s", export.Playlist.ID, extension(format))
	}

	data, err := Render(export, format)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s file: %w", format, err)
	}

	return path, nil
}

func extension(f Format) string {
	switch f {
	case Markdown:
		return "md"
	case Text:
		return "txt"
	default:
		return string(f)
	}
}
