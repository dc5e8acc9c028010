package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/jaytaylor/html2text"
	m "github.com/tienduong-21/extract-infor/internal/model"
)

// Mailbox lists HTML email files and converts them to plain text for the
// extraction prompt.
type Mailbox interface {
	// Emails returns the HTML files under dir, sorted by name.
	Emails(dir m.Path) ([]m.Path, error)

	// PlainText reads one email and strips its markup, keeping link targets.
	PlainText(path m.Path) (string, error)
}

// LocalMailbox reads emails from a local directory.
type LocalMailbox struct{}

// NewLocalMailbox creates a new LocalMailbox.
func NewLocalMailbox() *LocalMailbox {
	return &LocalMailbox{}
}

// Emails implements Mailbox. Extension filtering is backed by content
// sniffing so a stray .html file holding something else is skipped early.
func (a *LocalMailbox) Emails(dir m.Path) ([]m.Path, error) {
	entries, err := os.ReadDir(string(dir))
	if err != nil {
		return nil, fmt.Errorf("mailbox directory %s: %w", dir, err)
	}

	var emails []m.Path

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".html" && ext != ".htm" {
			continue
		}

		path := filepath.Join(string(dir), entry.Name())

		mime, err := mimetype.DetectFile(path)
		if err != nil || !mime.Is("text/html") {
			continue
		}

		emails = append(emails, m.Path(path))
	}

	sort.Slice(emails, func(i, j int) bool { return emails[i] < emails[j] })

	return emails, nil
}

// PlainText implements Mailbox.
func (a *LocalMailbox) PlainText(path m.Path) (string, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return "", fmt.Errorf("read email %s: %w", path, err)
	}

	text, err := html2text.FromString(string(data), html2text.Options{
		OmitLinks: false,
	})
	if err != nil {
		return "", fmt.Errorf("convert email %s: %w", path, err)
	}

	return text, nil
}
