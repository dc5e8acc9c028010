package domain

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/tienduong-21/extract-infor/internal/adapter"
	"github.com/tienduong-21/extract-infor/internal/controller"
	m "github.com/tienduong-21/extract-infor/internal/model"
)

// ExtractArgs contains the arguments for an extraction run.
type ExtractArgs struct {
	MailboxDir m.Path
	OutputDir  m.Path
}

// Extractor turns a mailbox of HTML emails into validated order documents.
type Extractor interface {
	Extract(ctx context.Context, args ExtractArgs) error
}

type extractor struct {
	mailbox adapter.Mailbox
	invoker adapter.ModelInvoker
	store   adapter.DocumentStore
	prompts *PromptProvider
	ui      controller.UI
}

// NewExtractor constructs an Extractor from its collaborators.
func NewExtractor(
	mailbox adapter.Mailbox,
	invoker adapter.ModelInvoker,
	store adapter.DocumentStore,
	prompts *PromptProvider,
	ui controller.UI,
) Extractor {
	return &extractor{
		mailbox: mailbox,
		invoker: invoker,
		store:   store,
		prompts: prompts,
		ui:      ui,
	}
}

// Extract implements Extractor. Each email is processed independently; a
// failed email is reported and skipped, never aborting the run.
func (e *extractor) Extract(ctx context.Context, args ExtractArgs) error {
	emails, err := e.mailbox.Emails(args.MailboxDir)
	if err != nil {
		return fmt.Errorf("list mailbox: %w", err)
	}

	failures := 0

	for _, email := range emails {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := e.processEmail(ctx, email, args.OutputDir)
		if err != nil {
			failures++

			slog.Warn("extraction failed", "email", email, "error", err)
		}

		e.ui.DisplayExtractResult(ctx, email, err)
	}

	slog.Info("extraction run finished",
		"emails", len(emails), "succeeded", len(emails)-failures, "failed", failures)

	return nil
}

func (e *extractor) processEmail(ctx context.Context, email m.Path, outputDir m.Path) error {
	text, err := e.mailbox.PlainText(email)
	if err != nil {
		return err
	}

	prompt, err := e.prompts.ExtractionPrompt(text)
	if err != nil {
		return fmt.Errorf("render prompt: %w", err)
	}

	response, err := e.invoker.Generate(ctx, prompt)
	if err != nil {
		return err
	}

	doc, err := e.store.ValidateExtraction([]byte(StripFences(response)))
	if err != nil {
		return err
	}

	stem := strings.TrimSuffix(filepath.Base(string(email)), filepath.Ext(string(email)))
	target := m.Path(filepath.Join(string(outputDir), stem+".json"))

	if err := e.store.Save(target, doc); err != nil {
		return err
	}

	slog.Debug("extraction saved", "email", email, "output", target)

	return nil
}

// StripFences removes the markdown code fences Gemini occasionally wraps
// around its JSON despite the prompt forbidding them.
func StripFences(response string) string {
	cleaned := strings.TrimSpace(response)

	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")

		if end := strings.LastIndex(cleaned, "```"); end >= 0 {
			cleaned = cleaned[:end]
		}
	}

	return strings.Trim(strings.TrimSpace(cleaned), "`")
}
