package adapter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	m "github.com/tienduong-21/extract-infor/internal/model"
)

const orderEmailHTML = `<!DOCTYPE html>
<html>
<head><title>Order Confirmation</title></head>
<body>
  <h1>Thanks for your order!</h1>
  <p>Order <b>FO123456789</b> has shipped.</p>
  <table>
    <tr><td>Widget</td><td>2</td><td>$10.00</td></tr>
  </table>
  <a href="https://example.com/track/1Z999">Track your package</a>
</body>
</html>`

func TestLocalMailbox_EmailsSortedAndSniffed(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "b.html", orderEmailHTML)
	writeFile(t, dir, "a.htm", orderEmailHTML)
	writeFile(t, dir, "not-mail.txt", "plain text")
	// An .html file whose content is not HTML is skipped by sniffing.
	writeFile(t, dir, "fake.html", `{"order_id": "FO1"}`)

	emails, err := NewLocalMailbox().Emails(m.Path(dir))

	require.NoError(t, err)
	require.Equal(t, []m.Path{
		m.Path(filepath.Join(dir, "a.htm")),
		m.Path(filepath.Join(dir, "b.html")),
	}, emails)
}

func TestLocalMailbox_MissingDirectory(t *testing.T) {
	_, err := NewLocalMailbox().Emails(m.Path(filepath.Join(t.TempDir(), "absent")))

	require.Error(t, err)
	require.ErrorContains(t, err, "mailbox directory")
}

func TestLocalMailbox_PlainTextStripsMarkup(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "order.html", orderEmailHTML)

	text, err := NewLocalMailbox().PlainText(m.Path(filepath.Join(dir, "order.html")))

	require.NoError(t, err)
	require.Contains(t, text, "FO123456789")
	require.Contains(t, text, "Widget")
	require.NotContains(t, text, "<table>")

	// Link targets survive so tracking URLs reach the prompt.
	require.Contains(t, text, "https://example.com/track/1Z999")
}
