package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	m "github.com/tienduong-21/extract-infor/internal/model"
)

func newStore(t *testing.T) *JSONDocumentStore {
	t.Helper()

	schema, err := m.LoadOrderSchema()
	require.NoError(t, err)

	store, err := NewJSONDocumentStore(schema)
	require.NoError(t, err)

	return store
}

func TestJSONDocumentStore_LoadDecodesDocument(t *testing.T) {
	store := newStore(t)

	dir := t.TempDir()
	writeFile(t, dir, "order-1.json", `{
		"order_id": "FO123",
		"line_items": [{"product_name": "Widget", "quantity": "2"}]
	}`)

	doc, err := store.Load(m.Path(filepath.Join(dir, "order-1.json")), m.SideExpected)

	require.NoError(t, err)
	require.Equal(t, "FO123", doc.Fields["order_id"])
	require.Len(t, doc.LineItems, 1)
}

func TestJSONDocumentStore_LoadMissingFile(t *testing.T) {
	store := newStore(t)

	_, err := store.Load(m.Path(filepath.Join(t.TempDir(), "absent.json")), m.SideActual)

	require.Error(t, err)
	require.ErrorContains(t, err, "actual")
}

func TestJSONDocumentStore_DecodeInvalidJSON(t *testing.T) {
	store := newStore(t)

	_, err := store.Decode([]byte("{not json"), m.SideActual)

	var malformed *m.MalformedDocumentError
	require.ErrorAs(t, err, &malformed)
	require.Equal(t, m.SideActual, malformed.Side)
	require.Contains(t, malformed.Reason, "invalid JSON")
}

func TestJSONDocumentStore_DecodeToleratesLooseLeafTypes(t *testing.T) {
	store := newStore(t)

	// Loading scored corpus files enforces shape only; a numeric leaf in a
	// hand-labeled file is stringified, not rejected.
	doc, err := store.Decode([]byte(`{"order_total_price": 25.5, "line_items": []}`), m.SideExpected)

	require.NoError(t, err)
	require.Equal(t, "25.5", doc.Fields["order_total_price"])
}

func TestJSONDocumentStore_ValidateExtractionRejectsLooseLeafTypes(t *testing.T) {
	store := newStore(t)

	// Fresh extractions face the strict schema: every leaf must be a string.
	_, err := store.ValidateExtraction([]byte(`{"order_total_price": 25.5, "line_items": []}`))

	var malformed *m.MalformedDocumentError
	require.ErrorAs(t, err, &malformed)
	require.Contains(t, malformed.Reason, "schema violation")
}

func TestJSONDocumentStore_ValidateExtractionAcceptsWellFormed(t *testing.T) {
	store := newStore(t)

	doc, err := store.ValidateExtraction([]byte(`{
		"order_id": "FO123",
		"order_total_price": "$25.00",
		"line_items": [{"product_name": "Widget", "product_price": "$25.00"}]
	}`))

	require.NoError(t, err)
	require.Equal(t, "FO123", doc.Fields["order_id"])
}

func TestJSONDocumentStore_SaveRoundTrip(t *testing.T) {
	store := newStore(t)

	doc := m.Document{
		Fields:    map[string]string{"order_id": "FO123"},
		LineItems: []m.LineItem{{"product_name": "Widget"}},
	}

	target := m.Path(filepath.Join(t.TempDir(), "out", "order-1.json"))
	require.NoError(t, store.Save(target, doc))

	loaded, err := store.Load(target, m.SideActual)
	require.NoError(t, err)
	require.Equal(t, "FO123", loaded.Fields["order_id"])
	require.Len(t, loaded.LineItems, 1)

	data, err := os.ReadFile(string(target))
	require.NoError(t, err)
	require.Contains(t, string(data), "\n")
}
