package reader_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"novelreader/reader"
)

func TestSplitParagraphs_PlainText(t *testing.T) {
	body := "First paragraph.\n\n  Second paragraph.  \n\t\nThird."

	got := reader.SplitParagraphs(body)

	assert.Equal(t, []string{"First paragraph.", "Second paragraph.", "Third."}, got)
}

func TestSplitParagraphs_PreservesOrder(t *testing.T) {
	body := "c\nb\na"

	assert.Equal(t, []string{"c", "b", "a"}, reader.SplitParagraphs(body))
}

func TestSplitParagraphs_HTML(t *testing.T) {
	body := `<div><p>One</p><p> Two </p><p></p><p><img src="x.png"/></p><p>Three</p></div>`

	got := reader.SplitParagraphs(body)

	assert.Equal(t, []string{"One", "Two", "Three"}, got)
}

func TestSplitParagraphs_Empty(t *testing.T) {
	assert.Empty(t, reader.SplitParagraphs(""))
	assert.Empty(t, reader.SplitParagraphs("   \n \n  "))
}
