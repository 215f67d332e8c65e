package extract_test

import (
	"strings"
	"testing"

	"lexaudit-backend/extract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextReadsPlainText(t *testing.T) {
	text, err := extract.Text(strings.NewReader("Article 1. Content."), "law.txt")
	require.NoError(t, err)
	assert.Equal(t, "Article 1. Content.", text)
}

func TestTextReadsMarkdown(t *testing.T) {
	text, err := extract.Text(strings.NewReader("# Law\n\nArticle 1."), "law.md")
	require.NoError(t, err)
	assert.Equal(t, "# Law\n\nArticle 1.", text)
}

func TestTextRejectsEmptyDocument(t *testing.T) {
	_, err := extract.Text(strings.NewReader("   \n\t  "), "empty.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no extractable text")
}

func TestTextBinaryFormatsNeedConversionService(t *testing.T) {
	for _, filename := range []string{"contract.pdf", "contract.doc", "contract.docx"} {
		_, err := extract.Text(strings.NewReader("binary"), filename)
		assert.ErrorIs(t, err, extract.ErrUnsupportedFormat, filename)
	}
}

func TestTextUnknownExtension(t *testing.T) {
	_, err := extract.Text(strings.NewReader("data"), "contract.xlsx")
	assert.ErrorIs(t, err, extract.ErrUnsupportedFormat)
}
