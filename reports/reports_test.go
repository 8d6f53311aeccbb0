package reports

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/anjiri1684/exam_qr_masking/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codeValues(n int) []string {
	values := make([]string, n)
	for i := range values {
		values[i] = fmt.Sprintf("%032x", i+1)
	}
	return values
}

func TestFormatScore(t *testing.T) {
	score := 92.0
	half := 64.5
	assert.Equal(t, "Not graded", FormatScore(nil))
	assert.Equal(t, "92", FormatScore(&score))
	assert.Equal(t, "64.5", FormatScore(&half))
}

func TestRevealCSV(t *testing.T) {
	score := 92.0
	data, err := RevealCSV([]models.RevealMapping{
		{StudentName: "Ada Lovelace", StudentEmail: "ada@example.com", QRCode: "abc", Score: &score},
		{StudentName: "Smith, John", StudentEmail: "john@example.com", QRCode: "def"},
	})
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Student Name", "Student Email", "QR Code", "Score"}, records[0])
	assert.Equal(t, []string{"Ada Lovelace", "ada@example.com", "abc", "92"}, records[1])
	assert.Equal(t, []string{"Smith, John", "john@example.com", "def", "Not graded"}, records[2])
}

func TestRevealCSVHeaderOnly(t *testing.T) {
	data, err := RevealCSV(nil)
	require.NoError(t, err)
	assert.Equal(t, "Student Name,Student Email,QR Code,Score\n", string(data))
}

func TestQRCodePNG(t *testing.T) {
	png, err := QRCodePNG("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}

func TestPaginateCodes(t *testing.T) {
	pages, err := PaginateCodes(codeValues(20))
	require.NoError(t, err)
	require.Len(t, pages, 3)
	assert.Len(t, pages[0].Codes, 9)
	assert.Len(t, pages[1].Codes, 9)
	assert.Len(t, pages[2].Codes, 2)
	assert.Equal(t, 3, pages[2].Number)
	assert.True(t, strings.HasPrefix(string(pages[0].Codes[0].Image), "data:image/png;base64,"))

	pages, err = PaginateCodes(nil)
	require.NoError(t, err)
	assert.Empty(t, pages)
}

func TestBuildSheetHTML(t *testing.T) {
	values := codeValues(10)
	html, err := BuildSheetHTML("Algorithms 101", values)
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(html, `class="page"`))
	assert.Equal(t, 2, strings.Count(html, "Algorithms 101"))
	assert.Contains(t, html, "Page 1")
	assert.Contains(t, html, "Page 2")
	assert.NotContains(t, html, "Page 3")
	for _, v := range values {
		assert.Contains(t, html, v)
	}
}

func TestBuildSheetHTMLEscapesTitle(t *testing.T) {
	html, err := BuildSheetHTML("<script>x</script>", codeValues(1))
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>x</script>")
}

type stubRenderer struct {
	html string
	err  error
}

func (r *stubRenderer) Render(ctx context.Context, html string) ([]byte, error) {
	r.html = html
	if r.err != nil {
		return nil, r.err
	}
	return []byte("%PDF-1.4 stub"), nil
}

func TestQRSheetPDF(t *testing.T) {
	r := &stubRenderer{}
	pdf, err := QRSheetPDF(context.Background(), r, "Physics", codeValues(3))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 stub", string(pdf))
	assert.Contains(t, r.html, "Physics")

	boom := errors.New("chrome not found")
	_, err = QRSheetPDF(context.Background(), &stubRenderer{err: boom}, "Physics", codeValues(3))
	assert.ErrorIs(t, err, boom)
}
