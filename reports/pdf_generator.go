package reports

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// CodesPerPage is a 3x3 grid.
const CodesPerPage = 9

// A4 in inches, as chrome expects.
const (
	a4Width  = 8.27
	a4Height = 11.69
)

//go:embed templates/qr_sheet.html
var templateFS embed.FS

var sheetTemplate = template.Must(template.ParseFS(templateFS, "templates/qr_sheet.html"))

type SheetCode struct {
	Value string
	Image template.URL
}

type SheetPage struct {
	Number int
	Codes  []SheetCode
}

type sheetData struct {
	Title string
	Pages []SheetPage
}

// PaginateCodes lays code values out nine to a page.
func PaginateCodes(values []string) ([]SheetPage, error) {
	var pages []SheetPage
	for i, v := range values {
		if i%CodesPerPage == 0 {
			pages = append(pages, SheetPage{Number: len(pages) + 1})
		}
		img, err := qrDataURI(v)
		if err != nil {
			return nil, err
		}
		last := &pages[len(pages)-1]
		last.Codes = append(last.Codes, SheetCode{Value: v, Image: img})
	}
	return pages, nil
}

func BuildSheetHTML(title string, values []string) (string, error) {
	pages, err := PaginateCodes(values)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := sheetTemplate.Execute(&buf, sheetData{Title: title, Pages: pages}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type PDFRenderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
}

// ChromeRenderer prints HTML to PDF through a headless Chrome.
type ChromeRenderer struct {
	Timeout time.Duration
}

func (r ChromeRenderer) Render(ctx context.Context, htmlContent string) ([]byte, error) {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	ctx, cancel = chromedp.NewContext(ctx)
	defer cancel()

	var pdfBuffer []byte
	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, htmlContent).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			pdf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4Width).
				WithPaperHeight(a4Height).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfBuffer = pdf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuffer, nil
}

// QRSheetPDF renders the printable sheet for an exam's codes.
func QRSheetPDF(ctx context.Context, r PDFRenderer, title string, values []string) ([]byte, error) {
	html, err := BuildSheetHTML(title, values)
	if err != nil {
		return nil, err
	}
	return r.Render(ctx, html)
}
