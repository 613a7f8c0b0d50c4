// Package pdf renders finalized invoices to PDF through headless Chromium.
// It consumes a complete Invoice with lines and never recomputes totals.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"
	"os"
	"strconv"
	"time"

	"transitaire-backend/models"
	"transitaire-backend/utils"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// Renderer renders invoice PDFs via headless Chromium.
type Renderer struct {
	chromiumPath string
	timeout      time.Duration
}

// NewRenderer builds a renderer from CHROMIUM_PATH and PDF_TIMEOUT_SECONDS.
func NewRenderer() Renderer {
	timeout := 15 * time.Second
	if v := os.Getenv("PDF_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			timeout = time.Duration(n) * time.Second
		}
	}
	return Renderer{
		chromiumPath: os.Getenv("CHROMIUM_PATH"),
		timeout:      timeout,
	}
}

// Render builds the invoice HTML and prints it to PDF. If Chromium is
// unavailable, it returns an error so the caller can decide to retry or
// degrade.
func (r Renderer) Render(ctx context.Context, invoice models.Invoice) ([]byte, error) {
	html, err := renderHTML(invoice)
	if err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
	)
	if r.chromiumPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(r.chromiumPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	runCtx, cancelRun := chromedp.NewContext(allocCtx)
	defer cancelRun()
	runCtx, cancelTimeout := context.WithTimeout(runCtx, r.timeout)
	defer cancelTimeout()

	var pdfBuf []byte
	dataURL := "data:text/html," + url.PathEscape(html)
	err = chromedp.Run(runCtx,
		chromedp.Navigate(dataURL),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, perr := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if perr == nil {
				pdfBuf = buf
			}
			return perr
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("chromedp run failed: %w", err)
	}
	return pdfBuf, nil
}

var invoiceTmpl = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"gnf": utils.FormatGNF,
	"date": func(t *time.Time) string {
		if t == nil {
			return ""
		}
		return t.Format("02/01/2006")
	},
}).Parse(invoiceHTML))

// balanceLabel distinguishes money still owed from an overpayment; the sign
// of AmountDue must stay visible to the client.
func balanceLabel(amountDue int64) string {
	if amountDue < 0 {
		return "Trop-perçu"
	}
	return "Reste à payer"
}

func renderHTML(invoice models.Invoice) (string, error) {
	data := struct {
		models.Invoice
		BalanceLabel string
	}{
		Invoice:      invoice,
		BalanceLabel: balanceLabel(invoice.AmountDue),
	}

	var buf bytes.Buffer
	if err := invoiceTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
