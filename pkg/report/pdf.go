package report

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/helmcode/medicheck/pkg/metrics"
	"github.com/helmcode/medicheck/pkg/model"
)

// DefaultFilename is the name reports are offered for download under.
const DefaultFilename = "MediCheck_Report.pdf"

// ContentType of the rendered report.
const ContentType = "application/pdf"

// Layout, in millimetres on an A4 page.
const (
	marginLeft    = 20.0
	indentLeft    = 25.0
	contentWidth  = 170.0
	pageTop       = 20.0
	pageBottom    = 282.0
	sectionStart  = 60.0
	labelAdvance  = 7.0
	lineAdvance   = 5.0
	itemGap       = 5.0
	titleAdvance  = 10.0
	sectionGap    = 10.0
	disclaimerGap = 20.0
	fontFamily    = "Helvetica"
)

type Renderer struct {
	now func() time.Time
}

type Option func(*Renderer)

// WithClock pins the clock used for the report date and PDF metadata.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		r.now = now
	}
}

func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render lays out the analysis as a PDF and returns its bytes. Identical
// inputs with the same clock produce identical bytes.
func (r *Renderer) Render(result *model.AnalysisResult, symptoms string) ([]byte, error) {
	data, err := r.render(result, symptoms)
	if err != nil {
		metrics.ReportsRenderedTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.ReportsRenderedTotal.WithLabelValues("ok").Inc()
	return data, nil
}

func (r *Renderer) render(result *model.AnalysisResult, symptoms string) ([]byte, error) {
	if result == nil {
		return nil, errors.New("report: analysis result is required")
	}

	now := r.now()
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(now)
	pdf.SetModificationDate(now)
	pdf.SetTitle("MediCheck AI Report", false)
	pdf.SetCreator("medicheck", false)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	p := &page{pdf: pdf, y: pageTop}

	// Header
	pdf.SetFont(fontFamily, "", 22)
	pdf.SetTextColor(13, 148, 136)
	pdf.Text(marginLeft, 20, "MediCheck AI Report")

	pdf.SetFont(fontFamily, "", 12)
	pdf.SetTextColor(100, 100, 100)
	pdf.Text(marginLeft, 30, "Date: "+now.Format("1/2/2006"))

	p.y = 40
	p.wrapped(marginLeft, "Symptoms: "+Sanitize(symptoms))
	if p.y < sectionStart {
		p.y = sectionStart
	} else {
		p.y += sectionGap
	}

	p.section("Possible Conditions")
	for _, c := range result.Conditions {
		p.item(c.Name, c.Explanation)
	}

	p.y += sectionGap

	p.section("Recommendations")
	for _, rec := range result.Recommendations {
		p.item(rec.Action, rec.Reason)
	}

	// Disclaimer
	p.y += disclaimerGap
	pdf.SetFont(fontFamily, "", 10)
	pdf.SetTextColor(150, 150, 150)
	p.wrapped(marginLeft, "Disclaimer: "+Sanitize(result.Disclaimer))

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}
	return buf.Bytes(), nil
}

// page tracks the vertical cursor and starts a new page when it runs out.
type page struct {
	pdf *fpdf.Fpdf
	y   float64
}

func (p *page) ensure(height float64) {
	if p.y+height > pageBottom {
		p.pdf.AddPage()
		p.y = pageTop
	}
}

func (p *page) section(title string) {
	p.ensure(titleAdvance + labelAdvance)
	p.pdf.SetFont(fontFamily, "", 16)
	p.pdf.SetTextColor(30, 30, 30)
	p.pdf.Text(marginLeft, p.y, title)
	p.y += titleAdvance
}

// item writes a bold label followed by the wrapped body text.
func (p *page) item(label, body string) {
	p.ensure(labelAdvance + lineAdvance)
	p.pdf.SetFont(fontFamily, "B", 12)
	p.pdf.SetTextColor(0, 0, 0)
	p.pdf.Text(marginLeft, p.y, "- "+singleLine(Sanitize(label)))
	p.y += labelAdvance

	p.pdf.SetFont(fontFamily, "", 12)
	p.pdf.SetTextColor(80, 80, 80)
	p.wrapped(indentLeft, Sanitize(body))
	p.y += itemGap
}

// wrapped splits text to the content width and writes one line per step.
func (p *page) wrapped(x float64, text string) {
	for _, line := range p.pdf.SplitText(text, contentWidth) {
		p.ensure(lineAdvance)
		p.pdf.Text(x, p.y, line)
		p.y += lineAdvance
	}
}

// singleLine folds newlines so a label stays on its baseline.
func singleLine(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
