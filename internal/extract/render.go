package extract

import (
	"bytes"
	"fmt"
	"image/png"

	fitz "github.com/gen2brain/go-fitz"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// DefaultRenderDPI matches the resolution the OCR service is tuned for.
const DefaultRenderDPI = 300

// Renderer rasterizes the first page of a PDF into a PNG image.
// Rendering failures are deterministic for a given input, so there is no
// retry: a bad PDF stays bad.
type Renderer struct {
	DPI float64
}

// Render validates the PDF and returns PNG bytes of page 1. Corrupt input or
// a document with zero extractable pages fails with ErrRender.
func (r Renderer) Render(pdf []byte) ([]byte, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	pdfCtx, err := api.ReadContext(bytes.NewReader(pdf), conf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	if err := api.ValidateContext(pdfCtx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	if pdfCtx.PageCount < 1 {
		return nil, fmt.Errorf("%w: no pages extracted from PDF", ErrRender)
	}

	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	defer doc.Close()

	dpi := r.DPI
	if dpi == 0 {
		dpi = DefaultRenderDPI
	}
	img, err := doc.ImageDPI(0, dpi)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.Bytes(), nil
}
