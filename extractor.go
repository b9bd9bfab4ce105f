package daregister

import (
	"log"
	"runtime"

	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/references"
	"github.com/klippa-app/go-pdfium/requests"
	"github.com/pkg/errors"
)

// errDocumentUnreadable marks decode failures of the document itself, as
// opposed to failures of a single page.
var errDocumentUnreadable = errors.New("document could not be decoded")

// pageDecoder yields one page's positioned fragments at a time. Each call
// is a scoped acquisition: whatever resources back the page are released
// before the call returns.
type pageDecoder interface {
	// pageElements returns the fragments of the page at index, or
	// done=true once index passes the document's last page.
	pageElements(index int) (elements []Element, done bool, err error)
}

// Extractor runs the page-wise extraction loop over register documents.
// It is strictly sequential; the memory-bounding strategy depends on never
// holding more than one decoded page's resources at once.
type Extractor struct {
	instance  pdfium.Pdfium
	assembler *Assembler
	config    Config
}

// NewExtractor creates an extractor with the default configuration and no
// reference tables.
func NewExtractor(instance pdfium.Pdfium) *Extractor {
	return NewExtractorWithConfig(instance, DefaultConfig(), nil)
}

// NewExtractorWithConfig creates an extractor with a custom configuration.
// reference may be nil.
func NewExtractorWithConfig(instance pdfium.Pdfium, config Config, reference ReferenceTables) *Extractor {
	return &Extractor{
		instance:  instance,
		assembler: NewAssembler(config, reference),
		config:    config,
	}
}

// ExtractDocument pulls every application record out of one register
// document. infoURL is recorded on each record as its source. Pages that
// yield no record are logged and skipped; duplicate application numbers
// keep their first occurrence. A pageless document yields an empty result
// without error.
func (e *Extractor) ExtractDocument(document []byte, infoURL string) ([]Application, error) {
	return e.run(&pdfiumDecoder{instance: e.instance, raw: document}, infoURL)
}

func (e *Extractor) run(decoder pageDecoder, infoURL string) ([]Application, error) {
	var records []Application
	seen := make(map[string]bool)

	for index := 0; index < e.config.MaxPages; index++ {
		elements, done, err := decoder.pageElements(index)
		if e.config.MemoryHints {
			// Advisory: the page's scratch buffers were just released.
			runtime.GC()
		}
		if err != nil {
			if errors.Is(err, errDocumentUnreadable) {
				return nil, err
			}
			log.Printf("page %d: extraction failed: %v", index+1, err)
			continue
		}
		if done {
			break
		}

		sortReadingOrder(elements)

		record, err := e.assembler.Assemble(elements, infoURL)
		if err != nil {
			log.Printf("page %d: no record: %v", index+1, err)
			if e.config.VerboseLogging {
				logElements(index, elements)
			}
			continue
		}

		if seen[record.ApplicationNumber] {
			continue
		}
		seen[record.ApplicationNumber] = true
		records = append(records, *record)
	}

	return records, nil
}

// logElements dumps a page's fragments with their geometry for layout
// diagnosis when a page is skipped.
func logElements(index int, elements []Element) {
	log.Printf("page %d fragments (%d):", index+1, len(elements))
	for _, el := range elements {
		log.Printf("  [x=%.1f y=%.1f w=%.1f h=%.1f] %q",
			el.Rect.X, el.Rect.Y, el.Rect.Width, el.Rect.Height, el.Text)
	}
}

// pdfiumDecoder re-decodes the document from the original byte buffer for
// every page it serves. Repeated decode cost is deliberately traded for a
// small, bounded peak memory footprint: no decoded document handle
// survives past one call.
type pdfiumDecoder struct {
	instance pdfium.Pdfium
	raw      []byte
}

func (d *pdfiumDecoder) pageElements(index int) (elements []Element, done bool, err error) {
	err = func() error {
		doc, err := d.instance.OpenDocument(&requests.OpenDocument{
			File: &d.raw,
		})
		if err != nil {
			return errors.Wrap(errDocumentUnreadable, err.Error())
		}
		defer d.instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{
			Document: doc.Document,
		})

		pageCount, err := d.instance.FPDF_GetPageCount(&requests.FPDF_GetPageCount{
			Document: doc.Document,
		})
		if err != nil {
			return errors.Wrap(errDocumentUnreadable, err.Error())
		}
		if index >= pageCount.PageCount {
			done = true
			return nil
		}

		pageResp, err := d.instance.FPDF_LoadPage(&requests.FPDF_LoadPage{
			Document: doc.Document,
			Index:    index,
		})
		if err != nil {
			return errors.Wrap(err, "failed to load page")
		}
		defer d.instance.FPDF_ClosePage(&requests.FPDF_ClosePage{
			Page: pageResp.Page,
		})

		pageHeight, err := d.instance.FPDF_GetPageHeightF(&requests.FPDF_GetPageHeightF{
			Page: requests.Page{
				ByReference: &pageResp.Page,
			},
		})
		if err != nil {
			return errors.Wrap(err, "failed to get page height")
		}

		chars, err := d.extractChars(pageResp.Page, float64(pageHeight.PageHeight))
		if err != nil {
			return errors.Wrap(err, "failed to extract characters")
		}

		elements = groupFragments(chars)
		return nil
	}()

	return elements, done, err
}

// extractChars pulls every positioned character off a page, converting PDF
// coordinates (origin bottom-left) to top-left origin and recomputing each
// character's height from its positioning transform.
func (d *pdfiumDecoder) extractChars(page references.FPDF_PAGE, pageHeight float64) ([]pageChar, error) {
	textPage, err := d.instance.FPDFText_LoadPage(&requests.FPDFText_LoadPage{
		Page: requests.Page{
			ByReference: &page,
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load text page")
	}
	defer d.instance.FPDFText_ClosePage(&requests.FPDFText_ClosePage{
		TextPage: textPage.TextPage,
	})

	charCount, err := d.instance.FPDFText_CountChars(&requests.FPDFText_CountChars{
		TextPage: textPage.TextPage,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to count characters")
	}

	chars := make([]pageChar, 0, charCount.Count)
	for i := range charCount.Count {
		unicodeRes, err := d.instance.FPDFText_GetUnicode(&requests.FPDFText_GetUnicode{
			TextPage: textPage.TextPage,
			Index:    i,
		})
		if err != nil || unicodeRes.Unicode == 0 {
			continue
		}

		charBox, err := d.instance.FPDFText_GetCharBox(&requests.FPDFText_GetCharBox{
			TextPage: textPage.TextPage,
			Index:    i,
		})
		if err != nil {
			continue
		}

		box := Rect{
			X:      charBox.Left,
			Y:      pageHeight - charBox.Top,
			Width:  charBox.Right - charBox.Left,
			Height: charBox.Top - charBox.Bottom,
		}

		fontSize, err := d.instance.FPDFText_GetFontSize(&requests.FPDFText_GetFontSize{
			TextPage: textPage.TextPage,
			Index:    i,
		})
		fontSizeVal := 12.0 // Default
		if err == nil {
			fontSizeVal = fontSize.FontSize
		}

		// The reported char box height is unreliable for some register
		// documents; recompute it from the positioning transform.
		matrixRes, err := d.instance.FPDFText_GetMatrix(&requests.FPDFText_GetMatrix{
			TextPage: textPage.TextPage,
			Index:    i,
		})
		if err == nil {
			h := transformHeight(fontSizeVal, float64(matrixRes.Matrix.C), float64(matrixRes.Matrix.D))
			if h > 0 {
				box.Height = h
			}
		}

		chars = append(chars, pageChar{
			text:     rune(unicodeRes.Unicode),
			box:      box,
			fontSize: fontSizeVal,
		})
	}

	return chars, nil
}
