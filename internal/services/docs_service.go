package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"agrisolve/internal/domain/models"
	"agrisolve/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// DocsService renders printable sheets for marketplace offers.
type DocsService struct {
	Listings  ListingStore
	RequestID string
	Loader    func(ctx context.Context, id string) (models.Listing, error)
}

// ListingSheet returns a one-page PDF a seller can print or forward.
func (s DocsService) ListingSheet(ctx context.Context, id string) ([]byte, string, error) {
	l, err := s.load(ctx, id)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "listing_sheet", fmt.Sprintf("listing_id=%s", id))
	return buildListingSheetPDF(l)
}

func (s DocsService) load(ctx context.Context, id string) (models.Listing, error) {
	if s.Loader != nil {
		return s.Loader(ctx, id)
	}
	return s.Listings.GetByID(ctx, id)
}

func buildListingSheetPDF(l models.Listing) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Listing", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 9, tr(safe(l.Title, "Untitled listing")), "", "", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, tr(utils.FormatUnitPrice(l.Price, l.Unit)))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Quantity  : %s", safe(l.Quantity, "-")),
		fmt.Sprintf("Category  : %s", safe(l.Category, "-")),
		fmt.Sprintf("Location  : %s", safe(l.Location, "-")),
		fmt.Sprintf("Status    : %s", safe(string(l.Status), "-")),
		fmt.Sprintf("Seller    : %s", safe(l.SellerName, "-")),
		fmt.Sprintf("Phone     : %s", safe(l.SellerPhone, "-")),
		fmt.Sprintf("Listed on : %s", utils.FormatDate(l.CreatedAt)),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, tr(line))
		pdf.Ln(7)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Description")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, tr(safe(l.Description, "-")), "", "", false)

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, "Prices and availability are set by the seller. Contact them directly to arrange collection.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("LISTING_%s.pdf", safeFilenamePart(l.Title))
	return buf.Bytes(), filename, nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if r := []rune(s); len(r) > 40 {
		s = string(r[:40])
	}
	return s
}
