package services

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"busfinder/internal/domain/models"
	"busfinder/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// ExportService renders a search result as a PDF table.
type ExportService struct {
	CurrencyPrefix string
	Now            func() time.Time
}

var exportHeaders = []string{"Bus Name", "Type", "Departure", "Arrival", "Price", "Rating"}

// column widths in mm, landscape A4 leaves 277mm between margins
var exportWidths = []float64{78, 70, 28, 28, 45, 28}

func (s ExportService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// BuildResultsPDF lays out rows in the fixed result column order.
func (s ExportService) BuildResultsPDF(c models.FilterCriteria, rows []models.BusRecord) ([]byte, string, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Bus Search Results", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Filtered Bus Details for %s to %s", c.FromPlace, c.ToPlace))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("State: %s   Min rating: %.1f   Departing after: %s   Price: %s - %s",
		c.State, c.MinRating, utils.ClockHM(c.Boundary()),
		utils.FormatTicketPrice(int64(c.Price.Min)*100, s.CurrencyPrefix),
		utils.FormatTicketPrice(int64(c.Price.Max)*100, s.CurrencyPrefix)))
	pdf.Ln(6)
	pdf.Cell(0, 6, "Generated: "+s.now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	if len(rows) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.Cell(0, 8, NoResultsMessage)
	} else {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(230, 230, 230)
		for i, h := range exportHeaders {
			pdf.CellFormat(exportWidths[i], 8, h, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", 9)
		for _, r := range rows {
			cells := []string{
				r.Name,
				r.Type,
				r.DepartureTime,
				r.ArrivalTime,
				r.TicketPrice,
				strconv.FormatFloat(r.Rating, 'f', -1, 64),
			}
			for i, v := range cells {
				pdf.CellFormat(exportWidths[i], 7, truncateCell(pdf, v, exportWidths[i]), "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("BUSES_%s_%s_%s.pdf",
		utils.SafeFilenamePart(c.FromPlace),
		utils.SafeFilenamePart(c.ToPlace),
		s.now().Format("20060102"))
	return buf.Bytes(), filename, nil
}

func truncateCell(pdf *gofpdf.Fpdf, v string, width float64) string {
	limit := width - 2
	if pdf.GetStringWidth(v) <= limit {
		return v
	}
	runes := []rune(v)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > limit {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
