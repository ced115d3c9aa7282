package catalog

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"stayline/models"
	"stayline/utils"

	"github.com/go-resty/resty/v2"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const defaultTemplateImage = "https://gallabox.com/gallabox-card.png"

// WorkbookSource downloads the pricing workbook (xlsx export of the ops
// sheet) and parses it into pricing rows.
type WorkbookSource struct {
	httpClient *resty.Client
	sheetURL   string
}

func NewWorkbookSource(sheetURL string) *WorkbookSource {
	client := resty.New().
		SetTimeout(30 * time.Second)

	return &WorkbookSource{
		httpClient: client,
		sheetURL:   sheetURL,
	}
}

// FetchPricingRows downloads and parses the workbook. Rows with a blank
// property name or unparseable coordinates are skipped with a warning rather
// than failing the whole load.
func (w *WorkbookSource) FetchPricingRows(ctx context.Context) ([]models.PricingRow, error) {
	resp, err := w.httpClient.R().
		SetContext(ctx).
		Get(w.sheetURL)
	if err != nil {
		return nil, fmt.Errorf("failed to download pricing workbook: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("pricing workbook download failed with status %d", resp.StatusCode())
	}

	return ParseWorkbook(resp.Body())
}

// ParseWorkbook parses xlsx bytes into pricing rows. The first sheet is
// used; the first row is the header.
func ParseWorkbook(data []byte) ([]models.PricingRow, error) {
	logger := utils.GetLogger()

	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open pricing workbook: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("pricing workbook has no sheets")
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read pricing sheet: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("pricing sheet has no data rows")
	}

	cols := headerIndex(rows[0])
	var parsed []models.PricingRow

	for i, row := range rows[1:] {
		name := strings.TrimSpace(cell(row, cols, "Property Name"))
		if name == "" {
			continue
		}

		lat, latErr := strconv.ParseFloat(strings.TrimSpace(cell(row, cols, "Lat")), 64)
		long, longErr := strconv.ParseFloat(strings.TrimSpace(cell(row, cols, "Long")), 64)
		if latErr != nil || longErr != nil {
			logger.Warn("Skipping pricing row with bad coordinates",
				zap.Int("row", i+2),
				zap.String("property", name))
			continue
		}

		price, err := ParsePrice(cell(row, cols, "Price"))
		if err != nil {
			logger.Warn("Skipping pricing row with bad price",
				zap.Int("row", i+2),
				zap.String("property", name))
			continue
		}

		template := strings.TrimSpace(cell(row, cols, "Template_Image_Link"))
		if template == "" {
			template = defaultTemplateImage
		}

		parsed = append(parsed, models.PricingRow{
			PropertyName:      name,
			Location:          strings.TrimSpace(cell(row, cols, "Location")),
			Address:           strings.TrimSpace(cell(row, cols, "Address")),
			Lat:               lat,
			Long:              long,
			Cluster:           strings.TrimSpace(cell(row, cols, "Cluster")),
			Config:            strings.TrimSpace(cell(row, cols, "Config")),
			Price:             price,
			ImageLink:         strings.TrimSpace(cell(row, cols, "Image link")),
			TemplateImageLink: template,
			GmapLink:          strings.TrimSpace(cell(row, cols, "Gmap Link")),
		})
	}

	if len(parsed) == 0 {
		return nil, fmt.Errorf("pricing sheet yielded no usable rows")
	}
	return parsed, nil
}

// ParsePrice parses a sheet price cell, tolerating thousands separators and
// currency markers ("8,500", "₹ 12000").
func ParsePrice(raw string) (float64, error) {
	cleaned := strings.NewReplacer(",", "", "₹", "", " ", "").Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return 0, fmt.Errorf("empty price")
	}
	return strconv.ParseFloat(cleaned, 64)
}

func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	return cols
}

func cell(row []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}
