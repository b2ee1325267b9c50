package auctions

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"artmarket-admin/internal/apperr"
	domain "artmarket-admin/internal/domain/auctions"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// MaxBulkRows caps a single upload.
const MaxBulkRows = 1000

// BulkRow is one candidate auction in an upload. Row is 1-based and, for
// sheets, matches the spreadsheet row number.
type BulkRow struct {
	Row   int
	Input Input
	Err   error
}

type RowResult struct {
	Row   int    `json:"row"`
	ID    uint   `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

type BulkReport struct {
	Created int         `json:"created"`
	Failed  int         `json:"failed"`
	Rows    []RowResult `json:"rows"`
}

func RowsFromJSON(items []Input) []BulkRow {
	rows := make([]BulkRow, len(items))
	for i, in := range items {
		rows[i] = BulkRow{Row: i + 1, Input: in}
	}
	return rows
}

// BulkCreate attempts every row and reports each outcome.
func (s *Service) BulkCreate(ctx context.Context, rows []BulkRow, actor *uint) (*BulkReport, error) {
	if len(rows) == 0 {
		return nil, apperr.Validation("No auctions to import")
	}
	if len(rows) > MaxBulkRows {
		return nil, apperr.Validation(fmt.Sprintf("At most %d auctions can be imported at once", MaxBulkRows))
	}

	report := &BulkReport{Rows: make([]RowResult, 0, len(rows))}
	for _, r := range rows {
		res := RowResult{Row: r.Row}
		err := r.Err
		if err == nil {
			var a *domain.Auction
			if a, err = s.Create(ctx, r.Input, actor); err == nil {
				res.ID = a.ID
			}
		}
		if err != nil {
			res.Error = apperr.As(err).Message
			report.Failed++
		} else {
			report.Created++
		}
		report.Rows = append(report.Rows, res)
	}

	s.log.Info("auction bulk import",
		zap.Int("created", report.Created),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}

var sheetColumns = []string{
	"title", "description", "artworkId", "artworkTitle", "artistName", "category",
	"imageUrl", "startingPrice", "reservePrice", "startTime", "endTime", "status",
}

var timeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02 15:04", "2006-01-02"}

func headerKey(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(h)
}

// ParseSheet reads auctions from the first sheet of an XLSX workbook. The
// first row is a header naming the columns; unknown columns are ignored.
// Rows that cannot be parsed carry their error instead of failing the whole
// file.
func ParseSheet(r io.Reader) ([]BulkRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperr.Validation("Invalid spreadsheet: " + err.Error())
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperr.Validation("Spreadsheet has no sheets")
	}
	grid, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperr.Validation("Invalid spreadsheet: " + err.Error())
	}
	if len(grid) < 2 {
		return nil, apperr.Validation("Spreadsheet has no data rows")
	}

	index := map[string]int{}
	for i, h := range grid[0] {
		index[headerKey(h)] = i
	}
	if _, ok := index["title"]; !ok {
		return nil, apperr.Validation("Spreadsheet is missing the title column")
	}

	var rows []BulkRow
	for i, cells := range grid[1:] {
		if blank(cells) {
			continue
		}
		cell := func(name string) string {
			j, ok := index[headerKey(name)]
			if !ok || j >= len(cells) {
				return ""
			}
			return strings.TrimSpace(cells[j])
		}
		in, err := inputFromCells(cell)
		rows = append(rows, BulkRow{Row: i + 2, Input: in, Err: err})
	}
	return rows, nil
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func inputFromCells(cell func(string) string) (Input, error) {
	in := Input{
		Title:        cell("title"),
		Description:  cell("description"),
		ArtworkID:    cell("artworkId"),
		ArtworkTitle: cell("artworkTitle"),
		ArtistName:   cell("artistName"),
		Category:     cell("category"),
		ImageURL:     cell("imageUrl"),
		Status:       cell("status"),
	}

	var err error
	if in.StartingPrice, err = parseNumber("startingPrice", cell("startingPrice")); err != nil {
		return in, err
	}
	if in.ReservePrice, err = parseNumber("reservePrice", cell("reservePrice")); err != nil {
		return in, err
	}
	if in.StartTime, err = parseTime("startTime", cell("startTime")); err != nil {
		return in, err
	}
	if in.EndTime, err = parseTime("endTime", cell("endTime")); err != nil {
		return in, err
	}
	return in, nil
}

func parseNumber(field, v string) (*float64, error) {
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64)
	if err != nil {
		return nil, &apperr.Error{Kind: apperr.KindValidation, Field: field, Message: field + " must be a number"}
	}
	return &n, nil
}

func parseTime(field, v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return &t, nil
		}
	}
	return nil, &apperr.Error{Kind: apperr.KindValidation, Field: field, Message: field + " must be a date"}
}

// Export writes auctions as an XLSX workbook using the same columns
// ParseSheet reads.
func Export(items []domain.Auction) (*bytes.Buffer, error) {
	xl := excelize.NewFile()
	defer xl.Close()

	const name = "Auctions"
	if err := xl.SetSheetName("Sheet1", name); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(sheetColumns))
	for i, c := range sheetColumns {
		header[i] = c
	}
	if err := xl.SetSheetRow(name, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for ri, a := range items {
		reserve := ""
		if a.ReservePrice.Valid {
			reserve = a.ReservePrice.Decimal.StringFixed(2)
		}
		record := []any{
			a.Title, a.Description, a.ArtworkID, a.ArtworkTitle, a.ArtistName, a.Category,
			a.ImageURL, a.StartingPrice.StringFixed(2), reserve,
			a.StartTime.UTC().Format(time.RFC3339), a.EndTime.UTC().Format(time.RFC3339), string(a.Status),
		}
		cellRef, err := excelize.CoordinatesToCellName(1, ri+2)
		if err != nil {
			return nil, err
		}
		if err := xl.SetSheetRow(name, cellRef, &record); err != nil {
			return nil, fmt.Errorf("write row %d: %w", ri+2, err)
		}
	}

	return xl.WriteToBuffer()
}
