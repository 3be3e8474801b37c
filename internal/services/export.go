package services

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const maxSheetNameLength = 31

// ExportService writes table views as xlsx workbooks.
type ExportService struct {
	tables     *TableService
	selections *SelectionService
	log        *zap.SugaredLogger
}

func NewExportService(tables *TableService, selections *SelectionService) *ExportService {
	return &ExportService{
		tables:     tables,
		selections: selections,
		log:        zap.S().Named("export_service"),
	}
}

// Export writes the rows of a selection, or every row matching the view when
// selectionID is empty. Hidden columns are left out and the view's sort is
// kept.
func (s *ExportService) Export(ctx context.Context, table, selectionID string, req RenderRequest, w io.Writer) error {
	t, err := s.tables.Get(table)
	if err != nil {
		return err
	}

	var ids []string
	if selectionID != "" {
		sel, err := s.selections.Get(ctx, table, selectionID)
		if err != nil {
			return err
		}
		ids = sel.RowIDs
	}

	sheet, err := t.Sheet(ctx, req, ids)
	if err != nil {
		return err
	}

	s.log.Debugw("exporting table", "table", table, "selection", selectionID, "rows", len(sheet.Rows))
	return WriteXLSX(w, sheet)
}

// WriteXLSX writes sheet as a single-sheet workbook with a bold header row.
func WriteXLSX(w io.Writer, sheet *Sheet) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	name := sheet.Name
	if name == "" {
		name = "Sheet1"
	}
	if len(name) > maxSheetNameLength {
		name = name[:maxSheetNameLength]
	}
	if err := f.SetSheetName("Sheet1", name); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	sw, err := f.NewStreamWriter(name)
	if err != nil {
		return err
	}

	header := make([]any, 0, len(sheet.Headers))
	for _, h := range sheet.Headers {
		header = append(header, h)
	}
	if err := sw.SetRow("A1", header, excelize.RowOpts{StyleID: bold}); err != nil {
		return err
	}

	for i, row := range sheet.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return err
	}
	_, err = f.WriteTo(w)
	return err
}
