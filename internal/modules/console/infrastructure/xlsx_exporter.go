package infrastructure

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"adminConsole/internal/modules/console/application/port"
)

const (
	defaultSheet      = "Sheet1"
	maxSheetNameRunes = 31
)

// XLSXExporter writes console rows as a single-sheet workbook.
type XLSXExporter struct{}

func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

func (e *XLSXExporter) Write(w io.Writer, sheet string, headers []string, rows [][]any) error {
	f := excelize.NewFile()
	defer f.Close()

	name := sheetName(sheet)
	if name != defaultSheet {
		if err := f.SetSheetName(defaultSheet, name); err != nil {
			return fmt.Errorf("failed to name sheet: %w", err)
		}
	}

	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := row
		if err := f.SetSheetRow(name, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	if len(headers) > 0 {
		if err := f.SetPanes(name, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
			return fmt.Errorf("failed to freeze header: %w", err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// sheetName strips the characters Excel rejects and truncates to 31 runes.
func sheetName(raw string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return -1
		}
		return r
	}, strings.TrimSpace(raw))
	cleaned = strings.Trim(cleaned, "'")
	if cleaned == "" {
		return defaultSheet
	}
	if runes := []rune(cleaned); len(runes) > maxSheetNameRunes {
		cleaned = string(runes[:maxSheetNameRunes])
	}
	return cleaned
}

var _ port.Exporter = (*XLSXExporter)(nil)
