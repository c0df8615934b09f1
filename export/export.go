// Copyright (c) 2025 Aris Atria.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/arisatria5/pilketos-smpn4/models"
)

// Sheet names match the report committees have been receiving since
// the spreadsheet era of this system.
const (
	sheetRecap = "Rekap"
	sheetLog   = "Log"
)

// Workbook renders the ledger as a two-sheet xlsx report: one row per
// candidate with its tally, and one row per redeemed token.
func Workbook(doc *models.BallotLedger) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetRecap); err != nil {
		return nil, fmt.Errorf("name recap sheet: %w", err)
	}
	if err := f.SetSheetRow(sheetRecap, "A1", &[]any{"No", "Nama", "Suara"}); err != nil {
		return nil, fmt.Errorf("write recap header: %w", err)
	}
	for i, id := range doc.CandidateIDs() {
		cell := fmt.Sprintf("A%d", i+2)
		row := []any{id, doc.Candidates[id].Name, doc.Votes[id]}
		if err := f.SetSheetRow(sheetRecap, cell, &row); err != nil {
			return nil, fmt.Errorf("write recap row %s: %w", id, err)
		}
	}

	if _, err := f.NewSheet(sheetLog); err != nil {
		return nil, fmt.Errorf("create log sheet: %w", err)
	}
	if err := f.SetSheetRow(sheetLog, "A1", &[]any{"Token"}); err != nil {
		return nil, fmt.Errorf("write log header: %w", err)
	}
	for i, token := range doc.UsedTokens {
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetCellValue(sheetLog, cell, token); err != nil {
			return nil, fmt.Errorf("write log row %d: %w", i, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render workbook: %w", err)
	}
	return buf.Bytes(), nil
}
