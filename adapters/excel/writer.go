package excel

import (
	"fmt"

	"gocausal/domain/scm"
	"gocausal/internal/errors"

	"github.com/xuri/excelize/v2"
)

// DatasetWriter exports generated SCM datasets to an .xlsx workbook for hand
// inspection, one sheet per scenario.
type DatasetWriter struct {
	file *excelize.File
}

// NewDatasetWriter creates a writer over a fresh workbook
func NewDatasetWriter() *DatasetWriter {
	return &DatasetWriter{file: excelize.NewFile()}
}

// AddBinarySheet writes a binary dataset as 0/1 columns
func (w *DatasetWriter) AddBinarySheet(name string, data scm.BinaryDataset) error {
	if _, err := w.file.NewSheet(name); err != nil {
		return errors.Wrapf(err, "failed to create sheet %s", name)
	}

	if err := w.writeHeader(name, []string{"a", "b"}); err != nil {
		return err
	}
	for i := 0; i < data.Len(); i++ {
		row := i + 2
		if err := w.setRow(name, row, boolToInt(data.A[i]), boolToInt(data.B[i])); err != nil {
			return err
		}
	}
	return nil
}

// AddContinuousSheet writes a continuous dataset including its retained noise
func (w *DatasetWriter) AddContinuousSheet(name string, data scm.ContinuousDataset) error {
	if _, err := w.file.NewSheet(name); err != nil {
		return errors.Wrapf(err, "failed to create sheet %s", name)
	}

	if err := w.writeHeader(name, []string{"a", "b", "u1"}); err != nil {
		return err
	}
	for i := 0; i < data.Len(); i++ {
		row := i + 2
		if err := w.setRow(name, row, data.A[i], data.B[i], data.U1[i]); err != nil {
			return err
		}
	}
	return nil
}

// Save writes the workbook to disk, dropping the default empty sheet
func (w *DatasetWriter) Save(path string) error {
	w.file.DeleteSheet("Sheet1")
	if err := w.file.SaveAs(path); err != nil {
		return errors.Wrapf(err, "failed to save workbook to %s", path)
	}
	return nil
}

func (w *DatasetWriter) writeHeader(sheet string, cols []string) error {
	for i, col := range cols {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return errors.Wrap(err, "failed to compute header cell")
		}
		if err := w.file.SetCellValue(sheet, cell, col); err != nil {
			return errors.Wrapf(err, "failed to write header %s", col)
		}
	}
	return nil
}

func (w *DatasetWriter) setRow(sheet string, row int, values ...interface{}) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return errors.Wrap(err, "failed to compute cell coordinates")
		}
		if err := w.file.SetCellValue(sheet, cell, v); err != nil {
			return errors.Wrapf(err, "failed to write cell %s", fmt.Sprintf("%s!%s", sheet, cell))
		}
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
