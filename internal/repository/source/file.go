package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/you-humble/spare-parts/internal/model"
)

// fileOpener opens the workbook at a fixed path, picking the reader by extension.
type fileOpener struct {
	path string
}

func NewFileOpener(path string) *fileOpener {
	return &fileOpener{path: path}
}

func (o *fileOpener) Name() string { return o.path }

func (o *fileOpener) Open(ctx context.Context) (model.Workbook, error) {
	const op = "source.fileOpener.Open"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	info, err := os.Stat(o.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w: %s", op, model.ErrSourceNotFound, o.path)
		}
		return nil, fmt.Errorf("%s: %w: %w", op, model.ErrSourceUnreadable, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s: %w: %s is a directory", op, model.ErrSourceUnreadable, o.path)
	}

	return OpenFile(o.path)
}

// OpenFile opens an xlsx/xlsm workbook or a csv file.
func OpenFile(path string) (model.Workbook, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		wb, err := openCSV(path)
		if err != nil {
			return nil, err
		}
		return wb, nil
	}

	wb, err := openXLSX(path)
	if err != nil {
		return nil, err
	}
	return wb, nil
}
