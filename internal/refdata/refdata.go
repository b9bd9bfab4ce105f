// Package refdata loads the static street, suburb and hundred name tables
// shipped alongside the scraper. The tables are loaded once at startup and
// injected into the assembler; extraction does not consult them yet, they
// are reserved for a future address-matching enhancement.
package refdata

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Tables holds the reference name lists in file order.
type Tables struct {
	streets  []string
	suburbs  []string
	hundreds []string
}

// Streets returns the known street names.
func (t *Tables) Streets() []string { return t.streets }

// Suburbs returns the known suburb names.
func (t *Tables) Suburbs() []string { return t.suburbs }

// Hundreds returns the known hundred names.
func (t *Tables) Hundreds() []string { return t.hundreds }

// Load reads streets.csv, suburbs.csv and hundreds.csv from dir. Each file
// is a single-column CSV; a missing file yields an empty list. Loading is
// deterministic: rows keep their file order.
func Load(dir string) (*Tables, error) {
	streets, err := loadColumn(filepath.Join(dir, "streets.csv"))
	if err != nil {
		return nil, err
	}
	suburbs, err := loadColumn(filepath.Join(dir, "suburbs.csv"))
	if err != nil {
		return nil, err
	}
	hundreds, err := loadColumn(filepath.Join(dir, "hundreds.csv"))
	if err != nil {
		return nil, err
	}

	return &Tables{
		streets:  streets,
		suburbs:  suburbs,
		hundreds: hundreds,
	}, nil
}

func loadColumn(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}

	values := make([]string, 0, len(rows))
	for _, row := range rows {
		if len(row) > 0 && row[0] != "" {
			values = append(values, row[0])
		}
	}
	return values, nil
}
