// Package export renders match results for use outside the tool.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/JaimeV365/job-seeker-cheater/internal/matching"
)

var csvHeader = []string{"Score", "Title", "Company", "Location", "Remote", "Source", "URL", "Reasons"}

// WriteCSV writes the matches as spreadsheet-friendly CSV, highest scores
// first in whatever order the caller passed them.
func WriteCSV(w io.Writer, matches []matching.Match) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, m := range matches {
		record := []string{
			fmt.Sprintf("%.2f", m.Score),
			m.Listing.Title,
			m.Listing.Company,
			m.Listing.Location,
			m.Listing.RemoteType,
			m.Listing.Source,
			m.Listing.URL,
			strings.Join(m.Explanation.Reasons, "; "),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSVFile is WriteCSV to a fresh file at path.
func WriteCSVFile(path string, matches []matching.Match) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, matches); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
