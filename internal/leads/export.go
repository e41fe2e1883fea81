package leads

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/angelmondragon/leadintake/pkg/db/models"
)

// CSVHeader is the fixed column order of the export.
var CSVHeader = []string{"id", "created_at", "source", "name", "email", "message"}

// WriteCSV writes the header followed by one row per lead, in the given order.
func WriteCSV(w io.Writer, rows []models.Lead) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, lead := range rows {
		record := []string{
			strconv.FormatInt(lead.ID, 10),
			lead.CreatedAt.UTC().Format(time.RFC3339Nano),
			lead.Source.String(),
			lead.Name,
			lead.Email,
			lead.Message,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
