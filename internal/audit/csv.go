package audit

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// csvHeader is the statistics file schema. Existing reporting tooling
// consumes these files; the column set and order must not change.
var csvHeader = []string{
	"Date", "Ticketing System", "TicketID", "Validation Status",
	"Provided Reason", "Safe", "Object", "Policy",
	"Connection Address", "Account", "User", "FirstName", "Email",
	"Dual Control", "Dual Control Request Confirmed", "Emergency Mode",
}

// CSVSink appends validation decisions to a monthly statistics file.
type CSVSink struct {
	mu  sync.Mutex
	dir string
}

// NewCSVSink builds a sink writing under dir.
func NewCSVSink(dir string) *CSVSink {
	return &CSVSink{dir: dir}
}

// Record appends one row, creating the monthly file with its header on
// first use.
func (s *CSVSink) Record(_ context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create audit dir: %w", err)
	}

	name := fmt.Sprintf("Statistic_%s.csv", event.OccurredAt.Format("January 2006"))
	path := filepath.Join(s.dir, name)

	_, statErr := os.Stat(path)
	writeHeader := os.IsNotExist(statErr)

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open audit file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if writeHeader {
		if err := writer.Write(csvHeader); err != nil {
			return fmt.Errorf("write audit header: %w", err)
		}
	}
	if err := writer.Write(eventRow(event)); err != nil {
		return fmt.Errorf("write audit row: %w", err)
	}
	writer.Flush()
	return writer.Error()
}

func eventRow(event Event) []string {
	return []string{
		event.OccurredAt.Format("01/02/2006 15:04:05"),
		event.System,
		event.TicketID,
		event.Status,
		strings.ReplaceAll(event.Reason, ",", "|"),
		event.Safe,
		event.Object,
		event.Policy,
		event.ConnectionAddress,
		event.Account,
		event.User,
		event.FirstName,
		event.Email,
		strconv.FormatBool(event.DualControl),
		strconv.FormatBool(event.DualControlConfirmed),
		strconv.FormatBool(event.Emergency),
	}
}
