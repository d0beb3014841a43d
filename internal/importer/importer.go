// Package importer loads client and engagement records from a fixed-schema
// CSV export. Rows failing validation are logged and skipped; the surviving
// rows are written in one transaction so a storage failure leaves the
// database untouched.
package importer

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"caoffice/internal/client/models"
	"caoffice/pkg/domain"
)

// Required CSV columns. Serial Number carries the client's UUID so repeated
// imports of the same export stay idempotent.
var requiredColumns = []string{
	"Serial Number",
	"Client_Name",
	"PAN",
	"File_Number",
	"File_Number_As_Per",
	"Type",
	"Type2",
	"Senior",
	"Assistant",
	"Status",
}

// Summary reports what one import run did.
type Summary struct {
	RowsRead            int
	RowsSkipped         int
	ClientsUpserted     int
	EngagementsUpserted int
}

// Importer validates CSV rows and upserts them into storage.
type Importer struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates an Importer writing through the given database.
func New(db *sql.DB, logger *slog.Logger) *Importer {
	return &Importer{db: db, logger: logger}
}

type row struct {
	clientID        domain.ClientID
	clientName      string
	pan             string
	fileNumber      int
	fileNumberAsPer string
	engagementType  string
	type2           string
	senior          string
	assistant       string
	status          string
}

// Run reads the CSV stream, validates each row, and upserts the valid ones in
// a single transaction. A row failure skips the row; a storage failure aborts
// and rolls back everything.
func (imp *Importer) Run(ctx context.Context, r io.Reader) (Summary, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return Summary{}, fmt.Errorf("read csv header: %w", err)
	}
	cols, err := columnIndex(header)
	if err != nil {
		return Summary{}, err
	}

	var summary Summary
	var rows []row
	now := time.Now().UTC()

	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Summary{}, fmt.Errorf("read csv line %d: %w", line, err)
		}

		summary.RowsRead++
		parsed, err := parseRow(record, cols, now)
		if err != nil {
			summary.RowsSkipped++
			imp.logger.WarnContext(ctx, "skipping invalid row",
				slog.Int("line", line),
				slog.String("reason", err.Error()))
			continue
		}
		rows = append(rows, parsed)
	}

	if len(rows) == 0 {
		return summary, nil
	}

	tx, err := imp.db.BeginTx(ctx, nil)
	if err != nil {
		return summary, fmt.Errorf("begin import transaction: %w", err)
	}
	defer tx.Rollback()

	seenClients := make(map[domain.ClientID]bool)
	for _, rw := range rows {
		if !seenClients[rw.clientID] {
			if err := upsertClient(ctx, tx, rw, now); err != nil {
				return summary, err
			}
			seenClients[rw.clientID] = true
			summary.ClientsUpserted++
		}
		if err := upsertEngagement(ctx, tx, rw, now); err != nil {
			return summary, err
		}
		summary.EngagementsUpserted++
	}

	if err := tx.Commit(); err != nil {
		return summary, fmt.Errorf("commit import transaction: %w", err)
	}
	return summary, nil
}

func columnIndex(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("csv is missing required column %q", name)
		}
	}
	return cols, nil
}

// parseRow validates one record against the same model invariants the API
// enforces, so imported data can never be weaker than created data.
func parseRow(record []string, cols map[string]int, now time.Time) (row, error) {
	field := func(name string) string {
		i := cols[name]
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	clientID, err := domain.ParseClientID(field("Serial Number"))
	if err != nil {
		return row{}, fmt.Errorf("serial number: %w", err)
	}
	fileNumber, err := strconv.Atoi(field("File_Number"))
	if err != nil {
		return row{}, fmt.Errorf("file_number %q is not an integer", field("File_Number"))
	}

	rw := row{
		clientID:        clientID,
		clientName:      field("Client_Name"),
		pan:             field("PAN"),
		fileNumber:      fileNumber,
		fileNumberAsPer: field("File_Number_As_Per"),
		engagementType:  field("Type"),
		type2:           field("Type2"),
		senior:          field("Senior"),
		assistant:       field("Assistant"),
		status:          field("Status"),
	}

	if _, err := models.NewClient(rw.clientID, rw.clientName, rw.pan, "", "", "", models.ClientStatusActive, now); err != nil {
		return row{}, err
	}
	if _, err := models.NewEngagement(domain.NewEngagementID(), rw.clientID, rw.fileNumber,
		rw.fileNumberAsPer, rw.engagementType, rw.type2, rw.senior, rw.assistant, rw.status, now); err != nil {
		return row{}, err
	}
	return rw, nil
}

func upsertClient(ctx context.Context, tx *sql.Tx, rw row, now time.Time) error {
	query := `
		INSERT INTO clients (id, name, pan, email, phone, address, status, created_at, updated_at)
		VALUES ($1, $2, $3, '', '', '', 'active', $4, $4)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, pan = EXCLUDED.pan, updated_at = EXCLUDED.updated_at`

	if _, err := tx.ExecContext(ctx, query, rw.clientID, rw.clientName, rw.pan, now); err != nil {
		return fmt.Errorf("upsert client %s: %w", rw.clientID, err)
	}
	return nil
}

func upsertEngagement(ctx context.Context, tx *sql.Tx, rw row, now time.Time) error {
	query := `
		INSERT INTO engagements (id, client_id, file_number, file_number_as_per, type, type2, senior, assistant, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		ON CONFLICT (client_id, file_number) DO UPDATE
		SET file_number_as_per = EXCLUDED.file_number_as_per,
		    type = EXCLUDED.type,
		    type2 = EXCLUDED.type2,
		    senior = EXCLUDED.senior,
		    assistant = EXCLUDED.assistant,
		    status = EXCLUDED.status,
		    updated_at = EXCLUDED.updated_at`

	if _, err := tx.ExecContext(ctx, query,
		domain.NewEngagementID(), rw.clientID, rw.fileNumber, rw.fileNumberAsPer,
		rw.engagementType, rw.type2, rw.senior, rw.assistant, rw.status, now); err != nil {
		return fmt.Errorf("upsert engagement %s/%d: %w", rw.clientID, rw.fileNumber, err)
	}
	return nil
}
