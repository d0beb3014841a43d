package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"caoffice/internal/client/models"
	"caoffice/pkg/domain"
	"caoffice/pkg/platform/sentinel"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// translatePQError maps database constraint violations onto sentinel errors.
func translatePQError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return sentinel.ErrConflict
		case pqForeignKeyViolation:
			return sentinel.ErrInvalidReference
		}
	}
	return err
}

// escapeLike escapes LIKE metacharacters so user input is matched literally.
// Queries using it must declare ESCAPE '\'.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// PostgresClientStore persists clients in PostgreSQL.
type PostgresClientStore struct {
	db *sql.DB
}

// NewPostgresClientStore creates a client store backed by the given database.
func NewPostgresClientStore(db *sql.DB) *PostgresClientStore {
	return &PostgresClientStore{db: db}
}

const clientColumns = "id, name, pan, email, phone, address, status, created_at, updated_at"

func scanClient(row interface{ Scan(...any) error }) (*models.Client, error) {
	var c models.Client
	err := row.Scan(&c.ID, &c.Name, &c.PAN, &c.Email, &c.Phone, &c.Address, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *PostgresClientStore) Create(ctx context.Context, c *models.Client) error {
	query := `
		INSERT INTO clients (id, name, pan, email, phone, address, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := s.db.ExecContext(ctx, query,
		c.ID, c.Name, c.PAN, c.Email, c.Phone, c.Address, c.Status, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert client: %w", translatePQError(err))
	}
	return nil
}

func (s *PostgresClientStore) FindByID(ctx context.Context, id domain.ClientID) (*models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`

	c, err := scanClient(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select client: %w", err)
	}
	return c, nil
}

func (s *PostgresClientStore) Update(ctx context.Context, c *models.Client) error {
	query := `
		UPDATE clients
		SET name = $2, pan = $3, email = $4, phone = $5, address = $6, status = $7, updated_at = $8
		WHERE id = $1`

	res, err := s.db.ExecContext(ctx, query,
		c.ID, c.Name, c.PAN, c.Email, c.Phone, c.Address, c.Status, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update client: %w", translatePQError(err))
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update client rows affected: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// Delete removes the client; the engagements foreign key cascades.
func (s *PostgresClientStore) Delete(ctx context.Context, id domain.ClientID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete client rows affected: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresClientStore) List(ctx context.Context, q models.ClientListQuery) ([]*models.Client, int, error) {
	where := make([]string, 0, 2)
	args := make([]any, 0, 2)

	if q.Search != "" {
		args = append(args, "%"+escapeLike(q.Search)+"%")
		n := len(args)
		where = append(where, fmt.Sprintf(
			`(name ILIKE $%d ESCAPE '\' OR pan ILIKE $%d ESCAPE '\' OR email ILIKE $%d ESCAPE '\')`, n, n, n))
	}
	if q.Status != "" {
		args = append(args, q.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM clients"+clause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count clients: %w", err)
	}

	col, ok := models.ClientSortColumn(q.SortBy)
	if !ok {
		col = "name"
	}
	args = append(args, q.PageSize, q.Offset())
	query := fmt.Sprintf("SELECT %s FROM clients%s ORDER BY %s %s LIMIT $%d OFFSET $%d",
		clientColumns, clause, col, q.SortOrder, len(args)-1, len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("select clients: %w", err)
	}
	defer rows.Close()

	clients := make([]*models.Client, 0, q.PageSize)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate clients: %w", err)
	}
	return clients, total, nil
}

// PostgresEngagementStore persists engagements in PostgreSQL.
type PostgresEngagementStore struct {
	db *sql.DB
}

// NewPostgresEngagementStore creates an engagement store backed by the given
// database.
func NewPostgresEngagementStore(db *sql.DB) *PostgresEngagementStore {
	return &PostgresEngagementStore{db: db}
}

const engagementColumns = "id, client_id, file_number, file_number_as_per, type, type2, senior, assistant, status, created_at, updated_at"

func scanEngagement(row interface{ Scan(...any) error }) (*models.Engagement, error) {
	var e models.Engagement
	err := row.Scan(&e.ID, &e.ClientID, &e.FileNumber, &e.FileNumberAsPer,
		&e.Type, &e.Type2, &e.Senior, &e.Assistant, &e.Status, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *PostgresEngagementStore) Create(ctx context.Context, e *models.Engagement) error {
	query := `
		INSERT INTO engagements (id, client_id, file_number, file_number_as_per, type, type2, senior, assistant, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := s.db.ExecContext(ctx, query,
		e.ID, e.ClientID, e.FileNumber, e.FileNumberAsPer,
		e.Type, e.Type2, e.Senior, e.Assistant, e.Status, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert engagement: %w", translatePQError(err))
	}
	return nil
}

func (s *PostgresEngagementStore) FindByID(ctx context.Context, id domain.EngagementID) (*models.Engagement, error) {
	query := `SELECT ` + engagementColumns + ` FROM engagements WHERE id = $1`

	e, err := scanEngagement(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select engagement: %w", err)
	}
	return e, nil
}

func (s *PostgresEngagementStore) Update(ctx context.Context, e *models.Engagement) error {
	query := `
		UPDATE engagements
		SET file_number = $2, file_number_as_per = $3, type = $4, type2 = $5, senior = $6, assistant = $7, status = $8, updated_at = $9
		WHERE id = $1`

	res, err := s.db.ExecContext(ctx, query,
		e.ID, e.FileNumber, e.FileNumberAsPer, e.Type, e.Type2, e.Senior, e.Assistant, e.Status, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update engagement: %w", translatePQError(err))
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update engagement rows affected: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresEngagementStore) Delete(ctx context.Context, id domain.EngagementID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM engagements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete engagement: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete engagement rows affected: %w", err)
	}
	if rows == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresEngagementStore) List(ctx context.Context, q models.EngagementListQuery) ([]*models.Engagement, int, error) {
	where := make([]string, 0, 4)
	args := make([]any, 0, 4)

	if !q.ClientID.IsZero() {
		args = append(args, q.ClientID)
		where = append(where, fmt.Sprintf("client_id = $%d", len(args)))
	}
	if q.Status != "" {
		args = append(args, q.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if q.Type != "" {
		args = append(args, q.Type)
		where = append(where, fmt.Sprintf("type = $%d", len(args)))
	}
	if q.Senior != "" {
		args = append(args, "%"+escapeLike(q.Senior)+"%")
		where = append(where, fmt.Sprintf(`senior ILIKE $%d ESCAPE '\'`, len(args)))
	}

	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM engagements"+clause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count engagements: %w", err)
	}

	col, ok := models.EngagementSortColumn(q.SortBy)
	if !ok {
		col = "file_number"
	}
	args = append(args, q.PageSize, q.Offset())
	query := fmt.Sprintf("SELECT %s FROM engagements%s ORDER BY %s %s LIMIT $%d OFFSET $%d",
		engagementColumns, clause, col, q.SortOrder, len(args)-1, len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("select engagements: %w", err)
	}
	defer rows.Close()

	engagements := make([]*models.Engagement, 0, q.PageSize)
	for rows.Next() {
		e, err := scanEngagement(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan engagement: %w", err)
		}
		engagements = append(engagements, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate engagements: %w", err)
	}
	return engagements, total, nil
}

func (s *PostgresEngagementStore) ListByClient(ctx context.Context, clientID domain.ClientID, page, pageSize int) ([]*models.Engagement, int, error) {
	return s.List(ctx, models.EngagementListQuery{
		Page:      page,
		PageSize:  pageSize,
		ClientID:  clientID,
		SortBy:    "file_number",
		SortOrder: models.SortAsc,
	})
}
