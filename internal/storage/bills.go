package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/billscout/internal/common"
	"github.com/Veraticus/billscout/internal/model"
)

const billColumns = `id, text, company_name, description, category, subcategory,
	confidence, matched_keywords, tags, classified_at`

// SaveBill inserts a classified bill and sets its ID.
func (s *SQLiteStorage) SaveBill(ctx context.Context, bill *model.BillRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateBill(bill); err != nil {
		return err
	}
	return insertBill(ctx, s.db, bill)
}

// SaveBills inserts bills in one transaction, setting each ID.
// Nothing is stored if any bill fails validation or insertion.
func (s *SQLiteStorage) SaveBills(ctx context.Context, bills []model.BillRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	for i := range bills {
		if err := validateBill(&bills[i]); err != nil {
			return fmt.Errorf("bill %d: %w", i, err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i := range bills {
		if err := insertBill(ctx, tx, &bills[i]); err != nil {
			clearBillIDs(bills)
			return fmt.Errorf("bill %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		clearBillIDs(bills)
		return fmt.Errorf("failed to commit bills: %w", err)
	}
	return nil
}

// clearBillIDs undoes IDs assigned inside a rolled back transaction.
func clearBillIDs(bills []model.BillRecord) {
	for i := range bills {
		bills[i].ID = 0
	}
}

func insertBill(ctx context.Context, q queryable, bill *model.BillRecord) error {
	if bill.ClassifiedAt.IsZero() {
		bill.ClassifiedAt = time.Now()
	}

	keywords, err := marshalStrings(bill.Match.MatchedKeywords)
	if err != nil {
		return err
	}
	tags, err := marshalStrings(bill.Tags)
	if err != nil {
		return err
	}

	result, err := q.ExecContext(ctx, `
		INSERT INTO bills (
			text, company_name, description, category, subcategory,
			confidence, matched_keywords, tags, classified_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		bill.Text,
		bill.CompanyName,
		bill.Description,
		bill.Match.Category,
		bill.Match.Subcategory,
		bill.Match.Confidence,
		keywords,
		tags,
		bill.ClassifiedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save bill: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get bill id: %w", err)
	}
	bill.ID = id

	return nil
}

// GetBill retrieves a bill by ID.
func (s *SQLiteStorage) GetBill(ctx context.Context, id int64) (*model.BillRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `SELECT `+billColumns+` FROM bills WHERE id = ?`, id)
	bill, err := scanBill(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: bill %d", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}
	return bill, nil
}

// ListBills returns the most recent bills first. A non-positive limit returns all.
func (s *SQLiteStorage) ListBills(ctx context.Context, limit int) ([]model.BillRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+billColumns+`
		FROM bills
		ORDER BY classified_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query bills: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var bills []model.BillRecord
	for rows.Next() {
		bill, scanErr := scanBill(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", scanErr)
		}
		bills = append(bills, *bill)
	}

	return bills, rows.Err()
}

// CountBillsByCategory returns how many stored bills fall in each category.
func (s *SQLiteStorage) CountBillsByCategory(ctx context.Context) (map[string]int, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT category, COUNT(*) FROM bills GROUP BY category`)
	if err != nil {
		return nil, fmt.Errorf("failed to count bills: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			category string
			count    int
		)
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		counts[category] = count
	}

	return counts, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBill(row rowScanner) (*model.BillRecord, error) {
	var (
		bill     model.BillRecord
		keywords string
		tags     string
	)

	if err := row.Scan(
		&bill.ID,
		&bill.Text,
		&bill.CompanyName,
		&bill.Description,
		&bill.Match.Category,
		&bill.Match.Subcategory,
		&bill.Match.Confidence,
		&keywords,
		&tags,
		&bill.ClassifiedAt,
	); err != nil {
		return nil, err
	}

	var err error
	if bill.Match.MatchedKeywords, err = unmarshalStrings(keywords); err != nil {
		return nil, err
	}
	if bill.Tags, err = unmarshalStrings(tags); err != nil {
		return nil, err
	}

	return &bill, nil
}

func marshalStrings(values []string) (string, error) {
	if len(values) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("failed to marshal strings: %w", err)
	}
	return string(data), nil
}

func unmarshalStrings(data string) ([]string, error) {
	if data == "" || data == "[]" {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(data), &values); err != nil {
		return nil, fmt.Errorf("failed to unmarshal strings: %w", err)
	}
	return values, nil
}
