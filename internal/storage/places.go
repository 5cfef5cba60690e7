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

// SavePlaceSnapshot stores a ranking run and its places in input order.
func (s *SQLiteStorage) SavePlaceSnapshot(ctx context.Context, snapshot *model.PlaceSnapshot) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSnapshot(snapshot); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if snapshot.ScoredAt.IsZero() {
		snapshot.ScoredAt = time.Now()
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO place_snapshots (query, ref_lat, ref_lon, scored_at)
		VALUES (?, ?, ?, ?)
	`, snapshot.Query, snapshot.RefLat, snapshot.RefLon, snapshot.ScoredAt)
	if err != nil {
		return fmt.Errorf("failed to save place snapshot: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get snapshot id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO scored_places (
			snapshot_id, position, place_id, name, type, rating, review_count,
			price_level, open_now, lat, lon, reviews,
			distance_km, price_score, quality_score, service_score
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare place insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, p := range snapshot.Places {
		reviews, marshalErr := json.Marshal(p.Reviews)
		if marshalErr != nil {
			return fmt.Errorf("failed to marshal reviews for place %d: %w", i, marshalErr)
		}

		if _, err := stmt.ExecContext(ctx,
			id, i, p.ID, p.Name, p.Type,
			nullFloat(p.Rating), p.ReviewCount, nullInt(p.PriceLevel), nullBool(p.OpenNow),
			p.Location.Lat, p.Location.Lon, string(reviews),
			p.DistanceKm, p.PriceScore, p.QualityScore, p.ServiceScore,
		); err != nil {
			return fmt.Errorf("failed to save place %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit place snapshot: %w", err)
	}

	snapshot.ID = id
	return nil
}

// GetPlaceSnapshot retrieves a ranking run with its places.
func (s *SQLiteStorage) GetPlaceSnapshot(ctx context.Context, id int64) (*model.PlaceSnapshot, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var snapshot model.PlaceSnapshot
	err := s.db.QueryRowContext(ctx, `
		SELECT id, query, ref_lat, ref_lon, scored_at
		FROM place_snapshots
		WHERE id = ?
	`, id).Scan(&snapshot.ID, &snapshot.Query, &snapshot.RefLat, &snapshot.RefLon, &snapshot.ScoredAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: place snapshot %d", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get place snapshot: %w", err)
	}

	snapshot.Places, err = s.getScoredPlaces(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	return &snapshot, nil
}

// ListPlaceSnapshots returns recent ranking runs without their places.
// A non-positive limit returns all.
func (s *SQLiteStorage) ListPlaceSnapshots(ctx context.Context, limit int) ([]model.PlaceSnapshot, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, query, ref_lat, ref_lon, scored_at
		FROM place_snapshots
		ORDER BY scored_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query place snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var snapshots []model.PlaceSnapshot
	for rows.Next() {
		var snap model.PlaceSnapshot
		if err := rows.Scan(&snap.ID, &snap.Query, &snap.RefLat, &snap.RefLon, &snap.ScoredAt); err != nil {
			return nil, fmt.Errorf("failed to scan place snapshot: %w", err)
		}
		snapshots = append(snapshots, snap)
	}

	return snapshots, rows.Err()
}

func (s *SQLiteStorage) getScoredPlaces(ctx context.Context, q queryable, snapshotID int64) ([]model.ScoredPlace, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT place_id, name, type, rating, review_count, price_level, open_now,
		       lat, lon, reviews, distance_km, price_score, quality_score, service_score
		FROM scored_places
		WHERE snapshot_id = ?
		ORDER BY position
	`, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("failed to query scored places: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var places []model.ScoredPlace
	for rows.Next() {
		var (
			p          model.ScoredPlace
			rating     sql.NullFloat64
			priceLevel sql.NullInt64
			openNow    sql.NullBool
			reviews    string
		)
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Type, &rating, &p.ReviewCount, &priceLevel, &openNow,
			&p.Location.Lat, &p.Location.Lon, &reviews,
			&p.DistanceKm, &p.PriceScore, &p.QualityScore, &p.ServiceScore,
		); err != nil {
			return nil, fmt.Errorf("failed to scan scored place: %w", err)
		}

		if rating.Valid {
			p.Rating = &rating.Float64
		}
		if priceLevel.Valid {
			level := int(priceLevel.Int64)
			p.PriceLevel = &level
		}
		if openNow.Valid {
			p.OpenNow = &openNow.Bool
		}
		if err := json.Unmarshal([]byte(reviews), &p.Reviews); err != nil {
			return nil, fmt.Errorf("failed to unmarshal reviews: %w", err)
		}

		places = append(places, p)
	}

	return places, rows.Err()
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullBool(v *bool) sql.NullBool {
	if v == nil {
		return sql.NullBool{}
	}
	return sql.NullBool{Bool: *v, Valid: true}
}
