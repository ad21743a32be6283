package universe

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/aristath/allocator/internal/database"
	"github.com/aristath/allocator/internal/domain"
	"github.com/rs/zerolog"
)

// assetColumns is the column list of the assets table, in scan order.
const assetColumns = `ticker, expected_return, risk_score, price`

// AssetRepository stores the current asset universe.
// Insertion order is part of the data: the optimizer breaks ties by it.
type AssetRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(db *sql.DB, log zerolog.Logger) *AssetRepository {
	return &AssetRepository{
		db:  db,
		log: log.With().Str("repo", "asset").Logger(),
	}
}

// ReplaceAll swaps the stored universe for assets in one transaction.
// Assets are validated first; nothing is written when any of them is invalid.
func (r *AssetRepository) ReplaceAll(assets []domain.Asset) error {
	if err := domain.ValidateAssets(assets); err != nil {
		return err
	}

	now := time.Now().Unix()
	err := database.WithTransaction(r.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM assets"); err != nil {
			return fmt.Errorf("failed to clear assets: %w", err)
		}

		stmt, err := tx.Prepare(`INSERT INTO assets (position, ` + assetColumns + `, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare asset insert: %w", err)
		}
		defer stmt.Close()

		for i, a := range assets {
			if _, err := stmt.Exec(i, a.Ticker, a.ExpectedReturn, a.RiskScore, a.Price, now); err != nil {
				return fmt.Errorf("failed to insert asset %s: %w", a.Ticker, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.log.Info().Int("count", len(assets)).Msg("Replaced asset universe")
	return nil
}

// GetAll returns every stored asset in insertion order.
func (r *AssetRepository) GetAll() ([]domain.Asset, error) {
	rows, err := r.db.Query("SELECT " + assetColumns + " FROM assets ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to query assets: %w", err)
	}
	defer rows.Close()

	return scanAssets(rows)
}

// GetByTickers returns the stored assets whose ticker is in tickers,
// in insertion order. Unknown tickers are ignored.
func (r *AssetRepository) GetByTickers(tickers []string) ([]domain.Asset, error) {
	if len(tickers) == 0 {
		return []domain.Asset{}, nil
	}

	placeholders := make([]string, len(tickers))
	args := make([]interface{}, len(tickers))
	for i, t := range tickers {
		placeholders[i] = "?"
		args[i] = strings.TrimSpace(t)
	}

	query := "SELECT " + assetColumns + " FROM assets WHERE ticker IN (" +
		strings.Join(placeholders, ",") + ") ORDER BY position"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query assets by ticker: %w", err)
	}
	defer rows.Close()

	return scanAssets(rows)
}

// Count returns the number of stored assets.
func (r *AssetRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM assets").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count assets: %w", err)
	}
	return count, nil
}

// DeleteAll empties the universe and returns how many assets were removed.
func (r *AssetRepository) DeleteAll() (int64, error) {
	result, err := r.db.Exec("DELETE FROM assets")
	if err != nil {
		return 0, fmt.Errorf("failed to delete assets: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	r.log.Info().Int64("count", removed).Msg("Deleted asset universe")
	return removed, nil
}

func scanAssets(rows *sql.Rows) ([]domain.Asset, error) {
	assets := []domain.Asset{}
	for rows.Next() {
		var a domain.Asset
		if err := rows.Scan(&a.Ticker, &a.ExpectedReturn, &a.RiskScore, &a.Price); err != nil {
			return nil, fmt.Errorf("failed to scan asset: %w", err)
		}
		assets = append(assets, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assets: %w", err)
	}

	return assets, nil
}
