// Package universe provides the asset universe: file loaders and the SQLite asset repository.
package universe

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aristath/allocator/internal/domain"
	"gopkg.in/yaml.v3"
)

// CSV column headers of the asset input file.
const (
	ColumnTicker         = "Ticker"
	ColumnExpectedReturn = "ExpectedReturn(%)"
	ColumnRiskScore      = "RiskScore(0-100)"
	ColumnPrice          = "Price"
)

var requiredColumns = []string{ColumnTicker, ColumnExpectedReturn, ColumnRiskScore, ColumnPrice}

// LoadFile reads assets from a CSV or YAML file, picked by extension.
func LoadFile(path string) ([]domain.Asset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open asset file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(f)
	case ".csv", "":
		return LoadCSV(f)
	default:
		return nil, fmt.Errorf("%w: unsupported asset file extension %q", domain.ErrInvalidInput, filepath.Ext(path))
	}
}

// LoadCSV reads assets from CSV with a header row. Columns are matched by
// header name, so their order does not matter; extra columns are ignored.
// Rows are returned in file order.
func LoadCSV(r io.Reader) ([]domain.Asset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: asset CSV is empty", domain.ErrInvalidInput)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read CSV header: %v", domain.ErrInvalidInput, err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: asset CSV is missing column %q", domain.ErrInvalidInput, col)
		}
	}

	var assets []domain.Asset
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		line, _ := reader.FieldPos(0)

		asset, err := parseRecord(record, index)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		assets = append(assets, asset)
	}

	return assets, nil
}

func parseRecord(record []string, index map[string]int) (domain.Asset, error) {
	field := func(col string) string {
		return strings.TrimSpace(record[index[col]])
	}

	ret, err := strconv.ParseFloat(field(ColumnExpectedReturn), 64)
	if err != nil {
		return domain.Asset{}, fmt.Errorf("%w: column %s: %q is not a number", domain.ErrInvalidInput, ColumnExpectedReturn, field(ColumnExpectedReturn))
	}
	risk, err := strconv.Atoi(field(ColumnRiskScore))
	if err != nil {
		return domain.Asset{}, fmt.Errorf("%w: column %s: %q is not an integer", domain.ErrInvalidInput, ColumnRiskScore, field(ColumnRiskScore))
	}
	price, err := strconv.Atoi(field(ColumnPrice))
	if err != nil {
		return domain.Asset{}, fmt.Errorf("%w: column %s: %q is not an integer", domain.ErrInvalidInput, ColumnPrice, field(ColumnPrice))
	}

	asset := domain.Asset{
		Ticker:         field(ColumnTicker),
		ExpectedReturn: ret,
		RiskScore:      risk,
		Price:          price,
	}
	if err := asset.Validate(); err != nil {
		return domain.Asset{}, err
	}
	return asset, nil
}

// LoadYAML reads assets from a YAML sequence of
// {ticker, expected_return, risk_score, price} mappings.
func LoadYAML(r io.Reader) ([]domain.Asset, error) {
	var assets []domain.Asset
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&assets); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: asset YAML is empty", domain.ErrInvalidInput)
		}
		return nil, fmt.Errorf("%w: failed to parse asset YAML: %v", domain.ErrInvalidInput, err)
	}

	if err := domain.ValidateAssets(assets); err != nil {
		return nil, err
	}
	return assets, nil
}
