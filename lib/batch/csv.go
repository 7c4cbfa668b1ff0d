package batch

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cyverse-ops/atmoctl/lib/console"
	"golang.org/x/exp/slices"
)

// Column names recognized in manifests. The header row defines positions;
// column order is free.
const (
	colUsername         = "username"
	colPassword         = "password"
	colToken            = "token"
	colImage            = "image"
	colImageVersion     = "image version"
	colSize             = "instance size"
	colInstanceName     = "instance name"
	colProjectName      = "project name"
	colAllocationSource = "allocation source"
	colAllocUnitCount   = "alloc_unit_count"
)

// Account credential from one CSV row or the CLI: username+password, or a
// pre-issued access token.
type Account struct {
	Username string
	Password string
	Token    string
}

// One row of the launch manifest: a credential plus the launch request
// parsed from it.
type LaunchRow struct {
	// 1-based data row number for error reporting.
	Index            int
	Account          Account
	ImageID          int
	ImageVersion     string
	Size             string
	InstanceName     string
	ProjectName      string
	AllocationSource string
}

// One row of the allocation-update manifest.
type AllocationRow struct {
	Index          int
	Username       string
	AllocUnitCount int
}

// LoadLaunchCSV reads the launch manifest. When useToken is set, rows carry
// access tokens instead of username/password pairs.
func LoadLaunchCSV(path string, useToken bool) ([]LaunchRow, error) {
	required := []string{colImage, colImageVersion, colSize}
	if useToken {
		required = append(required, colToken)
	} else {
		required = append(required, colUsername, colPassword)
	}
	optional := []string{colInstanceName, colProjectName, colAllocationSource}

	records, columns, err := readManifest(path, required, optional)
	if err != nil {
		return nil, err
	}

	var rows []LaunchRow
	for i, record := range records {
		row := LaunchRow{Index: i + 1}

		if useToken {
			row.Account.Token = record[columns[colToken]]
			console.Info("token: %s", console.Masked(row.Account.Token))
		} else {
			row.Account.Username = record[columns[colUsername]]
			row.Account.Password = record[columns[colPassword]]
			console.Info("username: %s\tpassword: %s", row.Account.Username, console.Masked(row.Account.Password))
		}

		row.ImageID, err = ImageIDFromURL(record[columns[colImage]])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row.Index, err)
		}
		row.ImageVersion = record[columns[colImageVersion]]
		row.Size = record[columns[colSize]]

		if idx, ok := columns[colInstanceName]; ok {
			row.InstanceName = record[idx]
		}
		if idx, ok := columns[colProjectName]; ok {
			row.ProjectName = record[idx]
		}
		if idx, ok := columns[colAllocationSource]; ok {
			row.AllocationSource = record[idx]
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// LoadAccountCSV reads a credentials-only manifest (cleanup tool).
func LoadAccountCSV(path string, useToken bool) ([]Account, error) {
	required := []string{colUsername, colPassword}
	if useToken {
		required = []string{colToken}
	}

	records, columns, err := readManifest(path, required, nil)
	if err != nil {
		return nil, err
	}

	var accounts []Account
	for _, record := range records {
		var account Account
		if useToken {
			account.Token = record[columns[colToken]]
			console.Info("token: %s", console.Masked(account.Token))
		} else {
			account.Username = record[columns[colUsername]]
			account.Password = record[columns[colPassword]]
			console.Info("username: %s\tpassword: %s", account.Username, console.Masked(account.Password))
		}
		accounts = append(accounts, account)
	}

	return accounts, nil
}

// LoadAllocationCSV reads the allocation-update manifest.
func LoadAllocationCSV(path string) ([]AllocationRow, error) {
	records, columns, err := readManifest(path, []string{colUsername, colAllocUnitCount}, nil)
	if err != nil {
		return nil, err
	}

	var rows []AllocationRow
	for i, record := range records {
		row := AllocationRow{
			Index:    i + 1,
			Username: record[columns[colUsername]],
		}

		raw := record[columns[colAllocUnitCount]]
		row.AllocUnitCount, err = strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("allocation unit count %q on row %d is not an integer", raw, row.Index)
		}

		console.Info("username: %s, target allocation unit count: %d", row.Username, row.AllocUnitCount)
		rows = append(rows, row)
	}

	return rows, nil
}

// readManifest parses a CSV file and maps required/optional column names to
// positions from the header row. A missing required column is a structural
// error; nothing is fetched or launched after one.
func readManifest(path string, required []string, optional []string) ([][]string, map[string]int, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read CSV file %q: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("CSV file %q has no header row", path)
	}

	header := records[0]
	columns := make(map[string]int)
	for i, name := range header {
		// First occurrence wins for duplicate column names
		if _, ok := columns[name]; ok {
			continue
		}
		if slices.Contains(required, name) || slices.Contains(optional, name) {
			columns[name] = i
		}
	}

	for _, name := range required {
		if _, ok := columns[name]; !ok {
			return nil, nil, fmt.Errorf("no column called %q in %q", name, path)
		}
	}

	return records[1:], columns, nil
}

// ImageIDFromURL extracts the numeric image id from the final path segment
// of an image URL.
func ImageIDFromURL(raw string) (int, error) {
	if raw == "" {
		return 0, fmt.Errorf("bad image url %q", raw)
	}

	segments := strings.Split(raw, "/")
	last := segments[len(segments)-1]

	id, err := strconv.Atoi(last)
	if err != nil {
		return 0, fmt.Errorf("image id %q is not an integer", last)
	}
	return id, nil
}
