// Package scan rebuilds a name corpus from the per-year bill databases
// kept by the expense tracker: bills_<year>.db files holding a bills table
// with one row per receipt.
package scan

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/Sap-has/bill/internal/utils"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	_ "modernc.org/sqlite"
)

// Discover returns the bills_<year>.db files under dir, sorted by name so
// older years come first.
func Discover(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "bills_*.db"))
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, path := range matches {
		if yearOf(path) != "" {
			paths = append(paths, path)
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// yearOf extracts the four digit year from a bills_<year>.db basename,
// empty when the name does not fit the pattern.
func yearOf(path string) string {
	base := filepath.Base(path)
	const prefix = "bills_"
	const suffix = ".db"
	if len(base) != len(prefix)+4+len(suffix) {
		return ""
	}
	year := base[len(prefix) : len(prefix)+4]
	for _, r := range year {
		if r < '0' || r > '9' {
			return ""
		}
	}
	return year
}

// Names reads every bill name from the given databases, one reader per
// file, merged in the given file order. Blank rows are dropped and exact
// duplicates collapse to their first occurrence.
func Names(ctx context.Context, paths []string) ([]string, error) {
	results := make([][]string, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			names, err := readNames(ctx, path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = names
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var merged []string
	for _, names := range results {
		for _, name := range names {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			merged = append(merged, name)
		}
	}
	return merged, nil
}

// readNames pulls bill names from one database in row order.
func readNames(ctx context.Context, path string) ([]string, error) {
	if !utils.FileExists(path) {
		return nil, fmt.Errorf("no such database")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, "SELECT name FROM bills ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name sql.NullString
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		cleaned := utils.CleanName(name.String)
		if cleaned == "" {
			continue
		}
		names = append(names, cleaned)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.Debugf("Scanned %d names from %s", len(names), filepath.Base(path))
	return names, nil
}
