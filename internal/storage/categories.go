package db

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"
)

// similarityMinLength guards the containment heuristic against short labels
// that occur inside unrelated words ("AI" inside "Thailand").
const similarityMinLength = 3

// ListCategories returns all category names, alphabetically sorted, with
// stored casing preserved.
func (db *DB) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := db.Pool.Query(ctx, "SELECT name FROM categories ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []string

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}

		categories = append(categories, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	return categories, nil
}

// CategoryExists reports whether a category with the given name exists,
// compared case-insensitively.
func (db *DB) CategoryExists(ctx context.Context, name string) (bool, error) {
	var exists bool

	err := db.Pool.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM categories WHERE lower(name) = lower($1))",
		name,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check category exists: %w", err)
	}

	return exists, nil
}

// InsertCategory creates the category if it does not already exist
// (case-insensitively) and reports whether a new row was created.
//
// Before inserting it logs a warning for every existing category in a
// containment relation with the candidate. The warning is advisory only and
// never blocks the insert; redundant categories are cleaned up out of band.
// The insert itself is conflict-safe against the unique index on lower(name),
// so concurrent calls for the same name never produce two rows.
func (db *DB) InsertCategory(ctx context.Context, name string) (bool, error) {
	exists, err := db.CategoryExists(ctx, name)
	if err != nil {
		return false, err
	}

	if exists {
		db.logger.Debug().Str("category", name).Msg("category already exists, skipping insert")
		return false, nil
	}

	existing, err := db.ListCategories(ctx)
	if err != nil {
		return false, err
	}

	for _, similar := range SimilarCategories(existing, name) {
		db.logger.Warn().
			Str("existing", similar).
			Str("candidate", name).
			Msg("similar category found")
	}

	tag, err := db.Pool.Exec(ctx,
		"INSERT INTO categories (name) VALUES ($1) ON CONFLICT ((lower(name))) DO NOTHING",
		name,
	)
	if err != nil {
		return false, fmt.Errorf("insert category: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return false, nil
	}

	db.logger.Info().Str("category", name).Msg("added new category")

	return true, nil
}

// SimilarCategories returns the existing categories whose lowercase form
// contains, or is contained in, the candidate's lowercase form. Candidates of
// similarityMinLength runes or fewer never match.
func SimilarCategories(existing []string, candidate string) []string {
	candidateLower := strings.ToLower(candidate)
	if utf8.RuneCountInString(candidateLower) <= similarityMinLength {
		return nil
	}

	var similar []string

	for _, name := range existing {
		nameLower := strings.ToLower(name)
		if nameLower == candidateLower {
			continue
		}

		if strings.Contains(nameLower, candidateLower) || strings.Contains(candidateLower, nameLower) {
			similar = append(similar, name)
		}
	}

	return similar
}
