package services

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/padelops/tournament-engine/models"
)

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// pairKey identifies an unordered pair of registrations within a group, used
// to detect already generated group matches.
func pairKey(group, idA, idB string) string {
	if idB < idA {
		idA, idB = idB, idA
	}
	return group + "|" + idA + "|" + idB
}

// groupRegistrations buckets a category's registrations by normalized group
// label, preserving the repository's seed ordering within each group. Group
// names come back sorted so generation is deterministic.
func groupRegistrations(regs []*models.Registration) (map[string][]string, []string) {
	byGroup := make(map[string][]string)
	for _, reg := range regs {
		name := models.NormalizeGroupName(reg.GroupName)
		byGroup[name] = append(byGroup[name], reg.ID)
	}
	names := make([]string, 0, len(byGroup))
	for name := range byGroup {
		names = append(names, name)
	}
	sort.Strings(names)
	return byGroup, names
}

// withTx runs fn inside a transaction, rolling back on error or panic.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
