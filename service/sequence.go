package service

import (
	"context"
	"database/sql"

	"account-opening-api/repository"
)

// NextSequence returns the sequence number for the next account: the highest
// existing account id plus one. An empty store reports 0 as its last id, so the
// first account gets sequence 1. Callers must hold the account creation lock
// in tx so the read stays consistent with the insert that follows.
func NextSequence(ctx context.Context, repo repository.IAccountRepository, tx *sql.Tx) (int64, error) {
	lastID, err := repo.GetLastAccountID(ctx, tx)
	if err != nil {
		return 0, err
	}
	return lastID + 1, nil
}
