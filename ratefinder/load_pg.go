package main

import (
	"context"
	_ "embed"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"ratetool/slcsp"
)

//go:embed sql/schema.sql
var resultsSchema string

const defaultBatchSize = 1000

const insertResultSQL = `
INSERT INTO slcsp_results (seq_num, zipcode, state, rate_area, rate, reason)
VALUES ($1, $2, $3, $4, $5, $6)`

// exportResultsToPg writes the resolved results into PostgreSQL in batched
// transactions. The schema is applied idempotently on every run.
func exportResultsToPg(ctx context.Context, connStr string, results []slcsp.QueryRecord, batchSize int) error {
	start := time.Now()

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return fmt.Errorf("parse connection string: %w", err)
	}
	poolConfig.MaxConns = 4

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	log.Println("Connected to PostgreSQL")

	if _, err := pool.Exec(ctx, resultsSchema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	var batchCount int
	for i, rec := range results {
		_, err := tx.Exec(ctx, insertResultSQL,
			int32(i), rec.Zipcode, areaState(rec), areaNumber(rec), rateNumeric(rec), rec.Reason.String())
		if err != nil {
			tx.Rollback(ctx)
			return fmt.Errorf("insert zipcode %s: %w", rec.Zipcode, err)
		}
		batchCount++

		if batchCount >= batchSize {
			if err := tx.Commit(ctx); err != nil {
				return fmt.Errorf("commit batch at result %d: %w", i, err)
			}
			tx, err = pool.Begin(ctx)
			if err != nil {
				return fmt.Errorf("begin new transaction: %w", err)
			}
			batchCount = 0
		}
	}

	if batchCount > 0 {
		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("commit final batch: %w", err)
		}
	} else {
		tx.Rollback(ctx) // Nothing to commit
	}

	log.Printf("Exported %d results to PostgreSQL in %v", len(results), time.Since(start).Round(time.Millisecond))
	return nil
}

// pgtype conversion helpers

func rateNumeric(rec slcsp.QueryRecord) pgtype.Numeric {
	if !rec.HasRate {
		return pgtype.Numeric{Valid: false}
	}
	var num pgtype.Numeric
	num.Scan(rec.Rate.StringFixed(2))
	return num
}

func areaState(rec slcsp.QueryRecord) pgtype.Text {
	if rec.Area == nil {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: rec.Area.State, Valid: true}
}

func areaNumber(rec slcsp.QueryRecord) pgtype.Int4 {
	if rec.Area == nil {
		return pgtype.Int4{Valid: false}
	}
	return pgtype.Int4{Int32: int32(rec.Area.Area), Valid: true}
}
