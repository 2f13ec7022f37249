package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"ratetool/slcsp"
)

func main() {
	plansFile := flag.String("plans", "plans.csv", "Path to the plan rates CSV file")
	zipsFile := flag.String("zips", "zips.csv", "Path to the zipcode service-area CSV file")
	queryFile := flag.String("file", "slcsp.csv", "Path to the CSV file of zipcodes to resolve")
	outFile := flag.String("out", "", "Output CSV file (default: stdout)")
	parquetOut := flag.String("parquet", "", "Optional Parquet export path")
	pgConn := flag.String("pg", "", "Optional PostgreSQL connection string for result export")
	batchSize := flag.Int("batch", defaultBatchSize, "Batch size for PostgreSQL commits")
	flag.Parse()

	start := time.Now()

	results, err := resolveFiles(*plansFile, *zipsFile, *queryFile)
	if err != nil {
		log.Fatalf("Failed to resolve rates: %v", err)
	}

	out := os.Stdout
	if *outFile != "" {
		f, err := os.Create(*outFile)
		if err != nil {
			log.Fatalf("Failed to create output file: %v", err)
		}
		defer f.Close()
		out = f
	}
	if err := writeResults(out, results); err != nil {
		log.Fatalf("Failed to write results: %v", err)
	}

	if *parquetOut != "" {
		if err := exportParquet(*parquetOut, results); err != nil {
			log.Fatalf("Failed to export Parquet: %v", err)
		}
		log.Printf("Exported %d results to %s", len(results), *parquetOut)
	}

	if *pgConn != "" {
		if err := exportResultsToPg(context.Background(), *pgConn, results, *batchSize); err != nil {
			log.Fatalf("Failed to export to PostgreSQL: %v", err)
		}
	}

	var resolved int
	for _, rec := range results {
		if rec.HasRate {
			resolved++
		}
	}
	log.Printf("Resolved %d of %d zipcodes in %v", resolved, len(results), time.Since(start).Round(time.Millisecond))
}

// resolveFiles runs the full pipeline: load the three datasets, build both
// indexes, resolve every query zipcode. Build-time data errors abort here;
// per-zipcode failures are encoded in the returned records.
func resolveFiles(plansPath, zipsPath, queryPath string) ([]slcsp.QueryRecord, error) {
	plans, err := loadPlans(plansPath)
	if err != nil {
		return nil, fmt.Errorf("load plans: %w", err)
	}
	log.Printf("Loaded %d plan rows from %s", len(plans), plansPath)

	serviceAreas, err := loadServiceAreas(zipsPath)
	if err != nil {
		return nil, fmt.Errorf("load service areas: %w", err)
	}
	log.Printf("Loaded %d service-area rows from %s", len(serviceAreas), zipsPath)

	zipcodes, err := loadQueryZipcodes(queryPath)
	if err != nil {
		return nil, fmt.Errorf("load query zipcodes: %w", err)
	}
	log.Printf("Loaded %d query zipcodes from %s", len(zipcodes), queryPath)

	areaIdx := slcsp.BuildAreaIndex(serviceAreas)
	rateIdx := slcsp.BuildRateIndex(plans)

	return slcsp.ResolveAll(zipcodes, areaIdx, rateIdx), nil
}
