/*
Package main runs end-to-end tests against a live back office through its
HTTP API.

# Package Structure

	test/e2e/
	├── main.go          Entry point: flags, config, InfraManager setup, Ginkgo runner
	├── tests.go         Ginkgo specs (candidates table, reference tables)
	├── doc.go           This file
	├── infra/
	│   ├── infra.go     InfraManager interface + WaitReady
	│   ├── inprocess.go InProcessInfraManager (httptest, seeded in-memory DuckDB)
	│   └── external.go  ExternalInfraManager (no-op, already running)
	└── service/
	    └── service.go   BackofficeSvc: one table driven like a browser tab

# InfraManager

	type InfraManager interface {
	    Start(ctx) / Stop()
	    APIURL()
	}

The in-process manager builds the same stack as `backoffice run` and seeds
it with demo data. The external manager only waits for the API to answer.

# BackofficeSvc

BackofficeSvc keeps the canonical query of the last rendered view and sends
it with the next request, the way the address bar does. Specs assert on that
query to check what would be written to the URL.

# Running

	go run ./test/e2e
	go run ./test/e2e -infra-mode external -api-url http://localhost:8000/api/v1

An external back office must be started with `--db-seed` so the candidates
table holds at least 50 rows.
*/
package main
