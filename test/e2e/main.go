package main

import (
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/gctalent/talent-backoffice/test/e2e/infra"
)

const (
	infraModeInProcess = "inprocess"
	infraModeExternal  = "external"
)

type configuration struct {
	InfraMode string
	APIURL    string
	SeedCount int
}

var (
	cfg          configuration
	infraManager infra.InfraManager
)

func (c configuration) Validate() error {
	if c.InfraMode != infraModeInProcess && c.InfraMode != infraModeExternal {
		return fmt.Errorf("invalid infra-mode %q: must be %q or %q", c.InfraMode, infraModeInProcess, infraModeExternal)
	}
	if c.InfraMode == infraModeExternal {
		if _, err := url.Parse(c.APIURL); err != nil {
			return fmt.Errorf("failed to parse api url: %v", err)
		}
	}
	if c.SeedCount < 50 {
		return fmt.Errorf("seed count must be at least 50, got %d", c.SeedCount)
	}
	return nil
}

func main() {
	flag.StringVar(&cfg.InfraMode, "infra-mode", infraModeInProcess, "Infrastructure mode: 'inprocess' (httptest) or 'external' (already running)")
	flag.StringVar(&cfg.APIURL, "api-url", "http://localhost:8000/api/v1", "Back office API url in external mode")
	flag.IntVar(&cfg.SeedCount, "seed-count", 200, "Demo candidates seeded in inprocess mode. An external back office must be seeded with at least as many.")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	zap.ReplaceGlobals(logger)
	defer func() { _ = logger.Sync() }()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("failed to validate configuration: %v", err)
	}

	switch cfg.InfraMode {
	case infraModeInProcess:
		infraManager = infra.NewInProcessInfraManager(cfg.SeedCount)
	case infraModeExternal:
		infraManager = infra.NewExternalInfraManager(cfg.APIURL)
	}

	RegisterFailHandler(Fail)
	if !RunSpecs(&testing.T{}, "E2E Suite") {
		os.Exit(1)
	}
}
