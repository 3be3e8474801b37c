package infra

import (
	"context"
	"strings"
)

// ExternalInfraManager implements InfraManager for a back office started
// outside the suite, for example with `backoffice run --db-seed`.
type ExternalInfraManager struct {
	apiURL string
}

func NewExternalInfraManager(apiURL string) *ExternalInfraManager {
	return &ExternalInfraManager{apiURL: strings.TrimSuffix(apiURL, "/")}
}

func (e *ExternalInfraManager) Start(ctx context.Context) error {
	return WaitReady(ctx, e.apiURL)
}

func (e *ExternalInfraManager) Stop() error { return nil }

func (e *ExternalInfraManager) APIURL() string { return e.apiURL }
