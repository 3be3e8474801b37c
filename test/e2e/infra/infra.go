package infra

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/gctalent/talent-backoffice/pkg/client"
)

// InfraManager abstracts the lifecycle of the back office under test.
// In-process: the full stack runs on an httptest server.
// External: no-op, the back office is started outside the suite.
type InfraManager interface {
	Start(ctx context.Context) error
	Stop() error
	// APIURL is the base URL of the v1 API, valid after Start.
	APIURL() string
}

const (
	readyMaxElapsedTime = 30 * time.Second
)

// WaitReady polls the table list until the API answers.
func WaitReady(ctx context.Context, apiURL string) error {
	c, err := client.NewClient(apiURL)
	if err != nil {
		return err
	}
	_, err = backoff.Retry(ctx, func() (struct{}, error) {
		_, err := c.ListTables(ctx)
		return struct{}{}, err
	},
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(readyMaxElapsedTime),
	)
	return err
}
