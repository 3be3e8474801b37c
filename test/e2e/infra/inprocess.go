package infra

import (
	"context"
	"database/sql"
	"fmt"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/gctalent/talent-backoffice/api/v1"
	"github.com/gctalent/talent-backoffice/internal/config"
	"github.com/gctalent/talent-backoffice/internal/handlers"
	"github.com/gctalent/talent-backoffice/internal/server"
	"github.com/gctalent/talent-backoffice/internal/services"
	"github.com/gctalent/talent-backoffice/internal/store"
	"github.com/gctalent/talent-backoffice/pkg/scheduler"
)

// InProcessInfraManager runs the whole back office in the test process on an
// in-memory database seeded with demo data.
type InProcessInfraManager struct {
	cfg       *config.Configuration
	seedCount int

	db    *sql.DB
	sched *scheduler.Scheduler
	http  *httptest.Server
	log   *zap.SugaredLogger
}

func NewInProcessInfraManager(seedCount int) *InProcessInfraManager {
	cfg := config.NewConfiguration()
	cfg.Server.ServerMode = config.ServerModeProd
	return &InProcessInfraManager{
		cfg:       cfg,
		seedCount: seedCount,
		log:       zap.S().Named("infra"),
	}
}

func (m *InProcessInfraManager) Start(ctx context.Context) error {
	db, err := store.NewDBWithContext(ctx, ":memory:")
	if err != nil {
		return err
	}
	m.db = db

	st := store.NewStore(db)
	if err := st.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	if err := services.NewSeedService(st).Seed(ctx, m.seedCount); err != nil {
		return err
	}

	m.sched = scheduler.NewScheduler(m.cfg.Workers)
	limits := services.TableLimits{MaxPageSize: m.cfg.Tables.MaxPageSize, ExportMaxRows: m.cfg.Tables.ExportMaxRows}
	tables := services.NewTableService(st, services.NewCandidateService(st, m.sched), config.DefaultPresets(), limits)
	selections := services.NewSelectionService(st, tables)
	h := handlers.New(tables, selections, services.NewExportService(tables, selections))

	srv, err := server.NewServer(m.cfg, func(router *gin.RouterGroup) {
		v1.RegisterHandlers(router, h)
	})
	if err != nil {
		return err
	}
	m.http = httptest.NewServer(srv.Handler())
	m.log.Infow("back office started", "url", m.APIURL(), "candidates", m.seedCount)

	return WaitReady(ctx, m.APIURL())
}

func (m *InProcessInfraManager) Stop() error {
	if m.http != nil {
		m.http.Close()
	}
	if m.sched != nil {
		m.sched.Close()
	}
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}

func (m *InProcessInfraManager) APIURL() string {
	if m.http == nil {
		return ""
	}
	return m.http.URL + "/api/v1"
}
