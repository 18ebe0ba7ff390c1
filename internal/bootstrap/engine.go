package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/edupulse/riskcore/internal/api"
	"github.com/edupulse/riskcore/internal/chat"
	"github.com/edupulse/riskcore/internal/config"
	infralogger "github.com/edupulse/riskcore/internal/infra/logger"
	"github.com/edupulse/riskcore/internal/llmclient"
	"github.com/edupulse/riskcore/internal/logging"
	"github.com/edupulse/riskcore/internal/notify"
	"github.com/edupulse/riskcore/internal/processor"
	"github.com/edupulse/riskcore/internal/scoring"
	"github.com/edupulse/riskcore/internal/storage"
	"github.com/edupulse/riskcore/internal/telemetry"
)

const readinessPingTimeout = 2 * time.Second

// HTTPComponents holds all components needed for the HTTP server.
type HTTPComponents struct {
	DB       *sqlx.DB
	Handler  *api.Handler
	Server   *api.Server
	Poller   *processor.Poller
	Mirror   *storage.DocumentStore
	Audit    *notify.SQLiteAuditLog
	InfraLog infralogger.Logger
}

// NewHTTPComponents creates all components for the HTTP server.
func NewHTTPComponents(ctx context.Context, cfg *config.Config, infraLog infralogger.Logger) (*HTTPComponents, error) {
	serviceLog := logging.NewAdapter(infraLog)
	tp := telemetry.NewProvider()

	dbComps, err := SetupDatabase(ctx, cfg, infraLog)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	mirror := SetupDocumentStore(ctx, cfg, infraLog)
	sessionStore := SetupSessionStore(cfg, infraLog)
	audit := SetupAuditLog(cfg, infraLog)

	// Text path.
	analyzer := scoring.NewAnalyzer(serviceLog, tp)

	// Structured path.
	policy := scoring.NewPolicyEngine(serviceLog)

	// Alerting.
	var auditLog notify.AuditLog
	if audit != nil {
		auditLog = audit
	}
	alerter := notify.NewService(notify.NewLogSink(serviceLog), auditLog, serviceLog, tp)

	// Assessment pipeline and workers.
	var pipelineMirror processor.DocumentMirror
	if mirror != nil {
		pipelineMirror = mirror
	}
	pipeline := processor.NewPipeline(
		policy,
		dbComps.Assessments,
		pipelineMirror,
		alerter,
		dbComps.Alerts,
		serviceLog,
		tp,
	)
	batch := processor.NewBatchProcessor(pipeline, cfg.Service.Concurrency, serviceLog, tp)
	poller := processor.NewPoller(dbComps.Students, batch, serviceLog, tp, processor.PollerConfig{
		BatchSize:     cfg.Service.BatchSize,
		SweepInterval: cfg.Service.SweepInterval,
	})

	// Support chat.
	backend := llmclient.New(llmclient.Config{
		BaseURL:        cfg.Backend.URL,
		Timeout:        cfg.Backend.Timeout,
		RequestsPerSec: cfg.Backend.RequestsPerSec,
		Burst:          cfg.Backend.Burst,
	}, tp)
	sessions := chat.NewManager(sessionStore, serviceLog, tp)
	chatbot := chat.NewChatbot(analyzer, sessions, backend, alerter, serviceLog, tp)

	var apiMirror api.DocumentMirror
	if mirror != nil {
		apiMirror = mirror
	}
	handler := api.NewHandler(
		analyzer,
		pipeline,
		batch,
		chatbot,
		dbComps.Students,
		dbComps.Assessments,
		dbComps.Alerts,
		dbComps.ChatMessages,
		apiMirror,
		readinessChecks(dbComps.DB, mirror),
		serviceLog,
	)

	server := api.NewServer(handler, tp.Handler(), api.ServerConfig{
		Port:  cfg.Service.Port,
		Debug: cfg.Service.Debug,
	})

	return &HTTPComponents{
		DB:       dbComps.DB,
		Handler:  handler,
		Server:   server,
		Poller:   poller,
		Mirror:   mirror,
		Audit:    audit,
		InfraLog: infraLog,
	}, nil
}

// ProcessorComponents holds everything the standalone sweep worker needs.
type ProcessorComponents struct {
	DB       *sqlx.DB
	Poller   *processor.Poller
	Mirror   *storage.DocumentStore
	Audit    *notify.SQLiteAuditLog
	InfraLog infralogger.Logger
}

// NewProcessorComponents creates the roster sweep worker without the
// HTTP surface.
func NewProcessorComponents(ctx context.Context, cfg *config.Config, infraLog infralogger.Logger) (*ProcessorComponents, error) {
	serviceLog := logging.NewAdapter(infraLog)
	tp := telemetry.NewProvider()

	dbComps, err := SetupDatabase(ctx, cfg, infraLog)
	if err != nil {
		return nil, fmt.Errorf("setup database: %w", err)
	}

	mirror := SetupDocumentStore(ctx, cfg, infraLog)
	audit := SetupAuditLog(cfg, infraLog)

	policy := scoring.NewPolicyEngine(serviceLog)

	var auditLog notify.AuditLog
	if audit != nil {
		auditLog = audit
	}
	alerter := notify.NewService(notify.NewLogSink(serviceLog), auditLog, serviceLog, tp)

	var pipelineMirror processor.DocumentMirror
	if mirror != nil {
		pipelineMirror = mirror
	}
	pipeline := processor.NewPipeline(
		policy,
		dbComps.Assessments,
		pipelineMirror,
		alerter,
		dbComps.Alerts,
		serviceLog,
		tp,
	)
	batch := processor.NewBatchProcessor(pipeline, cfg.Service.Concurrency, serviceLog, tp)
	poller := processor.NewPoller(dbComps.Students, batch, serviceLog, tp, processor.PollerConfig{
		BatchSize:     cfg.Service.BatchSize,
		SweepInterval: cfg.Service.SweepInterval,
	})

	return &ProcessorComponents{
		DB:       dbComps.DB,
		Poller:   poller,
		Mirror:   mirror,
		Audit:    audit,
		InfraLog: infraLog,
	}, nil
}

func readinessChecks(db *sqlx.DB, mirror *storage.DocumentStore) []api.ReadinessCheck {
	checks := []api.ReadinessCheck{
		{
			Name: "postgresql",
			Check: func() error {
				ctx, cancel := context.WithTimeout(context.Background(), readinessPingTimeout)
				defer cancel()
				return db.PingContext(ctx)
			},
		},
	}
	if mirror != nil {
		checks = append(checks, api.ReadinessCheck{
			Name: "mongodb",
			Check: func() error {
				ctx, cancel := context.WithTimeout(context.Background(), readinessPingTimeout)
				defer cancel()
				return mirror.Ping(ctx)
			},
		})
	}
	return checks
}
