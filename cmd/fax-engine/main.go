// cmd/fax-engine/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"faxgen/internal/audit"
	"faxgen/internal/common/aws"
	"faxgen/internal/common/camunda"
	"faxgen/internal/common/config"
	"faxgen/internal/common/database"
	"faxgen/internal/common/logger"
	"faxgen/internal/common/observability"
	"faxgen/internal/fax"
	"faxgen/internal/fax/render"
	"faxgen/internal/transmit"
	"faxgen/pkg/registry"

	gf "faxgen/internal/workers/fax/generate-fax"
	tf "faxgen/internal/workers/fax/transmit-fax"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting fax engine...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("fax-engine")
	defer obs.Shutdown()

	taskCatalog, err := registry.LoadRegistry("configs/registry.json")
	if err != nil {
		zapLog.Warn("task registry not loaded, skipping catalog checks", zap.Error(err))
	} else {
		zapLog.Info("task registry loaded",
			zap.String("version", taskCatalog.Version),
			zap.Int("tasks", len(taskCatalog.Tasks)))
	}

	ctx := context.Background()

	// --- Init Camunda Client with retry ---
	var camundaClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		camundaClient, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      10 * time.Second,
			RequestTimeout:         time.Duration(cfg.Camunda.RequestTimeout) * time.Millisecond,
		})
		return err
	}, 10, 2*time.Second, zapLog, "Camunda client initialization")

	if err != nil {
		zapLog.Fatal("camunda client failed after retries", zap.Error(err))
	}
	zapLog.Info("Camunda client connected successfully")

	// --- Audit sinks (each optional) ---
	var recorders []audit.Recorder

	if cfg.Audit.PostgresEnabled {
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()
		recorders = append(recorders, audit.NewPostgresRecorder(pg.DB))
		zapLog.Info("PostgreSQL connected successfully")
	}

	if cfg.Audit.ElasticsearchEnabled {
		var esClient *database.ElasticsearchClient
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping()
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		recorders = append(recorders, audit.NewElasticRecorder(esClient.Client, cfg.Audit.ElasticsearchIndex))
		zapLog.Info("Elasticsearch connected successfully")
	}

	var reserver fax.Reserver
	if cfg.Audit.RedisReserveEnabled {
		var redis *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			redis, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return redis.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redis.Close()
		reserver = audit.NewRedisReserver(redis.Client, time.Duration(cfg.Audit.ReserveTTLHours)*time.Hour)
		zapLog.Info("Redis connected successfully")
	}

	var recorder audit.Recorder
	if len(recorders) > 0 {
		recorder = audit.NewFanout(recorders...)
	}

	// --- Generation engine ---
	fetcher := render.NewImageFetcher(
		cfg.Engine.ImageConcurrency,
		time.Duration(cfg.Engine.ImageTimeout)*time.Millisecond,
		zapLog,
	)
	renderer := render.New(fetcher, zapLog)
	engine := fax.NewEngine(renderer, recorder, reserver, zapLog, cfg.Engine.ReferenceMaxAttempts)

	// --- Delivery gateway ---
	var transmitter transmit.Transmitter
	var notifier *transmit.StatusNotifier

	if cfg.Transmit.SES.Enabled {
		sesClient, err := aws.NewSESClient(ctx, cfg.Transmit.AWS.Region)
		if err != nil {
			zapLog.Fatal("ses client init failed", zap.Error(err))
		}
		transmitter = transmit.NewSESGateway(
			sesClient,
			cfg.Transmit.SES.FromEmail,
			cfg.Transmit.SES.GatewayDomain,
			zapLog,
		)
		zapLog.Info("SES gateway initialized")
	}

	if cfg.Transmit.SNS.Enabled {
		snsClient, err := aws.NewSNSClient(ctx, cfg.Transmit.AWS.Region)
		if err != nil {
			zapLog.Fatal("sns client init failed", zap.Error(err))
		}
		notifier = transmit.NewStatusNotifier(snsClient, cfg.Transmit.SNS.TopicARN, zapLog)
		zapLog.Info("SNS status notifier initialized")
	}

	// --- Register workers ---

	if taskCatalog != nil {
		for _, taskType := range []string{gf.TaskType, tf.TaskType} {
			if cfg.Workers[taskType].Enabled && taskCatalog.Find(taskType) == nil {
				zapLog.Warn("enabled worker missing from task registry", zap.String("taskType", taskType))
			}
		}
	}

	var activeWorkers []*camunda.CamundaWorker

	if wcfg := cfg.Workers[gf.TaskType]; wcfg.Enabled {
		gcfg := gf.LoadConfig()
		applyWorkerOverrides(&gcfg.Timeout, &gcfg.MaxJobsActive, wcfg)
		handler := gf.NewHandler(gcfg, engine, obs, log)
		w := camunda.NewWorker(camundaClient.GetClient(), gf.TaskType, gcfg.MaxJobsActive, gcfg.Timeout, handler, zapLog)
		w.Start()
		activeWorkers = append(activeWorkers, w)
	} else {
		zapLog.Info("worker disabled", zap.String("taskType", gf.TaskType))
	}

	if wcfg := cfg.Workers[tf.TaskType]; wcfg.Enabled {
		if transmitter == nil {
			zapLog.Fatal("transmit-fax worker enabled but SES gateway is disabled")
		}
		tcfg := tf.LoadConfig()
		applyWorkerOverrides(&tcfg.Timeout, &tcfg.MaxJobsActive, wcfg)
		handler := tf.NewHandler(tcfg, transmitter, notifier, log)
		w := camunda.NewWorker(camundaClient.GetClient(), tf.TaskType, tcfg.MaxJobsActive, tcfg.Timeout, handler, zapLog)
		w.Start()
		activeWorkers = append(activeWorkers, w)
	} else {
		zapLog.Info("worker disabled", zap.String("taskType", tf.TaskType))
	}

	zapLog.Info("All workers registered successfully")

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if err := camundaClient.HealthCheck(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{"status": "unavailable", "error": err.Error()})
				return
			}
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")

	for _, w := range activeWorkers {
		w.Stop(ctx)
	}
	if err := camundaClient.Close(); err != nil {
		zapLog.Error("Error closing Camunda client", zap.Error(err))
	}

	zapLog.Info("Fax engine stopped")
}

// applyWorkerOverrides layers non-zero YAML worker settings over the
// package defaults from LoadConfig.
func applyWorkerOverrides(timeout *time.Duration, maxJobsActive *int, wcfg config.WorkerConfig) {
	if wcfg.Timeout > 0 {
		*timeout = time.Duration(wcfg.Timeout) * time.Millisecond
	}
	if wcfg.MaxJobsActive > 0 {
		*maxJobsActive = wcfg.MaxJobsActive
	}
}
