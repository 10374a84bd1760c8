package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/IBM/sarama"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	"github.com/you-humble/spare-parts/internal/config"
	envconfig "github.com/you-humble/spare-parts/internal/config/env"
	"github.com/you-humble/spare-parts/internal/converter"
	"github.com/you-humble/spare-parts/internal/metrics"
	"github.com/you-humble/spare-parts/internal/repository/snapshot"
	"github.com/you-humble/spare-parts/internal/repository/source"
	srcconsumer "github.com/you-humble/spare-parts/internal/service/consumer/source"
	"github.com/you-humble/spare-parts/internal/service/inventory"
	"github.com/you-humble/spare-parts/internal/service/loader"
	snapproducer "github.com/you-humble/spare-parts/internal/service/producer/snapshot"
	"github.com/you-humble/spare-parts/internal/service/syncer"
	"github.com/you-humble/spare-parts/internal/service/watcher"
	"github.com/you-humble/spare-parts/internal/transport/grpc/interceptors"
	tgrpc "github.com/you-humble/spare-parts/internal/transport/grpc/inventory/v1"
	thttp "github.com/you-humble/spare-parts/internal/transport/http/inventory/v1"
	"github.com/you-humble/spare-parts/platform/closer"
	"github.com/you-humble/spare-parts/platform/grpc/health"
	"github.com/you-humble/spare-parts/platform/kafka"
	"github.com/you-humble/spare-parts/platform/kafka/consumer"
	"github.com/you-humble/spare-parts/platform/kafka/middleware"
	"github.com/you-humble/spare-parts/platform/kafka/producer"
	"github.com/you-humble/spare-parts/platform/logger"
)

type InventoryService interface {
	thttp.InventoryService
	tgrpc.InventoryService
}

type SyncService interface {
	thttp.Syncer
	RunPeriodic(ctx context.Context, interval time.Duration) error
}

type SourceConsumer interface {
	RunSourceUpdatedConsume(ctx context.Context) error
}

type Watcher interface {
	Run(ctx context.Context) error
}

type di struct {
	mongo  *mongo.Client
	opener loader.Opener

	recorder *metrics.Recorder
	loader   inventory.Loader
	store    inventory.SnapshotStore

	syncProducer     sarama.SyncProducer
	snapshotProducer kafka.Producer
	publisher        inventory.Publisher

	consumerGroup         sarama.ConsumerGroup
	sourceUpdatedConsumer kafka.Consumer
	sourceConsumer        SourceConsumer

	service InventoryService
	syncer  SyncService
	watcher Watcher

	httpHandler *chi.Mux
	grpcServer  *grpc.Server
}

func NewDI() *di { return &di{} }

func (d *di) MongoDB(ctx context.Context) *mongo.Client {
	if d.mongo == nil {
		cfg := config.C()

		client, err := mongo.Connect(options.Client().ApplyURI(cfg.Mongo.DSN()))
		if err != nil {
			panic(fmt.Sprintf("failed to connect to MongoDB: %v\n", err))
		}

		if err := client.Ping(ctx, nil); err != nil {
			panic(fmt.Sprintf("failed to ping MongoDB: %v\n", err))
		}

		closer.AddNamed("MongoDB Client", func(ctx context.Context) error {
			return client.Disconnect(ctx)
		})

		d.mongo = client
	}

	return d.mongo
}

func (d *di) Opener(ctx context.Context) loader.Opener {
	if d.opener == nil {
		cfg := config.C()

		switch cfg.Source.Kind() {
		case envconfig.SourceKindMongo:
			d.opener = source.NewMongoOpener(d.MongoDB(ctx).Database(cfg.Mongo.DatabaseName()))
		default:
			d.opener = source.NewFileOpener(cfg.Source.Path())
		}
	}

	return d.opener
}

func (d *di) Recorder(ctx context.Context) *metrics.Recorder {
	if d.recorder == nil {
		d.recorder = metrics.NewRecorder(d.Opener(ctx).Name())
	}

	return d.recorder
}

func (d *di) Loader(ctx context.Context) inventory.Loader {
	if d.loader == nil {
		var ids converter.IDGenerator = converter.RandomIDs{}
		if config.C().Source.StableIDs() {
			ids = converter.StableIDs{}
		}

		d.loader = loader.NewLoader(
			d.Opener(ctx),
			converter.NewNormalizer(ids),
			d.Recorder(ctx),
			config.C().Source.Sheet(),
		)
	}

	return d.loader
}

func (d *di) Store(ctx context.Context) inventory.SnapshotStore {
	if d.store == nil {
		d.store = snapshot.NewStore(d.Opener(ctx).Name())
	}

	return d.store
}

func (d *di) SyncProducer(_ context.Context) sarama.SyncProducer {
	if d.syncProducer == nil {
		cfg := config.C().Kafka

		p, err := sarama.NewSyncProducer(cfg.Brokers(), cfg.ProducerConfig())
		if err != nil {
			panic(fmt.Sprintf("failed to create sync producer: %v\n", err))
		}

		closer.AddNamed("Kafka Sync Producer", func(ctx context.Context) error {
			return p.Close()
		})

		d.syncProducer = p
	}

	return d.syncProducer
}

func (d *di) SnapshotLoadedProducer(ctx context.Context) kafka.Producer {
	if d.snapshotProducer == nil {
		d.snapshotProducer = producer.NewProducer(
			d.SyncProducer(ctx),
			config.C().Kafka.SnapshotTopic(),
			logger.L(),
		)
	}

	return d.snapshotProducer
}

// Publisher stays nil while kafka is disabled.
func (d *di) Publisher(ctx context.Context) inventory.Publisher {
	if d.publisher == nil && config.C().Kafka.Enabled() {
		d.publisher = snapproducer.NewSnapshotProducer(
			d.SnapshotLoadedProducer(ctx),
			converter.NewKafkaConverter(),
		)
	}

	return d.publisher
}

func (d *di) InventoryService(ctx context.Context) InventoryService {
	if d.service == nil {
		d.service = inventory.NewInventoryService(
			d.Loader(ctx),
			d.Store(ctx),
			d.Publisher(ctx),
			d.Recorder(ctx),
		)
	}

	return d.service
}

func (d *di) SyncService(ctx context.Context) SyncService {
	if d.syncer == nil {
		cfg := config.C()

		d.syncer = syncer.NewSyncService(
			&http.Client{},
			syncer.Config{
				URL:  cfg.Sync.URL(),
				Dest: cfg.Source.Path(),
				DownloadConfig: syncer.DownloadConfig{
					Timeout:    cfg.Sync.Timeout(),
					Retries:    cfg.Sync.Retries(),
					RetryDelay: cfg.Sync.RetryDelay(),
				},
			},
			d.InventoryService(ctx),
			d.Recorder(ctx),
		)
	}

	return d.syncer
}

func (d *di) Watcher(ctx context.Context) Watcher {
	if d.watcher == nil {
		cfg := config.C().Source
		d.watcher = watcher.NewWatcher(cfg.Path(), cfg.WatchDebounce(), d.InventoryService(ctx))
	}

	return d.watcher
}

func (d *di) ConsumerGroup(_ context.Context) sarama.ConsumerGroup {
	if d.consumerGroup == nil {
		cfg := config.C().Kafka

		group, err := sarama.NewConsumerGroup(
			cfg.Brokers(),
			cfg.ConsumerGroupID(),
			cfg.ConsumerConfig(),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create consumer group: %v\n", err))
		}

		closer.AddNamed("Kafka Consumer Group", func(ctx context.Context) error {
			return group.Close()
		})

		d.consumerGroup = group
	}

	return d.consumerGroup
}

func (d *di) SourceUpdatedConsumer(ctx context.Context) kafka.Consumer {
	if d.sourceUpdatedConsumer == nil {
		d.sourceUpdatedConsumer = consumer.NewConsumer(
			d.ConsumerGroup(ctx),
			[]string{config.C().Kafka.SourceTopic()},
			logger.L(),
			middleware.Recovery(logger.L()),
			middleware.Logging(logger.L()),
		)
	}

	return d.sourceUpdatedConsumer
}

func (d *di) SourceConsumer(ctx context.Context) SourceConsumer {
	if d.sourceConsumer == nil {
		d.sourceConsumer = srcconsumer.NewSourceConsumer(
			d.SourceUpdatedConsumer(ctx),
			d.SyncService(ctx),
		)
	}

	return d.sourceConsumer
}

// SyncLimiter allows RatePerMinute manual syncs per minute with a burst of the same size.
func (d *di) SyncLimiter(_ context.Context) *rate.Limiter {
	perMinute := config.C().Sync.RatePerMinute()
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)
}

func (d *di) Router(ctx context.Context) *chi.Mux {
	if d.httpHandler == nil {
		r := chi.NewRouter()
		r.Use(
			chimw.Recoverer,
			chimw.Logger,
		)
		thttp.NewInventoryHandler(
			d.InventoryService(ctx),
			d.SyncService(ctx),
			d.SyncLimiter(ctx),
		).Register(r)

		d.httpHandler = r
	}

	return d.httpHandler
}

func (d *di) GRPCServer(ctx context.Context) *grpc.Server {
	if d.grpcServer == nil {
		d.grpcServer = grpc.NewServer(
			grpc.ChainUnaryInterceptor(
				interceptors.UnaryLogging(),
				interceptors.UnaryRecovery(),
			),
		)
		tgrpc.RegisterInventoryServiceServer(d.grpcServer, tgrpc.NewInventoryHandler(d.InventoryService(ctx)))

		reflection.Register(d.grpcServer)

		health.RegisterService(d.grpcServer, tgrpc.ServiceName)
	}

	return d.grpcServer
}
