package app

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"

	"github.com/IBM/sarama"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	backendclient "github.com/you-humble/colixy-dashboard/internal/client/http/backend/v1"
	"github.com/you-humble/colixy-dashboard/internal/config"
	"github.com/you-humble/colixy-dashboard/internal/converter"
	"github.com/you-humble/colixy-dashboard/internal/model"
	authservice "github.com/you-humble/colixy-dashboard/internal/service/auth"
	catservice "github.com/you-humble/colixy-dashboard/internal/service/category"
	colisservice "github.com/you-humble/colixy-dashboard/internal/service/colis"
	navservice "github.com/you-humble/colixy-dashboard/internal/service/nav"
	actproducer "github.com/you-humble/colixy-dashboard/internal/service/producer/activity"
	prodservice "github.com/you-humble/colixy-dashboard/internal/service/product"
	"github.com/you-humble/colixy-dashboard/internal/service/scanner"
	txservice "github.com/you-humble/colixy-dashboard/internal/service/transaction"
	userservice "github.com/you-humble/colixy-dashboard/internal/service/user"
	"github.com/you-humble/colixy-dashboard/internal/session"
	thttp "github.com/you-humble/colixy-dashboard/internal/transport/http/dashboard/v1"
	"github.com/you-humble/colixy-dashboard/platform/closer"
	"github.com/you-humble/colixy-dashboard/platform/kafka"
	"github.com/you-humble/colixy-dashboard/platform/kafka/producer"
	"github.com/you-humble/colixy-dashboard/platform/logger"
)

const sessionCookieName = "colixy_session"

type Converter interface {
	ActivityToPayload(a model.Activity) ([]byte, error)
}

type ActivitySender interface {
	SendActivity(ctx context.Context, event model.Activity) error
}

type di struct {
	decoder scanner.Decoder

	syncProducer     sarama.SyncProducer
	activityProducer kafka.Producer
	activitySender   ActivitySender

	conv Converter

	cookieStore *sessions.CookieStore
	sessions    *session.Manager[*thttp.Workspace]

	nav     thttp.NavService
	handler http.Handler

	router *chi.Mux
}

func NewDI() *di { return &di{} }

func (d *di) Decoder(_ context.Context) scanner.Decoder {
	if d.decoder == nil {
		d.decoder = scanner.NewDecoder()
	}

	return d.decoder
}

func (d *di) KafkaConverter(_ context.Context) Converter {
	if d.conv == nil {
		d.conv = converter.NewKafkaConverter()
	}

	return d.conv
}

func (d *di) SyncProducer(_ context.Context) sarama.SyncProducer {
	if d.syncProducer == nil {
		cfg := config.C()

		p, err := sarama.NewSyncProducer(
			cfg.Kafka.Brokers(),
			cfg.Kafka.ActivityProducerConfig(),
		)
		if err != nil {
			panic(fmt.Sprintf("failed to create sync producer: %s\n", err.Error()))
		}
		closer.AddNamed("Kafka sync producer", func(ctx context.Context) error {
			return p.Close()
		})

		d.syncProducer = p
	}

	return d.syncProducer
}

// ActivityProducer falls back to dropping events when Kafka is switched off.
func (d *di) ActivityProducer(ctx context.Context) kafka.Producer {
	if d.activityProducer == nil {
		if !config.C().Kafka.Enabled() {
			logger.Info(ctx, "kafka disabled, parcel activity is not published")
			d.activityProducer = kafka.NopProducer{}
			return d.activityProducer
		}

		d.activityProducer = producer.NewProducer(
			d.SyncProducer(ctx),
			config.C().Kafka.ActivityTopic(),
			logger.L(),
		)
	}

	return d.activityProducer
}

func (d *di) ActivitySender(ctx context.Context) ActivitySender {
	if d.activitySender == nil {
		d.activitySender = actproducer.NewActivityProducer(
			d.ActivityProducer(ctx),
			d.KafkaConverter(ctx),
		)
	}

	return d.activitySender
}

// Workspace builds everything one operator needs. The backend session cookie
// lives in the workspace's own jar, so operators never share credentials.
// It runs on the request path of concurrent first requests, so it only reads
// the shared dependencies it is given and never touches the lazy getters.
func (d *di) Workspace(ctx context.Context, id uuid.UUID, decoder scanner.Decoder, activity ActivitySender) *thttp.Workspace {
	cfg := config.C()

	jar, err := cookiejar.New(nil)
	if err != nil {
		panic(fmt.Sprintf("failed to create cookie jar: %v", err))
	}

	client := backendclient.NewClient(
		&http.Client{Jar: jar, Timeout: cfg.Backend.Timeout()},
		backendclient.Config{
			BaseURL:      cfg.Backend.APIURL(),
			ImageBaseURL: cfg.Backend.ImageURL(),
			APIKey:       cfg.Backend.APIKey(),
		},
	)

	logger.Debug(ctx, "building workspace", logger.String("workspace_id", id.String()))

	return &thttp.Workspace{
		Auth:         authservice.NewAuthService(client),
		Categories:   catservice.NewCategoryService(client),
		Products:     prodservice.NewProductService(client),
		Transactions: txservice.NewTransactionService(client),
		Users:        userservice.NewUserService(client),
		Parcels:      colisservice.NewParcelService(client, decoder, activity),
		Returns:      colisservice.NewReturnService(client, decoder, activity),
	}
}

func (d *di) CookieStore(_ context.Context) *sessions.CookieStore {
	if d.cookieStore == nil {
		cfg := config.C().Session

		store := sessions.NewCookieStore(cfg.Key())
		store.Options.Path = "/"
		store.Options.MaxAge = int(cfg.MaxAge().Seconds())
		store.Options.HttpOnly = true
		store.Options.Secure = cfg.Secure()
		store.Options.SameSite = http.SameSiteLaxMode

		d.cookieStore = store
	}

	return d.cookieStore
}

func (d *di) Sessions(ctx context.Context) *session.Manager[*thttp.Workspace] {
	if d.sessions == nil {
		decoder := d.Decoder(ctx)
		activity := d.ActivitySender(ctx)
		wsCtx := context.WithoutCancel(ctx)

		d.sessions = session.NewManager(
			d.CookieStore(ctx),
			sessionCookieName,
			config.C().Session.MaxAge(),
			func(id uuid.UUID) *thttp.Workspace {
				return d.Workspace(wsCtx, id, decoder, activity)
			},
		)

		closer.AddNamed("Operator workspaces", d.sessions.Close)
	}

	return d.sessions
}

func (d *di) NavService(_ context.Context) thttp.NavService {
	if d.nav == nil {
		d.nav = navservice.NewNavService()
	}

	return d.nav
}

func (d *di) DashboardHandler(ctx context.Context) http.Handler {
	if d.handler == nil {
		d.handler = thttp.NewDashboardHandler(d.Sessions(ctx), d.NavService(ctx)).Routes()
	}

	return d.handler
}

func (d *di) Router(_ context.Context) *chi.Mux {
	if d.router == nil {
		d.router = chi.NewRouter()
	}

	return d.router
}
