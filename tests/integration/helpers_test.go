package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	adaptershttp "github.com/mpatel/khata/internal/adapter/http"
	"github.com/mpatel/khata/internal/adapter/http/handler"
	"github.com/mpatel/khata/internal/adapter/repository/postgres"
	redisrepo "github.com/mpatel/khata/internal/adapter/repository/redis"
	infraredis "github.com/mpatel/khata/internal/infrastructure/redis"
	"github.com/mpatel/khata/internal/usecase"
	"github.com/mpatel/khata/tests/testutil"
)

// testEnv wires the full application stack against real Postgres and Redis.
type testEnv struct {
	DB          *testutil.TestDB
	Redis       *goredis.Client
	Router      http.Handler
	DebtorRepo  *postgres.DebtorRepository
	EntryRepo   *postgres.EntryRepository
	PaymentRepo *postgres.PaymentRepository
	OutboxRepo  *postgres.OutboxRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	t.Cleanup(testDB.Cleanup)

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	redisClient, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { redisClient.Close() })

	pool := testDB.Pool
	txManager := postgres.NewTxManager(pool)
	debtorRepo := postgres.NewDebtorRepository(pool)
	entryRepo := postgres.NewEntryRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	cashbookRepo := postgres.NewCashbookRepository(pool)
	outboxRepo := postgres.NewOutboxRepository(pool)
	cache := redisrepo.NewCache(redisClient)
	idempotencyStore := redisrepo.NewIdempotencyStore(redisClient)
	idGen := postgres.NewULIDGenerator()
	retrier := postgres.NewRetrier()

	debtorUC := usecase.NewDebtorUseCase(debtorRepo, idGen)
	entryUC := usecase.NewEntryUseCase(txManager, debtorRepo, entryRepo, paymentRepo, cashbookRepo, outboxRepo, idGen, cache)
	settlementUC := usecase.NewSettlementUseCase(txManager, debtorRepo, entryRepo, paymentRepo, cashbookRepo, outboxRepo, idGen, retrier, cache)
	outstandingUC := usecase.NewOutstandingUseCase(debtorRepo, entryRepo, paymentRepo, cache)
	reconciliationUC := usecase.NewReconciliationUseCase(debtorRepo, entryRepo, paymentRepo)

	router := adaptershttp.NewRouter(adaptershttp.RouterConfig{
		DebtorHandler:         handler.NewDebtorHandler(debtorUC),
		EntryHandler:          handler.NewEntryHandler(entryUC),
		SettlementHandler:     handler.NewSettlementHandler(settlementUC),
		OutstandingHandler:    handler.NewOutstandingHandler(outstandingUC),
		CashbookHandler:       handler.NewCashbookHandler(cashbookRepo),
		ReconciliationHandler: handler.NewReconciliationHandler(reconciliationUC),
		HealthHandler:         handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:      idempotencyStore,
		Logger:                zerolog.Nop(),
	})

	return &testEnv{
		DB:          testDB,
		Redis:       redisClient,
		Router:      router,
		DebtorRepo:  debtorRepo,
		EntryRepo:   entryRepo,
		PaymentRepo: paymentRepo,
		OutboxRepo:  outboxRepo,
	}
}

// doJSON performs a request against the router and decodes the JSON response
// into out (if out is non-nil).
func (env *testEnv) doJSON(t *testing.T, method, path string, body any, out any, headers ...[2]string) int {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	r := httptest.NewRequest(method, path, reader)
	r.Header.Set("Content-Type", "application/json")
	for _, h := range headers {
		r.Header.Set(h[0], h[1])
	}

	w := httptest.NewRecorder()
	env.Router.ServeHTTP(w, r)

	if out != nil {
		if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
			t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
		}
	}

	return w.Code
}
