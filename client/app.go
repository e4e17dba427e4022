// Package client wires the schema, gateway session and transaction store
// into the application-level request flows the front end drives.
package client

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"github.com/fetidd/webservices-frontend/gateway"
	"github.com/fetidd/webservices-frontend/internal/requesttype"
	"github.com/fetidd/webservices-frontend/schema"
	"github.com/fetidd/webservices-frontend/store"
)

// ErrNoTransactions is returned by Query when the filter matched nothing.
var ErrNoTransactions = fmt.Errorf("no transactions found for the supplied filter")

// Result is the outcome of one gateway response, keyed by the transaction
// reference it concerns.
type Result struct {
	Reference string
	Response  gateway.Response
	Err       error
}

type submitFunc func(ctx context.Context, values map[string]string) ([]Result, error)

// App owns the live schema, the gateway session and the transaction store.
// All dependencies are injected at construction; there is no package-level
// state.
type App struct {
	cfg       *Config
	logger    *slog.Logger
	schema    *schema.Schema
	settings  *schema.Store
	store     *store.Store
	gateway   *gateway.Client
	assembler *Assembler

	// submit maps each request type to its handler up front, so dispatch is
	// a lookup rather than conditional wiring.
	submit map[requesttype.RequestType]submitFunc
}

// NewApp builds the application from configuration. The schema comes from
// the persisted settings snapshot when one exists, otherwise from the
// defaults; a broken transaction store file degrades to memory-only.
func NewApp(logger *slog.Logger, cfg *Config) *App {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("app", "webservices"))

	settings := schema.NewStore(cfg.SettingsPath, logger)
	sch := settings.LoadOrDefault()

	var txStore *store.Store
	if cfg.StorePath != "" {
		var err error
		txStore, err = store.Open(cfg.StorePath, logger)
		if err != nil {
			logger.Warn("transaction store unavailable, using memory only", slog.Any("err", err))
			txStore = nil
		}
	}
	if txStore == nil {
		txStore = store.NewMemory(logger)
	}

	a := &App{
		cfg:       cfg,
		logger:    logger,
		schema:    sch,
		settings:  settings,
		store:     txStore,
		gateway:   gateway.New(cfg.GatewayURL, nil, logger),
		assembler: NewAssembler(sch, logger),
	}
	a.submit = map[requesttype.RequestType]submitFunc{
		requesttype.Auth:              a.submitAuth,
		requesttype.Refund:            a.submitRefund,
		requesttype.TransactionUpdate: a.submitUpdate,
		requesttype.AccountCheck:      a.submitAccountCheck,
		requesttype.Custom:            a.submitCustom,
	}
	return a
}

// Schema exposes the live schema for rendering forms and table columns.
func (a *App) Schema() *schema.Schema {
	return a.schema
}

// Store exposes the transaction store for table rendering and selection.
func (a *App) Store() *store.Store {
	return a.store
}

// LoggedIn reports the gateway session state.
func (a *App) LoggedIn() bool {
	return a.gateway.LoggedIn()
}

// OpenEditor starts a column-settings edit session over the live schema.
func (a *App) OpenEditor() *schema.Editor {
	return schema.NewEditor(a.schema, a.settings, a.logger)
}

// Close releases the transaction store.
func (a *App) Close() error {
	return a.store.Close()
}

// Login verifies the credentials against the gateway and fills the store
// with today's transactions.
func (a *App) Login(ctx context.Context, username, password string) error {
	resp, err := a.gateway.Login(ctx, username, password)
	if err != nil {
		return err
	}
	if resp.FoundCount() > 0 {
		if err := a.store.Add(records(resp)); err != nil {
			a.logger.Warn("could not store login transactions", slog.Any("err", err))
		}
	}
	return nil
}

// Logout drops the gateway session. Stored transactions stay readable.
func (a *App) Logout() {
	a.gateway.Logout()
}

// Query runs a TRANSACTIONQUERY over [start, end] with the given filters
// and replaces the store contents with the result. Returns the number of
// transactions found; ErrNoTransactions when the filter matched nothing.
func (a *App) Query(ctx context.Context, start, end time.Time, filters map[string]string) (int, error) {
	payload, err := a.assembler.BuildQueryPayload(start, end, filters)
	if err != nil {
		return 0, err
	}
	env, err := a.gateway.Process(ctx, payload)
	if err != nil {
		return 0, err
	}
	if len(env.Responses) == 0 {
		return 0, fmt.Errorf("gateway returned an empty envelope")
	}
	resp := env.Responses[0]
	if err := resp.Err(); err != nil {
		return 0, fmt.Errorf("querying transactions: %w", err)
	}
	found := resp.FoundCount()
	if found == 0 {
		return 0, ErrNoTransactions
	}
	if err := a.store.Clear(); err != nil {
		a.logger.Warn("could not clear transaction store", slog.Any("err", err))
	}
	if err := a.store.Add(records(&resp)); err != nil {
		a.logger.Warn("could not store query results", slog.Any("err", err))
	}
	return found, nil
}

// Submit dispatches a request built from user-entered values to the
// handler for its type. TRANSACTIONQUERY goes through Query instead.
func (a *App) Submit(ctx context.Context, rt requesttype.RequestType, values map[string]string) ([]Result, error) {
	handler, ok := a.submit[rt]
	if !ok {
		return nil, fmt.Errorf("no submit handler for request type %s", rt)
	}
	return handler(ctx, values)
}

func (a *App) submitAuth(ctx context.Context, values map[string]string) ([]Result, error) {
	return a.submitValues(ctx, requesttype.Auth, values)
}

func (a *App) submitUpdate(ctx context.Context, values map[string]string) ([]Result, error) {
	return a.submitValues(ctx, requesttype.TransactionUpdate, values)
}

func (a *App) submitAccountCheck(ctx context.Context, values map[string]string) ([]Result, error) {
	return a.submitValues(ctx, requesttype.AccountCheck, values)
}

func (a *App) submitCustom(ctx context.Context, values map[string]string) ([]Result, error) {
	return a.submitValues(ctx, requesttype.Custom, values)
}

// submitRefund refunds a single transaction described by values; the result
// is keyed by the parent reference being refunded.
func (a *App) submitRefund(ctx context.Context, values map[string]string) ([]Result, error) {
	results, err := a.submitValues(ctx, requesttype.Refund, values)
	if err != nil {
		return nil, err
	}
	for i := range results {
		if results[i].Reference == "NOREF" {
			results[i].Reference = values["parenttransactionreference"]
		}
	}
	return results, nil
}

func (a *App) submitValues(ctx context.Context, rt requesttype.RequestType, values map[string]string) ([]Result, error) {
	payload, err := a.assembler.BuildPayload(rt, values)
	if err != nil {
		return nil, err
	}
	env, err := a.gateway.Process(ctx, payload)
	if err != nil {
		return nil, err
	}
	return analyse(env.Responses), nil
}

// RefundSelection fans a refund out over several already-fetched
// transactions, one gateway request each. Individual failures land in the
// per-transaction result rather than aborting the batch.
func (a *App) RefundSelection(ctx context.Context, txns []store.Transaction) ([]Result, error) {
	if len(txns) == 0 {
		return nil, fmt.Errorf("no transactions selected")
	}
	var results []Result
	for _, txn := range txns {
		payload := map[string]any{
			"requesttypedescriptions":    []string{requesttype.Refund.String()},
			"parenttransactionreference": txn.Reference(),
			"sitereference":              txn["sitereference"],
		}
		env, err := a.gateway.Process(ctx, payload)
		if err != nil {
			results = append(results, Result{Reference: txn.Reference(), Err: err})
			continue
		}
		for _, resp := range env.Responses {
			results = append(results, Result{
				Reference: txn.Reference(),
				Response:  resp,
				Err:       resp.Err(),
			})
		}
	}
	return results, nil
}

// analyse keys each inner response by its transaction reference and
// attaches its error state, mirroring what the response window shows.
func analyse(responses []gateway.Response) []Result {
	results := make([]Result, 0, len(responses))
	for _, resp := range responses {
		ref := resp.TransactionReference
		if ref == "" {
			ref = "NOREF"
		}
		results = append(results, Result{Reference: ref, Response: resp, Err: resp.Err()})
	}
	return results
}

// records converts a response's raw record maps to store transactions.
func records(resp *gateway.Response) []store.Transaction {
	out := make([]store.Transaction, 0, len(resp.Records))
	for _, rec := range resp.Records {
		out = append(out, store.Transaction(rec))
	}
	return out
}
