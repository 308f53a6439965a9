// Package testutil provides fixtures for end-to-end API tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	adaptershttp "github.com/iho/gosar/internal/adapter/http"
	"github.com/iho/gosar/internal/adapter/http/dto"
	"github.com/iho/gosar/internal/adapter/http/handler"
	"github.com/iho/gosar/internal/adapter/store/memory"
	"github.com/iho/gosar/internal/adapter/store/postgres"
	"github.com/iho/gosar/internal/usecase"
)

// ServerOptions tweaks the wiring of a test server.
type ServerOptions struct {
	IdempotencyStore usecase.IdempotencyStore
}

// NewServer wires the full HTTP stack over an in-memory record store.
func NewServer(t *testing.T, opts ServerOptions) (http.Handler, *memory.Store) {
	t.Helper()

	store := memory.NewStore()
	clock := usecase.SystemClock{}
	reportUC := usecase.NewReportUseCase(store, postgres.NewULIDGenerator(), clock, nil, nil)

	router := adaptershttp.NewRouter(adaptershttp.RouterConfig{
		SarHandler:       handler.NewSarHandler(reportUC, clock),
		HealthHandler:    handler.NewHealthHandler(nil, nil),
		Logger:           zerolog.Nop(),
		IdempotencyStore: opts.IdempotencyStore,
	})

	return router, store
}

// ValidCreateRequest returns a create payload that passes validation.
func ValidCreateRequest() dto.CreateSarRequest {
	return dto.CreateSarRequest{
		Customer: dto.CustomerPayload{
			FirstName:            "Marcus",
			LastName:             "Webb",
			DateOfBirth:          time.Date(1975, 3, 12, 0, 0, 0, 0, time.UTC),
			SocialSecurityNumber: "123-45-6789",
			Address: dto.AddressPayload{
				Street:  "19 Harbor Lane",
				City:    "Springfield",
				State:   "IL",
				ZipCode: "62704",
			},
			PhoneNumber:   "555-867-5309",
			EmailAddress:  "marcus.webb@example.com",
			AccountNumber: "ACC-1001",
			CustomerType:  "Individual",
		},
		Transactions: []dto.TransactionPayload{
			{
				TransactionID:   "TXN-0001",
				TransactionDate: time.Date(2026, 1, 5, 10, 30, 0, 0, time.UTC),
				Amount:          decimal.NewFromFloat(9500),
				TransactionType: "Withdrawal",
				Description:     "Cash withdrawal just under reporting threshold",
			},
		},
		Suspicion: dto.SuspicionPayload{
			PrimaryReason:           "StructuredTransaction",
			Description:             "Repeated withdrawals structured below the reporting threshold",
			SuspicionIdentifiedDate: time.Date(2026, 1, 6, 9, 0, 0, 0, time.UTC),
		},
	}
}

// Envelope mirrors the API response wrapper with raw data for re-decoding.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Errors  []string        `json:"errors"`
}

// DoJSON performs a request against the handler and decodes the envelope.
func DoJSON(t *testing.T, h http.Handler, method, path string, body any) (int, Envelope) {
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
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	var env Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode response envelope %q: %v", w.Body.String(), err)
	}

	return w.Code, env
}

// CreateSar creates a report through the API and returns its ID.
func CreateSar(t *testing.T, h http.Handler, req dto.CreateSarRequest) string {
	t.Helper()

	code, env := DoJSON(t, h, http.MethodPost, "/api/v1/sars/", req)
	if code != http.StatusCreated {
		t.Fatalf("create returned status %d: %s", code, env.Message)
	}

	var created dto.SarResponse
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("failed to decode created SAR: %v", err)
	}
	return created.ID
}
