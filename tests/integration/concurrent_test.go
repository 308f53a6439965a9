package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/iho/gosar/tests/testutil"
)

func TestConcurrentCreates(t *testing.T) {
	router, _ := testutil.NewServer(t, testutil.ServerOptions{})

	const workers = 10

	var wg sync.WaitGroup
	codes := make([]int, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := testutil.ValidCreateRequest()
			req.Customer.AccountNumber = fmt.Sprintf("ACC-%04d", i)

			payload, err := json.Marshal(req)
			if err != nil {
				return
			}
			r := httptest.NewRequest(http.MethodPost, "/api/v1/sars/", bytes.NewReader(payload))
			r.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, r)
			codes[i] = w.Code
		}(i)
	}
	wg.Wait()

	for i, code := range codes {
		if code != http.StatusCreated {
			t.Errorf("create %d returned status %d", i, code)
		}
	}

	result := listSars(t, router, "limit=100")
	if result.TotalCount != workers {
		t.Errorf("report count = %d, want %d", result.TotalCount, workers)
	}
}

func TestConcurrentSubmitOnlyOneWins(t *testing.T) {
	router, _ := testutil.NewServer(t, testutil.ServerOptions{})

	id := testutil.CreateSar(t, router, testutil.ValidCreateRequest())

	const attempts = 5

	var wg sync.WaitGroup
	codes := make([]int, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r := httptest.NewRequest(http.MethodPost, "/api/v1/sars/"+id+"/submit", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, r)
			codes[i] = w.Code
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, code := range codes {
		if code == http.StatusOK {
			succeeded++
		}
	}
	if succeeded == 0 {
		t.Error("at least one submit should succeed")
	}
}
