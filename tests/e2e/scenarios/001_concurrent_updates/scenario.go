package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// ### Start - fixed configs (no change)
// These values define deterministic outcomes and must match the expected scores.
const (
	totalOutcomes = 12000 // Total number of (label, status) outcomes to send
)

var (
	labels = []string{"stripe", "adyen", "checkout", "braintree"}
	// failure every Nth outcome of a label: stripe 1/10, adyen 1/4, checkout 1/2, braintree never
	failEvery = map[string]int{"stripe": 10, "adyen": 4, "checkout": 2, "braintree": 0}
)

// ### End - fixed configs

type labelWithStatus struct {
	Label  string `json:"label"`
	Status bool   `json:"status"`
}

type updateRequest struct {
	ID               string            `json:"id"`
	Params           string            `json:"params"`
	LabelsWithStatus []labelWithStatus `json:"labels_with_status"`
	Config           map[string]any    `json:"config"`
}

type errorResponse struct {
	ErrorCode string `json:"errorCode"`
	Details   []struct {
		Target string `json:"target"`
		Code   string `json:"code"`
	} `json:"details"`
}

type fetchResponse struct {
	LabelsWithScore []struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
	} `json:"labels_with_score"`
}

// main runs the e2e scenario: 001_concurrent_updates
//
// This scenario sends 12,000 outcomes for 4 labels of one routing key through
// POST /success-rate/update from many parallel clients, then reads the scores back
// through POST /success-rate/fetch.
//
// What it tests:
//   - Concurrent updates to the same window are all counted (optimistic version checks + retry)
//   - Per-label results: only labels reported as not updated are resent, so no outcome
//     is counted twice
//   - Fetch preserves order and repeats duplicate labels
//
// Expected results (window large enough to keep every outcome):
//   - stripe 0.9, adyen 0.75, checkout 0.5, braintree 1.0
//   - the duplicated "stripe" at the end of the fetch carries the same score
//
// Run the server first, e.g. `go run ./cmd/server --config ./configs/configs.yml`.
func main() {
	// these configs can be changed to run the scenario
	baseURL := "http://localhost:8080" // Base URL of the success rate API server
	params := "card:USD"               // Routing params of every request
	parallel := 16                     // Number of concurrent update requests
	maxResends := 20                   // Resends of a request's failed labels before giving up

	// fresh routing key per run so earlier runs do not skew the scores
	routingID := fmt.Sprintf("merchant-%d", time.Now().UnixNano())
	// one outcome per label per request, so the error details identify entries unambiguously
	outcomesPerRequest := len(labels)

	if totalOutcomes%outcomesPerRequest != 0 {
		fmt.Fprintf(os.Stderr, "ERROR: TOTAL_OUTCOMES (%d) must be divisible by OUTCOMES_PER_REQUEST (%d)\n", totalOutcomes, outcomesPerRequest)
		os.Exit(1)
	}
	requestCount := totalOutcomes / outcomesPerRequest

	fmt.Println("Starting e2e scenario: 001_concurrent_updates")
	fmt.Printf("BASE_URL: %s\n", baseURL)
	fmt.Printf("ROUTING_ID: %s\n", routingID)
	fmt.Printf("REQUEST_COUNT: %d\n", requestCount)
	fmt.Printf("PARALLEL: %d\n", parallel)
	fmt.Println()

	outcomes := generateOutcomes()

	workerChan := make(chan struct{}, parallel)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var errs []error
	var resentLabels int64 // labels resent after a 409/503

	for i := 0; i < requestCount; i++ {
		wg.Add(1)
		workerChan <- struct{}{} // Acquire worker slot

		go func(batch []labelWithStatus) {
			defer wg.Done()
			defer func() { <-workerChan }() // Release worker slot

			pending := batch
			for attempt := 0; len(pending) > 0; attempt++ {
				if attempt > maxResends {
					mu.Lock()
					errs = append(errs, fmt.Errorf("gave up with %d labels not updated", len(pending)))
					mu.Unlock()
					return
				}
				failed, err := sendUpdate(baseURL, routingID, params, pending)
				if err != nil {
					mu.Lock()
					errs = append(errs, err)
					mu.Unlock()
					return
				}
				atomic.AddInt64(&resentLabels, int64(len(failed)))
				pending = failed
			}
		}(outcomes[i*outcomesPerRequest : (i+1)*outcomesPerRequest])
	}
	wg.Wait()

	if len(errs) > 0 {
		fmt.Fprintf(os.Stderr, "ERROR: %d update requests failed, first: %v\n", len(errs), errs[0])
		os.Exit(1)
	}
	fmt.Printf("All updates completed (labels resent: %d)\n", atomic.LoadInt64(&resentLabels))

	scores, err := fetchScores(baseURL, routingID, params, append(append([]string{}, labels...), "stripe"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: fetch failed: %v\n", err)
		os.Exit(1)
	}

	expected := map[string]float64{"stripe": 0.9, "adyen": 0.75, "checkout": 0.5, "braintree": 1.0}
	fmt.Println("=== Scores ===")
	ok := len(scores.LabelsWithScore) == len(labels)+1
	for _, s := range scores.LabelsWithScore {
		match := math.Abs(s.Score-expected[s.Label]) < 1e-9
		ok = ok && match
		fmt.Printf("%-10s %.4f (expected %.4f) %v\n", s.Label, s.Score, expected[s.Label], match)
	}
	if !ok {
		fmt.Fprintln(os.Stderr, "ERROR: scores do not match")
		os.Exit(1)
	}
	fmt.Println("Scenario completed successfully")
}

// generateOutcomes spreads the outcomes round-robin over the labels.
func generateOutcomes() []labelWithStatus {
	outcomes := make([]labelWithStatus, 0, totalOutcomes)
	seen := make(map[string]int, len(labels))
	for i := 0; i < totalOutcomes; i++ {
		label := labels[i%len(labels)]
		seen[label]++
		every := failEvery[label]
		outcomes = append(outcomes, labelWithStatus{
			Label:  label,
			Status: every == 0 || seen[label]%every != 0,
		})
	}
	return outcomes
}

// sendUpdate posts one update and returns the entries that were not applied.
func sendUpdate(baseURL, routingID, params string, batch []labelWithStatus) ([]labelWithStatus, error) {
	body, err := json.Marshal(updateRequest{
		ID:               routingID,
		Params:           params,
		LabelsWithStatus: batch,
		Config: map[string]any{
			"max_aggregates_size":     1000,
			"current_block_threshold": map[string]any{"max_total_count": 100},
		},
	})
	if err != nil {
		return nil, err
	}

	resp, err := http.Post(baseURL+"/success-rate/update", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)

	switch resp.StatusCode {
	case http.StatusOK:
		return nil, nil
	case http.StatusConflict, http.StatusServiceUnavailable:
		var errResp errorResponse
		if err := json.Unmarshal(data, &errResp); err != nil {
			return nil, fmt.Errorf("invalid error body: %w", err)
		}
		notUpdated := make(map[string]bool, len(errResp.Details))
		for _, d := range errResp.Details {
			notUpdated[d.Target] = true
		}
		failed := make([]labelWithStatus, 0, len(notUpdated))
		for _, entry := range batch {
			if notUpdated[entry.Label] {
				failed = append(failed, entry)
			}
		}
		return failed, nil
	default:
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, data)
	}
}

func fetchScores(baseURL, routingID, params string, fetchLabels []string) (*fetchResponse, error) {
	body, err := json.Marshal(map[string]any{
		"id":     routingID,
		"params": params,
		"labels": fetchLabels,
		"config": map[string]any{"min_aggregates_size": 10, "default_success_rate": 0.5},
	})
	if err != nil {
		return nil, err
	}

	resp, err := http.Post(baseURL+"/success-rate/fetch", "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, data)
	}

	var out fetchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}
