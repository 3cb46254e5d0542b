package http

import (
	"net/http"

	"dynamic-routing/internal/models"
	"dynamic-routing/internal/successrates"
)

type fetchSuccessRateHandler struct {
	successRateService successrates.SuccessRateService
}

func NewFetchSuccessRateHandler(successRateService successrates.SuccessRateService) AppHttpHandler {
	return &fetchSuccessRateHandler{
		successRateService: successRateService,
	}
}

// Handle processes POST /success-rate/fetch requests.
func (h *fetchSuccessRateHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	var req models.FetchSuccessRateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		return err
	}

	resp, err := h.successRateService.FetchSuccessRate(r.Context(), &req)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, resp)
}

type updateSuccessRateWindowHandler struct {
	successRateService successrates.SuccessRateService
}

func NewUpdateSuccessRateWindowHandler(successRateService successrates.SuccessRateService) AppHttpHandler {
	return &updateSuccessRateWindowHandler{
		successRateService: successRateService,
	}
}

// Handle processes POST /success-rate/update requests. A partial failure is reported
// through the error body: details name every label that was not updated and results
// list every label, committed ones included.
func (h *updateSuccessRateWindowHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	var req models.UpdateSuccessRateWindowRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		return err
	}

	resp, err := h.successRateService.UpdateSuccessRateWindow(r.Context(), &req)
	if err != nil {
		if resp != nil && len(resp.Results) > 0 {
			return &partialUpdateError{err: err, results: resp.Results}
		}
		return err
	}
	return writeJSON(w, http.StatusOK, resp)
}

type healthHandler struct{}

func NewHealthHandler() AppHttpHandler {
	return healthHandler{}
}

// Handle processes GET /health requests.
func (healthHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	return writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
