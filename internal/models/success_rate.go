package models

// FetchSuccessRateRequest asks for the current score of each label.
//
// Example JSON:
//
//	{
//	  "id": "merchant_1",
//	  "params": "card:USD",
//	  "labels": ["stripe", "adyen", "stripe"],
//	  "config": {"min_aggregates_size": 5, "default_success_rate": 0.5}
//	}
type FetchSuccessRateRequest struct {
	ID     string      `json:"id" validate:"required"`
	Params string      `json:"params" validate:"required"`
	Labels []string    `json:"labels" validate:"required,min=1,dive,required"`
	Config FetchConfig `json:"config"`
}

type LabelWithScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// FetchSuccessRateResponse holds one entry per requested label, in request order.
type FetchSuccessRateResponse struct {
	LabelsWithScore []LabelWithScore `json:"labels_with_score"`
}

type LabelWithStatus struct {
	Label  string `json:"label" validate:"required"`
	Status bool   `json:"status"`
}

// UpdateSuccessRateWindowRequest records one outcome per entry of LabelsWithStatus.
//
// Example JSON:
//
//	{
//	  "id": "merchant_1",
//	  "params": "card:USD",
//	  "labels_with_status": [{"label": "stripe", "status": true}],
//	  "config": {
//	    "max_aggregates_size": 10,
//	    "current_block_threshold": {"duration_in_mins": 5, "max_total_count": 20}
//	  }
//	}
type UpdateSuccessRateWindowRequest struct {
	ID               string             `json:"id" validate:"required"`
	Params           string             `json:"params" validate:"required"`
	LabelsWithStatus []LabelWithStatus  `json:"labels_with_status" validate:"required,min=1,dive"`
	Config           UpdateWindowConfig `json:"config"`
}

// LabelUpdateResult reports the outcome of a single (label, status) entry.
type LabelUpdateResult struct {
	Label     string `json:"label"`
	Updated   bool   `json:"updated"`
	ErrorCode string `json:"error_code,omitempty"`
}

type UpdateSuccessRateWindowResponse struct {
	Message string              `json:"message"`
	Results []LabelUpdateResult `json:"results"`
}
