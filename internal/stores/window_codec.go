package stores

import (
	"fmt"

	"dynamic-routing/internal/models"

	"github.com/bytedance/sonic"
)

// storedWindow is the serialized form shared by the redis, sqlite and file backends.
//
// Example JSON:
//
//	{
//	  "version": 12,
//	  "blocks": [
//	    {"startTime": "2025-12-28T18:03:00Z", "successCount": 18, "failureCount": 2},
//	    {"startTime": "2025-12-28T18:08:00Z", "successCount": 3, "failureCount": 0}
//	  ]
//	}
type storedWindow struct {
	Version uint64         `json:"version"`
	Blocks  []models.Block `json:"blocks"`
}

func encodeWindow(version uint64, window *models.Window) ([]byte, error) {
	blocks := []models.Block{}
	if window != nil && window.Blocks != nil {
		blocks = window.Blocks
	}
	data, err := sonic.Marshal(storedWindow{Version: version, Blocks: blocks})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal window: %w", err)
	}
	return data, nil
}

func decodeWindow(data []byte) (*models.VersionedWindow, error) {
	var stored storedWindow
	if err := sonic.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("failed to unmarshal window: %w", err)
	}
	if stored.Version == 0 {
		return nil, fmt.Errorf("failed to unmarshal window: stored version must be positive")
	}
	return &models.VersionedWindow{
		Version: stored.Version,
		Window:  &models.Window{Blocks: stored.Blocks},
	}, nil
}
