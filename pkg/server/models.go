package server

import (
	"time"

	"github.com/gwillem/ftcpreview/pkg/motion"
	"github.com/gwillem/ftcpreview/pkg/playback"
	"github.com/gwillem/ftcpreview/pkg/robot"
)

// ApiResponse is the envelope for every JSON response.
type ApiResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// PreviewCreateRequest creates a preview from a preset or from inline data.
// Inline fields override the preset.
type PreviewCreateRequest struct {
	Preset   string           `json:"preset,omitempty"`
	Caption  string           `json:"caption,omitempty"`
	Hardware robot.Hardware   `json:"hardware,omitempty"`
	Sequence []motion.Command `json:"sequence,omitempty"`
	Units    *motion.Units    `json:"units,omitempty"`
	SettleMs int              `json:"settleMs,omitempty"`
}

// PreviewInfo is a snapshot of one preview panel.
type PreviewInfo struct {
	ID         string          `json:"id"`
	Caption    string          `json:"caption,omitempty"`
	Hardware   robot.Hardware  `json:"hardware"`
	Highlights map[string]bool `json:"highlights"`
	Sequence   motion.Playlist `json:"sequence"`
	Pose       motion.Pose     `json:"pose"`
	State      playback.State  `json:"state"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// PreviewListResponse lists preview panels.
type PreviewListResponse struct {
	Previews []PreviewInfo `json:"previews"`
	Total    int           `json:"total"`
}

// PresetListResponse lists built-in presets.
type PresetListResponse struct {
	Presets []string `json:"presets"`
	Total   int      `json:"total"`
}

// HealthResponse is returned by the health check.
type HealthResponse struct {
	Status    string        `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
	Version   string        `json:"version,omitempty"`
	Uptime    time.Duration `json:"uptime"`
	Previews  int           `json:"previews"`
}
