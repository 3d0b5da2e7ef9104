package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gwillem/ftcpreview/pkg/motion"
	"github.com/gwillem/ftcpreview/pkg/playback"
	"github.com/gwillem/ftcpreview/pkg/robot"
)

func errorResponse(c *gin.Context, code int, msg string) {
	c.JSON(code, ApiResponse{
		Status: "error",
		Error:  msg,
	})
}

// lookup fetches the instance named by the :id param, writing a 404 if it
// does not exist.
func (s *Server) lookup(c *gin.Context) (*Instance, bool) {
	id := c.Param("id")
	inst, err := s.manager.Get(id)
	if err != nil {
		errorResponse(c, http.StatusNotFound, fmt.Sprintf("preview %s does not exist", id))
		return nil, false
	}
	return inst, true
}

// snapshot reads engine state on the loop.
func (s *Server) snapshot(c *gin.Context, inst *Instance) (PreviewInfo, error) {
	info := PreviewInfo{
		ID:         inst.ID,
		Caption:    inst.Caption,
		Hardware:   inst.Hardware,
		Highlights: robot.Highlights(inst.Hardware, robot.DefaultMounts()),
		CreatedAt:  inst.CreatedAt,
	}
	err := s.loop.Call(c.Request.Context(), func() {
		info.Sequence = inst.Engine.Playlist()
		info.Pose = inst.Engine.Pose()
		info.State = inst.Engine.State()
	})
	return info, err
}

func (s *Server) respondSnapshot(c *gin.Context, code int, inst *Instance, msg string) {
	info, err := s.snapshot(c, inst)
	if err != nil {
		errorResponse(c, http.StatusServiceUnavailable, fmt.Sprintf("read preview state: %v", err))
		return
	}
	c.JSON(code, ApiResponse{
		Status:  "success",
		Message: msg,
		Data:    info,
	})
}

func (s *Server) handleGetPresets(c *gin.Context) {
	names := robot.PresetNames()
	c.JSON(http.StatusOK, ApiResponse{
		Status: "success",
		Data:   PresetListResponse{Presets: names, Total: len(names)},
	})
}

func (s *Server) handleGetPreviews(c *gin.Context) {
	instances := s.manager.List()

	infos := make([]PreviewInfo, 0, len(instances))
	for _, inst := range instances {
		info, err := s.snapshot(c, inst)
		if err != nil {
			errorResponse(c, http.StatusServiceUnavailable, fmt.Sprintf("read preview state: %v", err))
			return
		}
		infos = append(infos, info)
	}

	c.JSON(http.StatusOK, ApiResponse{
		Status: "success",
		Data:   PreviewListResponse{Previews: infos, Total: len(infos)},
	})
}

func (s *Server) handleCreatePreview(c *gin.Context) {
	var req PreviewCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "invalid preview request: "+err.Error())
		return
	}

	var cfg robot.Config
	if req.Preset != "" {
		preset, ok := robot.Preset(req.Preset)
		if !ok {
			errorResponse(c, http.StatusBadRequest, fmt.Sprintf("unknown preset %q, available: %v", req.Preset, robot.PresetNames()))
			return
		}
		cfg = preset
	}
	if req.Caption != "" {
		cfg.Caption = req.Caption
	}
	if req.Hardware != nil {
		cfg.Hardware = req.Hardware
	}
	if req.Sequence != nil {
		cfg.Sequence = motion.Playlist(req.Sequence)
	}
	if req.Units != nil {
		cfg.Units = *req.Units
	}
	if req.SettleMs != 0 {
		cfg.SettleMs = req.SettleMs
	}

	inst, err := s.manager.Create(cfg)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, fmt.Sprintf("create preview: %v", err))
		return
	}

	s.respondSnapshot(c, http.StatusCreated, inst, fmt.Sprintf("preview %s created", inst.ID))
}

func (s *Server) handleGetPreview(c *gin.Context) {
	inst, ok := s.lookup(c)
	if !ok {
		return
	}
	s.respondSnapshot(c, http.StatusOK, inst, "")
}

func (s *Server) handleDeletePreview(c *gin.Context) {
	id := c.Param("id")
	if err := s.manager.Remove(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			errorResponse(c, http.StatusNotFound, fmt.Sprintf("preview %s does not exist", id))
			return
		}
		errorResponse(c, http.StatusInternalServerError, fmt.Sprintf("delete preview: %v", err))
		return
	}

	c.JSON(http.StatusOK, ApiResponse{
		Status:  "success",
		Message: fmt.Sprintf("preview %s deleted", id),
	})
}

func (s *Server) handleRun(c *gin.Context) {
	inst, ok := s.lookup(c)
	if !ok {
		return
	}

	var runErr error
	if err := s.loop.Call(c.Request.Context(), func() { runErr = inst.Engine.Run() }); err != nil {
		errorResponse(c, http.StatusServiceUnavailable, fmt.Sprintf("run: %v", err))
		return
	}
	switch {
	case errors.Is(runErr, motion.ErrInvalidCommand):
		errorResponse(c, http.StatusBadRequest, runErr.Error())
		return
	case errors.Is(runErr, playback.ErrClosed):
		errorResponse(c, http.StatusGone, runErr.Error())
		return
	case runErr != nil:
		errorResponse(c, http.StatusInternalServerError, runErr.Error())
		return
	}

	s.respondSnapshot(c, http.StatusOK, inst, "playback started")
}

func (s *Server) handleStop(c *gin.Context) {
	inst, ok := s.lookup(c)
	if !ok {
		return
	}
	if err := s.loop.Call(c.Request.Context(), inst.Engine.Stop); err != nil {
		errorResponse(c, http.StatusServiceUnavailable, fmt.Sprintf("stop: %v", err))
		return
	}
	s.respondSnapshot(c, http.StatusOK, inst, "playback stopped")
}

func (s *Server) handleReset(c *gin.Context) {
	inst, ok := s.lookup(c)
	if !ok {
		return
	}
	if err := s.loop.Call(c.Request.Context(), inst.Engine.Reset); err != nil {
		errorResponse(c, http.StatusServiceUnavailable, fmt.Sprintf("reset: %v", err))
		return
	}
	s.respondSnapshot(c, http.StatusOK, inst, "playback reset")
}

func (s *Server) handleHealthCheck(c *gin.Context) {
	status := "healthy"
	if err := s.loop.Call(c.Request.Context(), func() {}); err != nil {
		status = "unhealthy"
	}

	httpStatus := http.StatusOK
	if status != "healthy" {
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, ApiResponse{
		Status: "success",
		Data: HealthResponse{
			Status:    status,
			Timestamp: time.Now(),
			Version:   s.version,
			Uptime:    time.Since(s.startTime),
			Previews:  s.manager.Count(),
		},
	})
}
