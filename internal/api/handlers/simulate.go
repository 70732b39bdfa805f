package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"rainrunoff/internal/analysis"
	"rainrunoff/internal/api/models"
	"rainrunoff/internal/config"
	"rainrunoff/internal/data"
	"rainrunoff/internal/model"
	"rainrunoff/internal/simulate"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

// SimulateHandler handles simulation requests
type SimulateHandler struct {
	base   config.ParametersConfig
	engine *simulate.Engine
	cache  *data.RunCache
	log    *zap.SugaredLogger
}

// NewSimulateHandler creates a handler whose requests fall back to base for
// any parameter they leave unset.
func NewSimulateHandler(base config.ParametersConfig, cache *data.RunCache, logger *zap.Logger) *SimulateHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SimulateHandler{
		base:   base,
		engine: simulate.New(logger),
		cache:  cache,
		log:    logger.Sugar(),
	}
}

// RunSimulation handles POST /api/v1/simulate
func (h *SimulateHandler) RunSimulation(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}

	in, err := req.Observations.ToInputs()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "INVALID_INPUT", err)
		return
	}
	in = in.Head(req.Options.LimitTimesteps)

	params := h.buildParameters(req.Parameters)
	result, err := h.engine.Run(params.ToModelParams(), in)
	if err != nil {
		status, code := classify(err)
		abortWithError(c, status, code, err)
		return
	}

	response := h.buildResponse(result, params, in, req.Options.IncludeLedger)
	if h.cache != nil {
		response.ID = h.cache.Put(result)
	}
	c.JSON(http.StatusOK, response)
}

// GetLedger handles GET /api/v1/simulate/:id/ledger
func (h *SimulateHandler) GetLedger(c *gin.Context) {
	id := c.Param("id")
	result, ok := h.cache.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "NOT_FOUND",
				Message: "run not found or expired",
				Details: map[string]any{"id": id},
			},
		})
		return
	}
	c.JSON(http.StatusOK, models.LedgerResponse{
		ID:     id,
		Ledger: convertLedger(result.Ledger),
	})
}

// CompareSimulations handles POST /api/v1/simulate/compare
func (h *SimulateHandler) CompareSimulations(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}

	// Results are matched back to their parameters by name.
	seen := make(map[string]bool, len(req.Variations))
	for _, variation := range req.Variations {
		if seen[variation.Name] {
			abortWithError(c, http.StatusBadRequest, "INVALID_REQUEST", fmt.Errorf("duplicate variation name %q", variation.Name))
			return
		}
		seen[variation.Name] = true
	}

	in, err := req.Observations.ToInputs()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "INVALID_INPUT", err)
		return
	}

	base := h.buildParameters(req.BaseParameters)
	scenarios := make([]analysis.Scenario, 0, len(req.Variations))
	used := make(map[string]config.ParametersConfig, len(req.Variations))
	var skipped []models.SkippedVariation

	for _, variation := range req.Variations {
		params := config.MergeParameters(base, toConfig(variation.Parameters))
		result, err := h.engine.Run(params.ToModelParams(), in)
		if err != nil {
			h.log.Warnw("variation skipped", "name", variation.Name, "error", err)
			skipped = append(skipped, models.SkippedVariation{Name: variation.Name, Reason: err.Error()})
			continue
		}
		used[variation.Name] = params
		scenarios = append(scenarios, analysis.Scenario{
			Name:        variation.Name,
			Performance: result.Performance,
			Summary:     result.Summary,
		})
	}

	ranked := analysis.RankByNSE(scenarios)
	comparison := make([]models.ComparisonResult, 0, len(ranked))
	for i, s := range ranked {
		comparison = append(comparison, models.ComparisonResult{
			Rank:        i + 1,
			Name:        s.Name,
			Parameters:  fromConfig(used[s.Name]),
			Performance: models.NewPerformance(s.Performance),
			Flow:        convertFlow(s.Summary),
		})
	}

	c.JSON(http.StatusOK, models.CompareResponse{
		Comparison: comparison,
		Skipped:    skipped,
	})
}

// Helper methods

func (h *SimulateHandler) buildParameters(req models.ParametersConfig) config.ParametersConfig {
	return config.MergeParameters(h.base, toConfig(req))
}

func (h *SimulateHandler) buildResponse(result *simulate.Result, params config.ParametersConfig, in model.ObservedInputs, includeLedger bool) models.SimulateResponse {
	response := models.SimulateResponse{
		Status: "completed",
		Summary: models.SimulateSummary{
			Parameters:    fromConfig(params),
			Timesteps:     len(result.Ledger),
			SeedDischarge: in.SeedDischarge,
			Performance:   models.NewPerformance(result.Performance),
			Flow:          convertFlow(result.Summary),
			RunoffVolume:  floats.Sum(result.Balance.Runoff),
			SurfaceVolume: floats.Sum(result.Balance.SurfaceFlow),
		},
	}
	if includeLedger {
		response.Ledger = convertLedger(result.Ledger)
	}
	return response
}

func classify(err error) (int, string) {
	var cfgErr *model.ConfigurationError
	var inErr *model.InputError
	switch {
	case errors.As(err, &cfgErr):
		return http.StatusBadRequest, "INVALID_PARAMETERS"
	case errors.As(err, &inErr), errors.Is(err, model.ErrLengthMismatch), errors.Is(err, model.ErrEmptySeries):
		return http.StatusBadRequest, "INVALID_INPUT"
	default:
		return http.StatusInternalServerError, "SIMULATION_ERROR"
	}
}

func abortWithError(c *gin.Context, status int, code string, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: err.Error(),
		},
	})
}

func toConfig(p models.ParametersConfig) config.ParametersConfig {
	return config.ParametersConfig{
		Name:                        p.Name,
		SoilPorosity:                p.SoilPorosity,
		SoilSaturatedConductivity:   p.SoilSaturatedConductivity,
		SoilGroundwaterConductivity: p.SoilGroundwaterConductivity,
		ChannelConductivity:         p.ChannelConductivity,
		PotentialEvapotranspiration: p.PotentialEvapotranspiration,
		ReservoirCapacity:           p.ReservoirCapacity,
	}
}

func fromConfig(p config.ParametersConfig) models.ParametersConfig {
	return models.ParametersConfig{
		Name:                        p.Name,
		SoilPorosity:                p.SoilPorosity,
		SoilSaturatedConductivity:   p.SoilSaturatedConductivity,
		SoilGroundwaterConductivity: p.SoilGroundwaterConductivity,
		ChannelConductivity:         p.ChannelConductivity,
		PotentialEvapotranspiration: p.PotentialEvapotranspiration,
		ReservoirCapacity:           p.ReservoirCapacity,
	}
}

func convertFlow(s analysis.FlowSummary) models.FlowSummary {
	return models.FlowSummary{
		Min:    s.Min,
		Max:    s.Max,
		Mean:   s.Mean,
		P05:    s.P05,
		P95:    s.P95,
		Volume: s.Volume,
	}
}

func convertLedger(ledger []simulate.LedgerRow) []models.LedgerRow {
	out := make([]models.LedgerRow, len(ledger))
	for i, r := range ledger {
		out[i] = models.LedgerRow{
			Index:                  r.Index,
			Precipitation:          r.Precipitation,
			Evapotranspiration:     r.Evapotranspiration,
			ObservedDischarge:      r.ObservedDischarge,
			Regime:                 string(r.Regime),
			Infiltration:           r.Infiltration,
			RealEvapotranspiration: r.RealEvapotranspiration,
			Storage:                r.Storage,
			SurfaceFlow:            r.SurfaceFlow,
			Runoff:                 r.Runoff,
			IntegratedRunoff:       r.IntegratedRunoff,
			SimulatedFlow:          r.SimulatedFlow,
			Residual:               r.Residual,
		}
	}
	return out
}
