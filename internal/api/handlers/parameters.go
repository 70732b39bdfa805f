package handlers

import (
	"net/http"

	"rainrunoff/internal/api/models"
	"rainrunoff/internal/config"
	"rainrunoff/internal/model"

	"github.com/gin-gonic/gin"
)

// ParametersHandler describes the model parameters
type ParametersHandler struct {
	current config.ParametersConfig
}

func NewParametersHandler(current config.ParametersConfig) *ParametersHandler {
	return &ParametersHandler{current: current}
}

// ListParameters handles GET /api/v1/parameters
func (h *ParametersHandler) ListParameters(c *gin.Context) {
	def := model.DefaultParameters()
	cur := h.current.ToModelParams()
	params := []models.ParameterInfo{
		{
			Name:        "soil_porosity",
			Description: "Fraction of precipitation entering the soil column",
			Default:     def.SoilPorosity,
			Current:     cur.SoilPorosity,
		},
		{
			Name:        "soil_saturated_conductivity",
			Description: "Slow runoff fraction of the water left after evapotranspiration and storage",
			Default:     def.SoilSaturatedConductivity,
			Current:     cur.SoilSaturatedConductivity,
		},
		{
			Name:        "soil_groundwater_conductivity",
			Description: "Fast runoff fraction of surface flow",
			Default:     def.SoilGroundwaterConductivity,
			Current:     cur.SoilGroundwaterConductivity,
		},
		{
			Name:        "channel_conductivity",
			Description: "Linear-reservoir constant of the channel, must be in (0, 1)",
			Default:     def.ChannelConductivity,
			Current:     cur.ChannelConductivity,
		},
		{
			Name:        "potential_evapotranspiration",
			Description: "Fraction of precipitation that can evaporate",
			Default:     def.PotentialEvapotranspiration,
			Current:     cur.PotentialEvapotranspiration,
		},
		{
			Name:        "reservoir_capacity",
			Description: "Soil reservoir capacity",
			Unit:        "mm",
			Default:     def.ReservoirCapacity,
			Current:     cur.ReservoirCapacity,
		},
	}
	for i := range params {
		params[i].EnvVar = config.EnvVar(params[i].Name)
	}
	c.JSON(http.StatusOK, gin.H{"parameters": params})
}
