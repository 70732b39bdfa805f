package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultParametersAreValid(t *testing.T) {
	p := DefaultParameters()
	require.NoError(t, p.Validate())
	assert.Equal(t, 0.3, p.SoilPorosity)
	assert.Equal(t, 0.1, p.SoilSaturatedConductivity)
	assert.Equal(t, 0.01, p.SoilGroundwaterConductivity)
	assert.Equal(t, 0.02, p.ChannelConductivity)
	assert.Equal(t, 0.3, p.PotentialEvapotranspiration)
	assert.Equal(t, 10.0, p.ReservoirCapacity)
}

func TestParametersValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Parameters)
		field  string
	}{
		{"zero porosity", func(p *Parameters) { p.SoilPorosity = 0 }, "soil_porosity"},
		{"negative capacity", func(p *Parameters) { p.ReservoirCapacity = -1 }, "reservoir_capacity"},
		{"zero channel conductivity", func(p *Parameters) { p.ChannelConductivity = 0 }, "channel_conductivity"},
		{"channel conductivity of one", func(p *Parameters) { p.ChannelConductivity = 1 }, "channel_conductivity"},
		{"channel conductivity above one", func(p *Parameters) { p.ChannelConductivity = 1.5 }, "channel_conductivity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParameters()
			tt.mutate(&p)
			err := p.Validate()
			require.Error(t, err)

			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}
