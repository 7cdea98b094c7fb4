package validator

import (
	"testing"

	"greenroute/internal/errors"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type vehicleDTO struct {
	Model      string  `json:"model" validate:"required"`
	Efficiency float64 `json:"efficiency" validate:"gt=0"`
}

type routeDTO struct {
	Origin  string            `json:"origin" validate:"postal_address"`
	Vehicle *vehicleDTO       `json:"vehicle,omitempty"`
	APIKeys map[string]string `json:"api_keys,omitempty" validate:"omitempty,dive,keys,required,endkeys"`
}

func TestValidator_PostalAddressTag(t *testing.T) {
	v := New()

	assert.NoError(t, v.Var("1600 Pennsylvania Ave, Washington, DC 20500", TagPostalAddress))
	assert.Error(t, v.Var("abc", TagPostalAddress))
	assert.Error(t, v.Var("", TagPostalAddress))
}

func TestValidator_ReportsJSONFieldNames(t *testing.T) {
	v := New()

	err := v.Validate(&routeDTO{
		Origin:  "nowhere",
		Vehicle: &vehicleDTO{Model: "toyota_corolla", Efficiency: 0},
	})
	require.Error(t, err)

	var validationErrs validator.ValidationErrors
	require.True(t, errors.As(err, &validationErrs))

	fields := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		fields = append(fields, fieldErr.Field())
	}
	assert.ElementsMatch(t, []string{"origin", "efficiency"}, fields)
}

func TestValidator_OptionalSections(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(&routeDTO{Origin: "415 Mission St, San Francisco, CA 94105"}))
	assert.Error(t, v.Validate(&routeDTO{
		Origin:  "415 Mission St, San Francisco, CA 94105",
		APIKeys: map[string]string{"": "secret"},
	}))
}
