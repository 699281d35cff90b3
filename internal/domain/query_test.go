package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const invalidNumber = "abc"

func TestParseFireballQuery(t *testing.T) {
	t.Run("blank inputs use defaults", func(t *testing.T) {
		q, err := ParseFireballQuery("", "", "")

		require.NoError(t, err)
		assert.Equal(t, 10, q.Limit)
		assert.Empty(t, q.DateMin)
		assert.Nil(t, q.EnergyMin)
	})

	t.Run("all fields populated", func(t *testing.T) {
		q, err := ParseFireballQuery("25", "2020-01-01", "0.5")

		require.NoError(t, err)
		assert.Equal(t, 25, q.Limit)
		assert.Equal(t, "2020-01-01", q.DateMin)
		require.NotNil(t, q.EnergyMin)
		assert.Equal(t, 0.5, *q.EnergyMin)
	})

	t.Run("inputs are trimmed", func(t *testing.T) {
		q, err := ParseFireballQuery(" 5 ", " 2020-01-01 ", " 1 ")

		require.NoError(t, err)
		assert.Equal(t, 5, q.Limit)
		assert.Equal(t, "2020-01-01", q.DateMin)
		require.NotNil(t, q.EnergyMin)
		assert.Equal(t, 1.0, *q.EnergyMin)
	})

	t.Run("invalid energy", func(t *testing.T) {
		_, err := ParseFireballQuery("10", "", invalidNumber)

		require.Error(t, err)
		assert.EqualError(t, err, "Error: Invalid energy value 'abc'. Please enter a valid number.")

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "energy", verr.Field)
		assert.Equal(t, invalidNumber, verr.Value)
	})

	t.Run("malformed dates pass through for the provider to reject", func(t *testing.T) {
		q, err := ParseFireballQuery("", "not-a-date", "")

		require.NoError(t, err)
		assert.Equal(t, "not-a-date", q.DateMin)
	})
}

func TestParseLimit(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected int
		wantErr  bool
	}{
		{"blank defaults", "", 10, false},
		{"whitespace defaults", "   ", 10, false},
		{"positive integer", "50", 50, false},
		{"one", "1", 1, false},
		{"zero rejected", "0", 0, true},
		{"negative rejected", "-3", 0, true},
		{"fractional rejected", "3.5", 0, true},
		{"word rejected", invalidNumber, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := parseLimit(tt.raw)
			if tt.wantErr {
				var verr *ValidationError
				require.True(t, errors.As(err, &verr))
				assert.Equal(t, "limit", verr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, n)
		})
	}
}

func TestParseOptionalNumber(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantNil bool
		wantErr bool
		value   float64
	}{
		{"blank is nil", "", true, false, 0},
		{"whitespace is nil", "  ", true, false, 0},
		{"decimal", "0.05", false, false, 0.05},
		{"integer", "30", false, false, 30},
		{"negative allowed", "-1.5", false, false, -1.5},
		{"word rejected", invalidNumber, false, true, 0},
		{"NaN rejected", "NaN", false, true, 0},
		{"infinity rejected", "Inf", false, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := parseOptionalNumber("maximum distance", tt.raw)
			if tt.wantErr {
				var verr *ValidationError
				require.True(t, errors.As(err, &verr))
				assert.Equal(t, "maximum distance", verr.Field)
				return
			}
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, v)
				return
			}
			require.NotNil(t, v)
			assert.Equal(t, tt.value, *v)
		})
	}
}

func TestFireballQueryParams(t *testing.T) {
	t.Run("only present values transmitted", func(t *testing.T) {
		q, err := ParseFireballQuery("20", "", "")
		require.NoError(t, err)

		params := q.Params()

		assert.Equal(t, "20", params.Get("limit"))
		assert.NotContains(t, params, "date-min")
		assert.NotContains(t, params, "energy-min")
	})

	t.Run("hyphenated provider names", func(t *testing.T) {
		q, err := ParseFireballQuery("10", "2019-06-01", "0.5")
		require.NoError(t, err)

		params := q.Params()

		assert.Equal(t, "2019-06-01", params.Get("date-min"))
		assert.Equal(t, "0.5", params.Get("energy-min"))
	})

	t.Run("no key maps to an empty value", func(t *testing.T) {
		q, err := ParseFireballQuery("", "2021-01-01", "12")
		require.NoError(t, err)

		for key, vals := range q.Params() {
			require.NotEmpty(t, vals, key)
			for _, v := range vals {
				assert.NotEmpty(t, v, key)
			}
		}
	})
}

func TestParseCloseApproachQuery(t *testing.T) {
	t.Run("blank inputs use defaults", func(t *testing.T) {
		q, err := ParseCloseApproachQuery(CloseApproachInput{})

		require.NoError(t, err)
		assert.Equal(t, 10, q.Limit)
		assert.Nil(t, q.DistMax)
		assert.Nil(t, q.HMin)
		assert.Nil(t, q.HMax)
		assert.Nil(t, q.VInfMin)
		assert.Nil(t, q.VInfMax)
		assert.Empty(t, q.DateMin)
		assert.Empty(t, q.DateMax)
	})

	t.Run("all fields populated", func(t *testing.T) {
		in := CloseApproachInput{
			Limit:   "15",
			DistMax: "0.05",
			DateMin: "2026-01-01",
			DateMax: "2026-12-31",
			HMin:    "18",
			HMax:    "26",
			VInfMin: "2.5",
			VInfMax: "30",
		}

		q, err := ParseCloseApproachQuery(in)

		require.NoError(t, err)
		assert.Equal(t, 15, q.Limit)
		assert.Equal(t, 0.05, *q.DistMax)
		assert.Equal(t, "2026-01-01", q.DateMin)
		assert.Equal(t, "2026-12-31", q.DateMax)
		assert.Equal(t, 18.0, *q.HMin)
		assert.Equal(t, 26.0, *q.HMax)
		assert.Equal(t, 2.5, *q.VInfMin)
		assert.Equal(t, 30.0, *q.VInfMax)
	})

	t.Run("errors name the field and value", func(t *testing.T) {
		tests := []struct {
			name  string
			in    CloseApproachInput
			field string
		}{
			{"distance", CloseApproachInput{DistMax: invalidNumber}, "maximum distance"},
			{"minimum H", CloseApproachInput{HMin: invalidNumber}, "minimum H"},
			{"maximum H", CloseApproachInput{HMax: invalidNumber}, "maximum H"},
			{"minimum velocity", CloseApproachInput{VInfMin: invalidNumber}, "minimum velocity"},
			{"maximum velocity", CloseApproachInput{VInfMax: invalidNumber}, "maximum velocity"},
			{"limit", CloseApproachInput{Limit: invalidNumber}, "limit"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := ParseCloseApproachQuery(tt.in)

				var verr *ValidationError
				require.True(t, errors.As(err, &verr))
				assert.Equal(t, tt.field, verr.Field)
				assert.Equal(t, invalidNumber, verr.Value)
			})
		}
	})
}

func TestCloseApproachQueryParams(t *testing.T) {
	t.Run("always sorted by date", func(t *testing.T) {
		q, err := ParseCloseApproachQuery(CloseApproachInput{})
		require.NoError(t, err)

		params := q.Params()

		assert.Equal(t, "date", params.Get("sort"))
		assert.Equal(t, "10", params.Get("limit"))
	})

	t.Run("hyphenated provider names", func(t *testing.T) {
		q, err := ParseCloseApproachQuery(CloseApproachInput{
			Limit:   "5",
			DistMax: "0.2",
			DateMin: "2026-01-01",
			DateMax: "2027-01-01",
			HMin:    "20",
			HMax:    "25",
			VInfMin: "1",
			VInfMax: "40",
		})
		require.NoError(t, err)

		params := q.Params()

		assert.Equal(t, "0.2", params.Get("dist-max"))
		assert.Equal(t, "2026-01-01", params.Get("date-min"))
		assert.Equal(t, "2027-01-01", params.Get("date-max"))
		assert.Equal(t, "20", params.Get("h-min"))
		assert.Equal(t, "25", params.Get("h-max"))
		assert.Equal(t, "1", params.Get("v-inf-min"))
		assert.Equal(t, "40", params.Get("v-inf-max"))
	})

	t.Run("absent optionals are never transmitted", func(t *testing.T) {
		q, err := ParseCloseApproachQuery(CloseApproachInput{Limit: "7"})
		require.NoError(t, err)

		params := q.Params()

		assert.Len(t, params, 2) // limit and sort only
		for key, vals := range params {
			for _, v := range vals {
				assert.NotEmpty(t, v, key)
			}
		}
	})
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected string
	}{
		{"integer valued", 30, "30"},
		{"decimal", 0.05, "0.05"},
		{"no trailing zeros", 2.50, "2.5"},
		{"negative", -1.5, "-1.5"},
		{"large without exponent", 1000000, "1000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatNumber(tt.value))
		})
	}
}
