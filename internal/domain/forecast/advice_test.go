package forecast

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdviseColdHumidWet(t *testing.T) {
	got := Advise(Conditions{Temperature: 45, Humidity: 60, PrecipitationChance: 40, WindSpeed: 0})
	require.Equal(t, []string{adviceCold, adviceHumid, advicePrecipitation}, got)
}

func TestAdviseTemperatureBrackets(t *testing.T) {
	cases := []struct {
		temp float64
		want string
	}{
		{49.9, adviceCold},
		{50, adviceCool},
		{69.9, adviceCool},
		{70, adviceWarm},
		{math.NaN(), adviceWarm},
	}
	for _, tc := range cases {
		got := Advise(Conditions{Temperature: tc.temp, Humidity: 50, PrecipitationChance: 30})
		require.Equal(t, []string{tc.want}, got, "temp %v", tc.temp)
	}
}

func TestConditionsDecodingIsLenient(t *testing.T) {
	var c Conditions
	require.NoError(t, json.Unmarshal([]byte(`{"temperature":"65","humidity":null,"precipitation_chance":"n/a"}`), &c))
	require.Equal(t, 65.0, c.Temperature)
	require.True(t, math.IsNaN(c.Humidity))
	require.True(t, math.IsNaN(c.PrecipitationChance))
	require.Equal(t, []string{adviceCool}, Advise(c))
}
