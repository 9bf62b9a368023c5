package marketdata

import (
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeFrame_Validate(t *testing.T) {
	tests := []struct {
		tf    TimeFrame
		valid bool
	}{
		{OneMin, true},
		{TimeFrame{59, Min}, true},
		{TimeFrame{60, Min}, false},
		{TimeFrame{23, Hour}, true},
		{TimeFrame{24, Hour}, false},
		{TimeFrame{1, Day}, true},
		{TimeFrame{2, Day}, false},
		{TimeFrame{2, Week}, false},
		{TimeFrame{6, Month}, true},
		{TimeFrame{5, Month}, false},
		{TimeFrame{0, Hour}, false},
		{TimeFrame{1, "Year"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.tf.String(), func(t *testing.T) {
			if tt.valid {
				assert.NoError(t, tt.tf.Validate())
			} else {
				assert.Error(t, tt.tf.Validate())
			}
		})
	}
}

func TestParseTimeFrame(t *testing.T) {
	for in, want := range map[string]string{
		"1Hour":  "1Hour",
		"15Min":  "15Min",
		"1D":     "1Day",
		"Week":   "1Week",
		"3month": "3Month",
		"5T":     "5Min",
	} {
		tf, err := ParseTimeFrame(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, tf.String())
	}

	for _, in := range []string{"", "1Year", "90Min", "2Day"} {
		_, err := ParseTimeFrame(in)
		assert.Error(t, err, in)
	}

	var tf TimeFrame
	require.NoError(t, tf.Set("1Hour"))
	assert.Equal(t, OneHour, tf)
	assert.Equal(t, "timeframe", tf.Type())
}

func TestParseTimeFrame_ErrorsCarryCauseAndStack(t *testing.T) {
	_, err := ParseTimeFrame("99999999999999999999Min")
	require.Error(t, err)
	assert.True(t, errors.Is(err, strconv.ErrRange))
	assert.Contains(t, fmt.Sprintf("%+v", err), "ParseTimeFrame")

	err = TimeFrame{60, Min}.Validate()
	require.Error(t, err)
	assert.Contains(t, fmt.Sprintf("%+v", err), "TimeFrame.Validate")
}
