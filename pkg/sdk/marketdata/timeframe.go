package marketdata

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type TimeFrameUnit string

const (
	Min   TimeFrameUnit = "Min"
	Hour  TimeFrameUnit = "Hour"
	Day   TimeFrameUnit = "Day"
	Week  TimeFrameUnit = "Week"
	Month TimeFrameUnit = "Month"
)

// TimeFrame is a bar aggregation period, rendered as e.g. "15Min" or "1Hour".
type TimeFrame struct {
	Amount int
	Unit   TimeFrameUnit
}

var (
	OneMin   = TimeFrame{1, Min}
	OneHour  = TimeFrame{1, Hour}
	OneDay   = TimeFrame{1, Day}
	OneWeek  = TimeFrame{1, Week}
	OneMonth = TimeFrame{1, Month}
)

func NewTimeFrame(amount int, unit TimeFrameUnit) (TimeFrame, error) {
	tf := TimeFrame{Amount: amount, Unit: unit}
	return tf, tf.Validate()
}

func (tf TimeFrame) String() string {
	return strconv.Itoa(tf.Amount) + string(tf.Unit)
}

func (tf TimeFrame) Validate() error {
	if tf.Amount <= 0 {
		return errors.Errorf("timeframe amount must be positive, got %d", tf.Amount)
	}
	switch tf.Unit {
	case Min:
		if tf.Amount > 59 {
			return errors.Errorf("minute timeframe must be 1-59, got %d", tf.Amount)
		}
	case Hour:
		if tf.Amount > 23 {
			return errors.Errorf("hour timeframe must be 1-23, got %d", tf.Amount)
		}
	case Day, Week:
		if tf.Amount != 1 {
			return errors.Errorf("%s timeframe only supports amount 1, got %d", strings.ToLower(string(tf.Unit)), tf.Amount)
		}
	case Month:
		switch tf.Amount {
		case 1, 2, 3, 4, 6, 12:
		default:
			return errors.Errorf("month timeframe must be one of 1, 2, 3, 4, 6, 12, got %d", tf.Amount)
		}
	default:
		return errors.Errorf("unknown timeframe unit %q", string(tf.Unit))
	}
	return nil
}

var unitAliases = map[string]TimeFrameUnit{
	"min": Min, "t": Min, "m": Min,
	"hour": Hour, "h": Hour,
	"day": Day, "d": Day,
	"week": Week, "w": Week,
	"month": Month, "mo": Month,
}

// ParseTimeFrame reads "1Hour", "15Min", "1D" and similar. A bare unit means amount 1.
func ParseTimeFrame(s string) (TimeFrame, error) {
	s = strings.TrimSpace(s)
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	amount := 1
	if i > 0 {
		n, err := strconv.Atoi(s[:i])
		if err != nil {
			return TimeFrame{}, errors.Wrapf(err, "invalid timeframe %q", s)
		}
		amount = n
	}
	unit, ok := unitAliases[strings.ToLower(s[i:])]
	if !ok {
		return TimeFrame{}, errors.Errorf("invalid timeframe %q", s)
	}
	return NewTimeFrame(amount, unit)
}

// Set and Type let a TimeFrame be used as a command-line flag value.
func (tf *TimeFrame) Set(s string) error {
	parsed, err := ParseTimeFrame(s)
	if err != nil {
		return err
	}
	*tf = parsed
	return nil
}

func (tf *TimeFrame) Type() string { return "timeframe" }
