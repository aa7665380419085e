package core

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// ErrTypeMismatch is returned when a literal cannot be converted to its
// column's storage type.
var ErrTypeMismatch = errors.New("value does not match column type")

// DateTimeLayout is the only accepted datetime literal format.
const DateTimeLayout = "2006-01-02 15:04:05"

// ToStorage converts literal text into the typed value stored for the given
// column type. Boolean and text literals pass through unnormalized; the store
// casts boolean spellings itself.
func ToStorage(text string, columnType StorageType) (any, error) {
	switch columnType {
	case IntegerType:
		n, err := strconv.Atoi(text)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", ErrTypeMismatch, text)
		}
		return n, nil
	case DecimalType:
		d, err := decimal.NewFromString(text)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a decimal", ErrTypeMismatch, text)
		}
		return d, nil
	case DateTimeType:
		ts, err := time.Parse(DateTimeLayout, text)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a datetime (want %s)", ErrTypeMismatch, text, DateTimeLayout)
		}
		return ts, nil
	default:
		return text, nil
	}
}

// ToDisplay converts a stored value into its display form: datetimes become
// fixed-format text, decimals become floating-point numbers, everything else
// is returned unchanged.
func ToDisplay(value any) any {
	switch v := value.(type) {
	case time.Time:
		return v.Format(DateTimeLayout)
	case decimal.Decimal:
		return v.InexactFloat64()
	default:
		return value
	}
}
