package number

import (
	"math"
	"strconv"
)

var epsilon = 0.000001

func IsZero(f float64) bool {
	return math.Abs(f) < epsilon
}

func FloatToStr(f float64, precision int) string {
	return strconv.FormatFloat(f, 'f', precision, 64)
}

func Clamp(value float64, min float64, max float64) float64 {
	return math.Max(min, math.Min(max, value))
}
