package engine

import "math"

// Residual returns the molten tonnage still inside the furnace and its share
// of production in percent. The rate is 0 when nothing has been produced.
func Residual(productionTon, tappedTon float64) (float64, float64) {
	residual := math.Max(productionTon-tappedTon, 0)
	if productionTon <= 0 {
		return residual, 0
	}
	return residual, clamp(residual/productionTon*100, 0, 100)
}
