package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineKm_ZeroDistanceForSamePoint(t *testing.T) {
	assert.InDelta(t, 0, HaversineKm(52.52, 13.40, 52.52, 13.40), 0.001)
}

func TestHaversineKm_BerlinToHamburg(t *testing.T) {
	// Берлин - Гамбург, около 255 км по прямой
	d := HaversineKm(52.5200, 13.4050, 53.5511, 9.9937)
	assert.InDelta(t, 255, d, 5)
}

func TestHaversineKm_IsSymmetric(t *testing.T) {
	a := HaversineKm(48.8566, 2.3522, 51.5074, -0.1278)
	b := HaversineKm(51.5074, -0.1278, 48.8566, 2.3522)
	assert.InDelta(t, a, b, 0.0001)
}
