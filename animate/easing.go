package animate

import (
	"fmt"
	"sort"

	"github.com/fogleman/ease"
)

// Linear is the identity easing.
func Linear(t float64) float64 { return t }

var easings = map[string]Easing{
	"linear":       Linear,
	"quad-in":      ease.InQuad,
	"quad-out":     ease.OutQuad,
	"quad-inout":   ease.InOutQuad,
	"cubic-in":     ease.InCubic,
	"cubic-out":    ease.OutCubic,
	"cubic-inout":  ease.InOutCubic,
	"quart-inout":  ease.InOutQuart,
	"quint-inout":  ease.InOutQuint,
	"sine-in":      ease.InSine,
	"sine-out":     ease.OutSine,
	"sine-inout":   ease.InOutSine,
	"expo-inout":   ease.InOutExpo,
	"circ-inout":   ease.InOutCirc,
	"back-out":     ease.OutBack,
	"elastic-out":  ease.OutElastic,
	"bounce-out":   ease.OutBounce,
	"bounce-inout": ease.InOutBounce,
}

// EasingByName looks up one of the named easings, e.g. "cubic-inout".
func EasingByName(name string) (Easing, error) {
	e, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("animate: unknown easing %q", name)
	}
	return e, nil
}

// EasingNames lists the registered easing names in order.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for n := range easings {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
