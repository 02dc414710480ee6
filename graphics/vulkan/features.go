package vulkan

import (
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

const (
	LayerKhronosValidation = "VK_LAYER_KHRONOS_validation"
	LayerMesaDeviceSelect  = "VK_LAYER_MESA_device_select"
	LayerMesaOverlay       = "VK_LAYER_MESA_overlay"
)

// FeatureSet is a set of extension or layer names.
type FeatureSet map[string]struct{}

// NewFeatureSet builds a set from names.
func NewFeatureSet(names ...string) FeatureSet {
	set := make(FeatureSet, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

func (s FeatureSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

func (s FeatureSet) Union(other FeatureSet) FeatureSet {
	out := make(FeatureSet, len(s)+len(other))
	for name := range s {
		out[name] = struct{}{}
	}
	for name := range other {
		out[name] = struct{}{}
	}
	return out
}

func (s FeatureSet) Intersection(other FeatureSet) FeatureSet {
	out := FeatureSet{}
	for name := range s {
		if other.Contains(name) {
			out[name] = struct{}{}
		}
	}
	return out
}

// Difference returns the names in s that are not in other.
func (s FeatureSet) Difference(other FeatureSet) FeatureSet {
	out := FeatureSet{}
	for name := range s {
		if !other.Contains(name) {
			out[name] = struct{}{}
		}
	}
	return out
}

func (s FeatureSet) IsSupersetOf(other FeatureSet) bool {
	return len(other.Difference(s)) == 0
}

// Sorted returns the names in lexical order.
func (s FeatureSet) Sorted() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InstanceFeatures are the extensions and layers of a Vulkan instance.
type InstanceFeatures struct {
	Extensions FeatureSet
	Layers     FeatureSet
}

func (f InstanceFeatures) Union(other InstanceFeatures) InstanceFeatures {
	return InstanceFeatures{
		Extensions: f.Extensions.Union(other.Extensions),
		Layers:     f.Layers.Union(other.Layers),
	}
}

func (f InstanceFeatures) Intersection(other InstanceFeatures) InstanceFeatures {
	return InstanceFeatures{
		Extensions: f.Extensions.Intersection(other.Extensions),
		Layers:     f.Layers.Intersection(other.Layers),
	}
}

func (f InstanceFeatures) Difference(other InstanceFeatures) InstanceFeatures {
	return InstanceFeatures{
		Extensions: f.Extensions.Difference(other.Extensions),
		Layers:     f.Layers.Difference(other.Layers),
	}
}

func (f InstanceFeatures) IsSupersetOf(other InstanceFeatures) bool {
	return f.Extensions.IsSupersetOf(other.Extensions) && f.Layers.IsSupersetOf(other.Layers)
}

// Empty reports whether there are no extensions and no layers.
func (f InstanceFeatures) Empty() bool {
	return len(f.Extensions) == 0 && len(f.Layers) == 0
}

// Features returns the layers the config asks for.
func (c LayersConfig) Features() InstanceFeatures {
	layers := FeatureSet{}
	if c.KhronosValidation {
		layers[LayerKhronosValidation] = struct{}{}
	}
	if c.MesaDeviceSelect {
		layers[LayerMesaDeviceSelect] = struct{}{}
	}
	if c.MesaOverlay {
		layers[LayerMesaOverlay] = struct{}{}
	}
	return InstanceFeatures{Extensions: FeatureSet{}, Layers: layers}
}

// ErrMissingFeatures marks a platform that lacks required instance features.
var ErrMissingFeatures = errors.New("missing required Vulkan instance features")

// MissingFeaturesError lists the required features the platform lacks.
type MissingFeaturesError struct {
	Missing InstanceFeatures
}

func (e *MissingFeaturesError) Error() string {
	var parts []string
	if len(e.Missing.Extensions) > 0 {
		parts = append(parts, "extensions: "+strings.Join(e.Missing.Extensions.Sorted(), ", "))
	}
	if len(e.Missing.Layers) > 0 {
		parts = append(parts, "layers: "+strings.Join(e.Missing.Layers.Sorted(), ", "))
	}
	return ErrMissingFeatures.Error() + " (" + strings.Join(parts, "; ") + ")"
}

func (e *MissingFeaturesError) Is(target error) bool {
	return target == ErrMissingFeatures
}

// QueriedInstanceFeatures pairs what the platform offers with what the
// game cannot run without. Required is always a subset of Available.
type QueriedInstanceFeatures struct {
	Available InstanceFeatures
	Required  InstanceFeatures
}

// QueryInstanceFeatures fails with a *MissingFeaturesError if any required
// feature is unavailable.
func QueryInstanceFeatures(available, required InstanceFeatures) (QueriedInstanceFeatures, error) {
	if !available.IsSupersetOf(required) {
		return QueriedInstanceFeatures{}, &MissingFeaturesError{Missing: required.Difference(available)}
	}
	return QueriedInstanceFeatures{Available: available, Required: required}, nil
}

// Select is required ∪ (available ∩ requested).
func (q QueriedInstanceFeatures) Select(requested InstanceFeatures) InstanceFeatures {
	return q.Required.Union(q.Available.Intersection(requested))
}
