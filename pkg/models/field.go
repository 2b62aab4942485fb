package models

import "math"

// Field identifies one numeric specification of a processor.
type Field int

const (
	FieldBaseFreq Field = iota
	FieldMaxTurbo
	FieldTotalCores
	FieldPerformanceCores
	FieldEfficientCores
	FieldTotalThreads
	FieldCache
	FieldBasePower
	FieldTurboPower
	FieldMaxMemory
	FieldMemChannels
	FieldMemBandwidth
	FieldPCIeLanes
	FieldGfxMaxDyn
	FieldExecutionUnits
	FieldLithography
	FieldFreqPerWatt
	FieldCoresPerWatt
	FieldCachePerCore
	FieldPrice

	fieldCount
)

// Polarity says which direction of a field is an improvement.
type Polarity int

const (
	HigherIsBetter Polarity = iota
	LowerIsBetter
)

// FieldSpec documents a field's key, unit and valid range.
type FieldSpec struct {
	Key      string
	Label    string
	Unit     string
	Min      float64
	Max      float64
	Polarity Polarity
	// Optional fields use zero as the unknown sentinel.
	Optional bool
	// Derived fields are computed from other fields and never stored.
	Derived bool
}

var fieldSpecs = [fieldCount]FieldSpec{
	FieldBaseFreq:         {Key: "base_freq_ghz", Label: "Base Frequency", Unit: "GHz", Min: 0.5, Max: 6.0},
	FieldMaxTurbo:         {Key: "max_turbo_ghz", Label: "Max Turbo", Unit: "GHz", Min: 0.5, Max: 7.0},
	FieldTotalCores:       {Key: "total_cores", Label: "Cores", Min: 1, Max: 144},
	FieldPerformanceCores: {Key: "performance_cores", Label: "P-Cores", Min: 0, Max: 144, Optional: true},
	FieldEfficientCores:   {Key: "efficient_cores", Label: "E-Cores", Min: 0, Max: 144, Optional: true},
	FieldTotalThreads:     {Key: "total_threads", Label: "Threads", Min: 1, Max: 288},
	FieldCache:            {Key: "cache_mb", Label: "Cache", Unit: "MB", Min: 0.5, Max: 512},
	FieldBasePower:        {Key: "base_power_w", Label: "Base Power", Unit: "W", Min: 4, Max: 500, Polarity: LowerIsBetter},
	FieldTurboPower:       {Key: "turbo_power_w", Label: "Turbo Power", Unit: "W", Min: 0, Max: 500, Polarity: LowerIsBetter, Optional: true},
	FieldMaxMemory:        {Key: "max_mem_gb", Label: "Max Memory", Unit: "GB", Min: 0, Max: 8192, Optional: true},
	FieldMemChannels:      {Key: "mem_channels", Label: "Memory Channels", Min: 0, Max: 16, Optional: true},
	FieldMemBandwidth:     {Key: "mem_bandwidth_gbs", Label: "Memory Bandwidth", Unit: "GB/s", Min: 0, Max: 1000, Optional: true},
	FieldPCIeLanes:        {Key: "pcie_lanes", Label: "PCIe Lanes", Min: 0, Max: 160, Optional: true},
	FieldGfxMaxDyn:        {Key: "gfx_max_dyn_ghz", Label: "Graphics", Unit: "GHz", Min: 0, Max: 3.0, Optional: true},
	FieldExecutionUnits:   {Key: "execution_units", Label: "Execution Units", Min: 0, Max: 256, Optional: true},
	FieldLithography:      {Key: "lithography_nm", Label: "Lithography", Unit: "nm", Min: 1, Max: 32, Polarity: LowerIsBetter},
	FieldFreqPerWatt:      {Key: "freq_per_watt", Label: "Efficiency", Unit: "GHz/W", Min: 0, Max: 1.0, Derived: true},
	FieldCoresPerWatt:     {Key: "cores_per_watt", Label: "Cores/Watt", Min: 0, Max: 1.0, Derived: true},
	FieldCachePerCore:     {Key: "cache_per_core", Label: "Cache/Core", Unit: "MB", Min: 0, Max: 8, Derived: true},
	FieldPrice:            {Key: "price_usd", Label: "Price", Unit: "USD", Min: 0, Max: math.Inf(1), Polarity: LowerIsBetter},
}

// Spec returns the documentation for f.
func (f Field) Spec() FieldSpec {
	if f < 0 || f >= fieldCount {
		return FieldSpec{Key: "unknown"}
	}
	return fieldSpecs[f]
}

// String returns the field's dataset key.
func (f Field) String() string { return f.Spec().Key }

// Fields lists every field in canonical order. It is also the layout
// of a feature vector.
func Fields() []Field {
	out := make([]Field, fieldCount)
	for i := range out {
		out[i] = Field(i)
	}
	return out
}

// StoredFields lists the non-derived fields a dataset must carry.
func StoredFields() []Field {
	out := make([]Field, 0, fieldCount)
	for _, f := range Fields() {
		if !fieldSpecs[f].Derived {
			out = append(out, f)
		}
	}
	return out
}

// FieldByKey looks up a field by its dataset key.
func FieldByKey(key string) (Field, bool) {
	for i, spec := range fieldSpecs {
		if spec.Key == key {
			return Field(i), true
		}
	}
	return 0, false
}
