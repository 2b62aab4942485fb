package models

// Segment is the market segment a processor targets.
type Segment string

const (
	SegmentDesktop  Segment = "Desktop"
	SegmentMobile   Segment = "Mobile"
	SegmentServer   Segment = "Server"
	SegmentEmbedded Segment = "Embedded"
)

// Segments lists every segment in display order.
var Segments = []Segment{SegmentDesktop, SegmentMobile, SegmentServer, SegmentEmbedded}

// Valid reports whether s is one of the enumerated segments.
func (s Segment) Valid() bool {
	for _, known := range Segments {
		if s == known {
			return true
		}
	}
	return false
}

// Processor is one catalog record. Zero in an optional specification
// field means the value is unknown; see Fields for which fields are
// optional.
type Processor struct {
	Name     string  `json:"name" yaml:"name" toml:"name" validate:"required"`
	Model    string  `json:"model" yaml:"model" toml:"model" validate:"required"`
	Family   Family  `json:"family" yaml:"family" toml:"family" validate:"required,family"`
	Segment  Segment `json:"segment" yaml:"segment" toml:"segment" validate:"required,segment"`
	Category string  `json:"category,omitempty" yaml:"category,omitempty" toml:"category,omitempty"`
	Price    float64 `json:"price_usd" yaml:"price_usd" toml:"price_usd" validate:"gt=0"`

	BaseFreqGHz      float64 `json:"base_freq_ghz" yaml:"base_freq_ghz" toml:"base_freq_ghz"`
	MaxTurboGHz      float64 `json:"max_turbo_ghz" yaml:"max_turbo_ghz" toml:"max_turbo_ghz"`
	TotalCores       int     `json:"total_cores" yaml:"total_cores" toml:"total_cores"`
	PerformanceCores int     `json:"performance_cores" yaml:"performance_cores" toml:"performance_cores"`
	EfficientCores   int     `json:"efficient_cores" yaml:"efficient_cores" toml:"efficient_cores"`
	TotalThreads     int     `json:"total_threads" yaml:"total_threads" toml:"total_threads"`
	CacheMB          float64 `json:"cache_mb" yaml:"cache_mb" toml:"cache_mb"`
	BasePowerW       float64 `json:"base_power_w" yaml:"base_power_w" toml:"base_power_w"`
	TurboPowerW      float64 `json:"turbo_power_w" yaml:"turbo_power_w" toml:"turbo_power_w"`
	MaxMemGB         float64 `json:"max_mem_gb" yaml:"max_mem_gb" toml:"max_mem_gb"`
	MemChannels      int     `json:"mem_channels" yaml:"mem_channels" toml:"mem_channels"`
	MemBandwidthGBs  float64 `json:"mem_bandwidth_gbs" yaml:"mem_bandwidth_gbs" toml:"mem_bandwidth_gbs"`
	PCIeLanes        int     `json:"pcie_lanes" yaml:"pcie_lanes" toml:"pcie_lanes"`
	GfxMaxDynGHz     float64 `json:"gfx_max_dyn_ghz" yaml:"gfx_max_dyn_ghz" toml:"gfx_max_dyn_ghz"`
	ExecutionUnits   int     `json:"execution_units" yaml:"execution_units" toml:"execution_units"`
	LithographyNM    float64 `json:"lithography_nm" yaml:"lithography_nm" toml:"lithography_nm"`
}

// FreqPerWatt is max turbo frequency per watt of base power.
func (p *Processor) FreqPerWatt() float64 {
	if p.BasePowerW <= 0 {
		return 0
	}
	return p.MaxTurboGHz / p.BasePowerW
}

// CoresPerWatt is total cores per watt of base power.
func (p *Processor) CoresPerWatt() float64 {
	if p.BasePowerW <= 0 {
		return 0
	}
	return float64(p.TotalCores) / p.BasePowerW
}

// CachePerCore is cache megabytes per core.
func (p *Processor) CachePerCore() float64 {
	if p.TotalCores <= 0 {
		return 0
	}
	return p.CacheMB / float64(p.TotalCores)
}

// Value returns the value of f for this processor, in the field's unit.
func (p *Processor) Value(f Field) float64 {
	switch f {
	case FieldBaseFreq:
		return p.BaseFreqGHz
	case FieldMaxTurbo:
		return p.MaxTurboGHz
	case FieldTotalCores:
		return float64(p.TotalCores)
	case FieldPerformanceCores:
		return float64(p.PerformanceCores)
	case FieldEfficientCores:
		return float64(p.EfficientCores)
	case FieldTotalThreads:
		return float64(p.TotalThreads)
	case FieldCache:
		return p.CacheMB
	case FieldBasePower:
		return p.BasePowerW
	case FieldTurboPower:
		return p.TurboPowerW
	case FieldMaxMemory:
		return p.MaxMemGB
	case FieldMemChannels:
		return float64(p.MemChannels)
	case FieldMemBandwidth:
		return p.MemBandwidthGBs
	case FieldPCIeLanes:
		return float64(p.PCIeLanes)
	case FieldGfxMaxDyn:
		return p.GfxMaxDynGHz
	case FieldExecutionUnits:
		return float64(p.ExecutionUnits)
	case FieldLithography:
		return p.LithographyNM
	case FieldFreqPerWatt:
		return p.FreqPerWatt()
	case FieldCoresPerWatt:
		return p.CoresPerWatt()
	case FieldCachePerCore:
		return p.CachePerCore()
	case FieldPrice:
		return p.Price
	}
	return 0
}

// With returns a copy of p with raw field f set to v. Derived fields
// cannot be set and return p unchanged; integer fields are truncated.
func (p Processor) With(f Field, v float64) Processor {
	switch f {
	case FieldBaseFreq:
		p.BaseFreqGHz = v
	case FieldMaxTurbo:
		p.MaxTurboGHz = v
	case FieldTotalCores:
		p.TotalCores = int(v)
	case FieldPerformanceCores:
		p.PerformanceCores = int(v)
	case FieldEfficientCores:
		p.EfficientCores = int(v)
	case FieldTotalThreads:
		p.TotalThreads = int(v)
	case FieldCache:
		p.CacheMB = v
	case FieldBasePower:
		p.BasePowerW = v
	case FieldTurboPower:
		p.TurboPowerW = v
	case FieldMaxMemory:
		p.MaxMemGB = v
	case FieldMemChannels:
		p.MemChannels = int(v)
	case FieldMemBandwidth:
		p.MemBandwidthGBs = v
	case FieldPCIeLanes:
		p.PCIeLanes = int(v)
	case FieldGfxMaxDyn:
		p.GfxMaxDynGHz = v
	case FieldExecutionUnits:
		p.ExecutionUnits = int(v)
	case FieldLithography:
		p.LithographyNM = v
	case FieldPrice:
		p.Price = v
	}
	return p
}

// Known reports whether field f carries a real value rather than the
// unknown sentinel.
func (p *Processor) Known(f Field) bool {
	spec := f.Spec()
	if spec.Derived {
		return p.BasePowerW > 0 && p.TotalCores > 0
	}
	return !spec.Optional || p.Value(f) != 0
}
