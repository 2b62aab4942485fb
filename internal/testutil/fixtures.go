package testutil

import (
	"github.com/HerbHall/chipmatch/pkg/models"
)

// NewProcessor returns a valid desktop Processor suitable for test fixtures.
// Override individual fields with options.
func NewProcessor(opts ...func(*models.Processor)) models.Processor {
	p := models.Processor{
		Name:             "Intel Core i5-13400 Processor",
		Model:            "i5-13400",
		Family:           models.FamilyCore5,
		Segment:          models.SegmentDesktop,
		Category:         "13th Generation Intel Core i5 Processors",
		Price:            221,
		BaseFreqGHz:      2.5,
		MaxTurboGHz:      4.6,
		TotalCores:       10,
		PerformanceCores: 6,
		EfficientCores:   4,
		TotalThreads:     16,
		CacheMB:          20,
		BasePowerW:       65,
		TurboPowerW:      148,
		MaxMemGB:         192,
		MemChannels:      2,
		MemBandwidthGBs:  76.8,
		PCIeLanes:        20,
		GfxMaxDynGHz:     1.55,
		ExecutionUnits:   24,
		LithographyNM:    10,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// WithName sets the processor name.
func WithName(name string) func(*models.Processor) {
	return func(p *models.Processor) { p.Name = name }
}

// WithModel sets the model number.
func WithModel(model string) func(*models.Processor) {
	return func(p *models.Processor) { p.Model = model }
}

// WithFamily sets the product family.
func WithFamily(f models.Family) func(*models.Processor) {
	return func(p *models.Processor) { p.Family = f }
}

// WithSegment sets the market segment.
func WithSegment(s models.Segment) func(*models.Processor) {
	return func(p *models.Processor) { p.Segment = s }
}

// WithPrice sets the price in USD.
func WithPrice(usd float64) func(*models.Processor) {
	return func(p *models.Processor) { p.Price = usd }
}

// WithField sets any stored numeric field.
func WithField(f models.Field, v float64) func(*models.Processor) {
	return func(p *models.Processor) { *p = p.With(f, v) }
}
