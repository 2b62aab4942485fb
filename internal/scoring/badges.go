package scoring

import "github.com/HerbHall/chipmatch/pkg/models"

// GeneralUse is the badge for a processor that earns no other.
const GeneralUse = "General Use"

// BestFor lists the workloads a processor is suited to, from simple
// thresholds on its specifications.
func BestFor(p *models.Processor) []string {
	var out []string
	if p.MaxTurboGHz >= 4.5 {
		out = append(out, Gaming.Label())
	}
	if p.TotalCores >= 8 {
		out = append(out, ContentCreation.Label())
	}
	if p.FreqPerWatt() >= 0.2 {
		out = append(out, PowerEfficiency.Label())
	}
	if p.TotalCores >= 6 && p.MaxTurboGHz >= 4.0 {
		out = append(out, Programming.Label())
	}
	if p.Segment == models.SegmentServer && p.MemChannels >= 4 {
		out = append(out, Enterprise.Label())
	}
	if len(out) == 0 {
		out = append(out, GeneralUse)
	}
	return out
}
