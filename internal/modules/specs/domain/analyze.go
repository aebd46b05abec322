package domain

type Health string

const (
	HealthExcellent Health = "Excellent"
	HealthGood      Health = "Good"
	HealthModerate  Health = "Moderate"
	HealthPoor      Health = "Poor"
)

type Analysis struct {
	Issues          []string
	Recommendations []string
	OverallHealth   Health
}

// Hardware floors below which a subsystem is flagged as a likely bottleneck.
const (
	minThreads   = 4
	minRAMGB     = 8
	minVRAMGB    = 4
	minStorageGB = 128
)

// Analyze applies the bottleneck rules to a snapshot. Each tripped rule
// contributes one issue and one matching recommendation; overall health
// degrades with the number of issues found.
func Analyze(s Snapshot) Analysis {
	a := Analysis{}
	if s.CPU.Threads <= minThreads {
		a.Issues = append(a.Issues, "Low CPU thread count may limit multitasking")
		a.Recommendations = append(a.Recommendations, "Consider a CPU with more cores/threads")
	}
	if s.RAM.TotalGB < minRAMGB {
		a.Issues = append(a.Issues, "Insufficient RAM for modern workloads")
		a.Recommendations = append(a.Recommendations, "Upgrade to at least 8GB of RAM")
	}
	if s.GPU.Model == "" || s.GPU.VRAMGB < minVRAMGB {
		a.Issues = append(a.Issues, "Weak or missing dedicated GPU")
		a.Recommendations = append(a.Recommendations, "Add a dedicated GPU with 4GB+ VRAM")
	}
	if s.Storage.TotalGB < minStorageGB {
		a.Issues = append(a.Issues, "Limited storage capacity")
		a.Recommendations = append(a.Recommendations, "Expand storage to 128GB or more")
	}

	switch len(a.Issues) {
	case 0:
		a.OverallHealth = HealthExcellent
	case 1:
		a.OverallHealth = HealthGood
	case 2:
		a.OverallHealth = HealthModerate
	default:
		a.OverallHealth = HealthPoor
	}
	return a
}
