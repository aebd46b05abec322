package domain

import (
	"math"
	"math/rand"
	"time"
)

// Hardware identifies the machine a simulated result is attributed to.
type Hardware struct {
	CPUModel string
	GPUModel string
	RAMGB    int
}

// Score ranges for simulated runs. The bands are wide enough that repeated
// runs produce visibly different results while staying plausible per tier.
const (
	simCPUMin, simCPUSpan         = 8000, 2000
	simGPUMin, simGPUSpan         = 12000, 3000
	simRAMMin, simRAMSpan         = 5000, 1000
	simOverallMin, simOverallSpan = 20000, 5000
	simTempMin, simTempSpan       = 60.0, 15.0
)

// loadCurve is the canonical shape of a two-minute run: ramp-up, sustained
// peak, slight cooldown.
var loadCurve = []MetricPoint{
	{Time: 0, CPU: 45, GPU: 30, Temp: 60},
	{Time: 30, CPU: 78, GPU: 65, Temp: 72},
	{Time: 60, CPU: 92, GPU: 88, Temp: 78},
	{Time: 90, CPU: 95, GPU: 94, Temp: 82},
	{Time: 120, CPU: 89, GPU: 91, Temp: 80},
}

// LoadCurve returns a copy of the canonical run curve.
func LoadCurve() []MetricPoint {
	curve := make([]MetricPoint, len(loadCurve))
	copy(curve, loadCurve)
	return curve
}

// Simulate produces a complete offline result for one run.
func Simulate(rng *rand.Rand, id string, typ Type, hw Hardware, at time.Time) Result {
	return Result{
		ID:            id,
		BenchmarkType: typ,
		CPUScore:      simCPUMin + rng.Intn(simCPUSpan+1),
		GPUScore:      simGPUMin + rng.Intn(simGPUSpan+1),
		RAMScore:      simRAMMin + rng.Intn(simRAMSpan+1),
		OverallScore:  simOverallMin + rng.Intn(simOverallSpan+1),
		AvgTemp:       math.Round((simTempMin+rng.Float64()*simTempSpan)*10) / 10,
		CPUModel:      hw.CPUModel,
		GPUModel:      hw.GPUModel,
		RAMGB:         hw.RAMGB,
		CreatedAt:     at,
		Metrics:       LoadCurve(),
	}
}
