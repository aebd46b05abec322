package dto

type ProbeInfo struct {
	Name         string
	Version      string
	Enabled      bool
	Binary       string
	Capabilities []string
}

type DoctorResult struct {
	Name            string
	ChecksumValid   bool
	BinaryReachable bool
	LifecycleOK     bool
	Error           string
}

type SnapshotOutput struct {
	OS              string
	CPUModel        string
	CPUCores        int
	CPUThreads      int
	CPUUsagePct     float64
	GPUModel        string
	GPUVRAMGB       int
	GPUUsagePct     float64
	RAMTotalGB      int
	RAMSpeed        string
	RAMUsagePct     float64
	StorageKind     string
	StorageGB       int
	StorageUsagePct float64
}

type LiveSampleOutput struct {
	CPU  float64
	GPU  float64
	Temp float64
}
