package domain_test

import (
	"strings"
	"testing"

	"sdu/internal/modules/probe/domain"
)

func validManifest() domain.Manifest {
	return domain.Manifest{
		Name:         "mockprobe",
		Version:      "1.0.0",
		Binary:       "/opt/sdu/probes/mockprobe",
		SHA256:       strings.Repeat("ab", 32),
		Enabled:      true,
		Capabilities: []domain.Capability{domain.CapabilitySnapshot, domain.CapabilityLiveMetrics},
	}
}

func TestManifestValidate(t *testing.T) {
	t.Parallel()

	if err := validManifest().Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*domain.Manifest)
	}{
		{name: "missing name", mutate: func(m *domain.Manifest) { m.Name = "" }},
		{name: "missing version", mutate: func(m *domain.Manifest) { m.Version = "" }},
		{name: "missing binary", mutate: func(m *domain.Manifest) { m.Binary = "" }},
		{name: "uppercase sha", mutate: func(m *domain.Manifest) { m.SHA256 = strings.Repeat("AB", 32) }},
		{name: "short sha", mutate: func(m *domain.Manifest) { m.SHA256 = "abcd" }},
		{name: "no capabilities", mutate: func(m *domain.Manifest) { m.Capabilities = nil }},
		{name: "unknown capability", mutate: func(m *domain.Manifest) { m.Capabilities = []domain.Capability{"telepathy"} }},
		{name: "duplicate capability", mutate: func(m *domain.Manifest) {
			m.Capabilities = []domain.Capability{domain.CapabilitySnapshot, domain.CapabilitySnapshot}
		}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			manifest := validManifest()
			tc.mutate(&manifest)
			if err := manifest.Validate(); err == nil {
				t.Fatal("Validate() must fail")
			}
		})
	}
}

func TestHasCapability(t *testing.T) {
	t.Parallel()

	manifest := validManifest()
	manifest.Capabilities = []domain.Capability{domain.CapabilitySnapshot}
	if !manifest.HasCapability(domain.CapabilitySnapshot) {
		t.Fatal("snapshot capability must be present")
	}
	if manifest.HasCapability(domain.CapabilityLiveMetrics) {
		t.Fatal("live_metrics capability must be absent")
	}
}
