package bootstrap

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	accountinadapter "sdu/internal/modules/account/adapter/in"
	accountoutadapter "sdu/internal/modules/account/adapter/out"
	accountin "sdu/internal/modules/account/port/in"
	accountservice "sdu/internal/modules/account/service"
	accountusecase "sdu/internal/modules/account/usecase"
	benchmarkinadapter "sdu/internal/modules/benchmark/adapter/in"
	benchmarkoutadapter "sdu/internal/modules/benchmark/adapter/out"
	benchmarkdomain "sdu/internal/modules/benchmark/domain"
	benchmarkin "sdu/internal/modules/benchmark/port/in"
	benchmarkout "sdu/internal/modules/benchmark/port/out"
	benchmarkservice "sdu/internal/modules/benchmark/service"
	benchmarkusecase "sdu/internal/modules/benchmark/usecase"
	probeinadapter "sdu/internal/modules/probe/adapter/in"
	probeoutadapter "sdu/internal/modules/probe/adapter/out"
	probedomain "sdu/internal/modules/probe/domain"
	probein "sdu/internal/modules/probe/port/in"
	probeservice "sdu/internal/modules/probe/service"
	probeusecase "sdu/internal/modules/probe/usecase"
	reviewinadapter "sdu/internal/modules/review/adapter/in"
	reviewoutadapter "sdu/internal/modules/review/adapter/out"
	reviewin "sdu/internal/modules/review/port/in"
	reviewservice "sdu/internal/modules/review/service"
	reviewusecase "sdu/internal/modules/review/usecase"
	specsinadapter "sdu/internal/modules/specs/adapter/in"
	specsoutadapter "sdu/internal/modules/specs/adapter/out"
	specsin "sdu/internal/modules/specs/port/in"
	specsout "sdu/internal/modules/specs/port/out"
	specsservice "sdu/internal/modules/specs/service"
	specsusecase "sdu/internal/modules/specs/usecase"
	"sdu/internal/platform/clock"
	"sdu/internal/platform/config"
	"sdu/internal/platform/id"
	"sdu/internal/platform/rest"
	uiapp "sdu/internal/ui/app"
	overviewview "sdu/internal/ui/views/overview"
)

type App struct {
	Config config.Config

	AccountCLI accountinadapter.CLIHandler
	SpecsCLI   specsinadapter.CLIHandler
	BenchCLI   benchmarkinadapter.CLIHandler
	// BenchLocalCLI runs against the simulator regardless of the offline
	// setting; it shares the history store with BenchCLI.
	BenchLocalCLI benchmarkinadapter.CLIHandler
	ReviewCLI     reviewinadapter.CLIHandler
	ProbeCLI      probeinadapter.CLIHandler

	account accountin.Usecase
	bench   benchmarkin.Usecase
	specs   specsin.Usecase
	reviews reviewin.Usecase
	probes  probein.Usecase
}

func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.RandomHex{}

	sessionStore := accountoutadapter.NewFileSessionStore(cfg.SessionPath())
	client := rest.New(cfg.APIBaseURL, sessionStore)

	accountUC := accountusecase.NewInteractor(
		accountservice.NewAccountService(clk),
		accountoutadapter.NewRESTAccountAPI(client),
		sessionStore,
		accountoutadapter.NewFileAvatarEncoder(),
	)

	manifestStore := probeoutadapter.NewFileManifestStore(cfg.DataDir)
	probeUC := probeusecase.NewInteractor(
		probeservice.NewProbeService(manifestStore, probeoutadapter.NewGRPCHost()),
	)
	snapshotProbe := probeWithCapability(manifestStore, probedomain.CapabilitySnapshot)
	liveProbe := probeWithCapability(manifestStore, probedomain.CapabilityLiveMetrics)

	cache := specsoutadapter.NewFileSnapshotCache(cfg.SnapshotPath())
	var collectors []specsout.Collector
	if snapshotProbe != "" {
		collectors = append(collectors, specsoutadapter.NewProbeCollector(probeUC, snapshotProbe, clk))
	}
	if !cfg.Offline {
		collectors = append(collectors, specsoutadapter.NewRESTCollector(client))
	}
	collectors = append(collectors, specsoutadapter.NewStaticCollector(clk))
	specsUC := specsusecase.NewInteractor(
		specsservice.NewSpecsService(clk, specsoutadapter.NewFallbackCollector(collectors...), cache),
	)

	historyStore, err := benchmarkoutadapter.NewSQLiteHistoryStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open benchmark history: %w", err)
	}
	benchSvc := benchmarkservice.NewBenchmarkService(clk, ids, historyStore, cfg.HistoryCap)

	simulator := benchmarkoutadapter.NewLocalSimulator(clk, ids, localHardware(cache), clk.Now().UnixNano())
	var (
		runner  benchmarkout.Runner   = simulator
		live    benchmarkout.LiveFeed = simulator
		remote  benchmarkout.RemoteIndex
		compare benchmarkout.Comparator
	)
	if !cfg.Offline {
		api := benchmarkoutadapter.NewRESTBenchmarkAPI(client)
		runner, remote, compare, live = api, api, api, api
	}
	if liveProbe != "" {
		live = benchmarkoutadapter.NewProbeLiveFeed(probeUC, liveProbe)
	}
	benchUC := benchmarkusecase.NewInteractor(benchSvc, runner, remote, compare, live)
	benchLocalUC := benchmarkusecase.NewInteractor(benchSvc, simulator, nil, nil, simulator)

	reviewStore, err := reviewoutadapter.NewSQLiteReviewStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open review store: %w", err)
	}
	reviewUC := reviewusecase.NewInteractor(reviewservice.NewReviewService(clk, ids, reviewStore))

	return &App{
		Config:        cfg,
		AccountCLI:    accountinadapter.NewCLIHandler(accountUC),
		SpecsCLI:      specsinadapter.NewCLIHandler(specsUC),
		BenchCLI:      benchmarkinadapter.NewCLIHandler(benchUC),
		BenchLocalCLI: benchmarkinadapter.NewCLIHandler(benchLocalUC),
		ReviewCLI:     reviewinadapter.NewCLIHandler(reviewUC),
		ProbeCLI:      probeinadapter.NewCLIHandler(probeUC),
		account:       accountUC,
		bench:         benchUC,
		specs:         specsUC,
		reviews:       reviewUC,
		probes:        probeUC,
	}, nil
}

// Username resolves the stored session's profile, for CLI commands that need
// the acting user (review ownership).
func (a *App) Username(ctx context.Context) (string, error) {
	user, err := a.account.Restore(ctx)
	if err != nil {
		return "", err
	}
	return user.Username, nil
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(
		app.account,
		app.bench,
		app.specs,
		app.reviews,
		app.probes,
		overviewview.Config{
			ProgressTick: app.Config.ProgressTick,
			LivePoll:     app.Config.LivePoll,
			Networked:    !app.Config.Offline,
		},
	)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// probeWithCapability returns the first enabled, valid manifest advertising
// the capability. An empty result means no probe serves it.
func probeWithCapability(store *probeoutadapter.FileManifestStore, capability probedomain.Capability) string {
	manifests, err := store.Load(context.Background())
	if err != nil {
		return ""
	}
	for _, m := range manifests {
		if !m.Enabled || m.Validate() != nil {
			continue
		}
		if m.HasCapability(capability) {
			return m.Name
		}
	}
	return ""
}

// localHardware attributes simulated results to the cached machine when one
// exists, falling back to the simulator's reference machine.
func localHardware(cache *specsoutadapter.FileSnapshotCache) benchmarkdomain.Hardware {
	snap, err := cache.Load(context.Background())
	if err != nil || snap.Empty() {
		return benchmarkdomain.Hardware{
			CPUModel: "AMD Ryzen 9 5950X",
			GPUModel: "NVIDIA GeForce RTX 4080",
			RAMGB:    64,
		}
	}
	return benchmarkdomain.Hardware{
		CPUModel: snap.CPU.Model,
		GPUModel: snap.GPU.Model,
		RAMGB:    snap.RAM.TotalGB,
	}
}
