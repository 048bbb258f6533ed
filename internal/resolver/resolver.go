package resolver

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/vk/rtdeps/internal/assembly"
	"github.com/vk/rtdeps/internal/ctxlog"
	"github.com/vk/rtdeps/internal/depgraph"
	"github.com/vk/rtdeps/internal/environment"
	"github.com/vk/rtdeps/internal/metrics"
	"github.com/vk/rtdeps/internal/rid"
	"github.com/vk/rtdeps/internal/scriptfiles"
	"golang.org/x/sync/errgroup"
)

// Options tunes a Resolver. Nil collaborators get their defaults.
type Options struct {
	// Provider and Locator back the entry points. ResolveGraph works without
	// them.
	Provider GraphProvider
	Locator  ProjectLocator
	// Extractor defaults to a scriptfiles.Extractor built per graph for
	// the framework chosen by environment.Descriptor.FrameworkFor.
	Extractor ScriptExtractor
	// Assemblies defaults to a lenient assembly.Reader.
	Assemblies AssemblyReader
	// Metrics may be nil.
	Metrics *metrics.Recorder
	// Workers bounds the number of libraries resolved concurrently. Values
	// below 1 mean sequential resolution.
	Workers int
}

// Resolver resolves the runtime assets of dependency graphs for one
// environment. It is safe for concurrent use.
type Resolver struct {
	env        environment.Descriptor
	matcher    *rid.Matcher
	provider   GraphProvider
	locator    ProjectLocator
	extractor  ScriptExtractor
	assemblies AssemblyReader
	metrics    *metrics.Recorder
	workers    int
}

// New creates a Resolver for env.
func New(env environment.Descriptor, opts Options) (*Resolver, error) {
	if err := env.Validate(); err != nil {
		return nil, fmt.Errorf("resolver: %w", err)
	}
	r := &Resolver{
		env:        env,
		matcher:    rid.NewMatcher(env.Platform, env.Architecture),
		provider:   opts.Provider,
		locator:    opts.Locator,
		extractor:  opts.Extractor,
		assemblies: opts.Assemblies,
		metrics:    opts.Metrics,
		workers:    opts.Workers,
	}
	if r.assemblies == nil {
		r.assemblies = &assembly.Reader{}
	}
	if r.workers < 1 {
		r.workers = 1
	}
	return r, nil
}

// Environment returns the descriptor the resolver was built for.
func (r *Resolver) Environment() environment.Descriptor {
	return r.env
}

// pass holds what every library of one graph shares.
type pass struct {
	roots           []string
	extractor       ScriptExtractor
	restorePackages bool
}

// ResolveGraph produces one RuntimeDependency per library of graph, in graph
// order. restorePackages controls whether bundled script files are looked
// up. The first fatal error in graph order aborts the whole call and no
// partial result is returned.
func (r *Resolver) ResolveGraph(ctx context.Context, graph *depgraph.Graph, restorePackages bool) ([]RuntimeDependency, error) {
	if graph == nil {
		return nil, errors.New("resolver: nil dependency graph")
	}
	start := time.Now()
	defer func() { r.metrics.ObserveResolution(time.Since(start)) }()

	framework := r.env.FrameworkFor(graph.TargetFramework)
	p := pass{
		roots:           graph.SearchRoots(r.env),
		extractor:       r.extractor,
		restorePackages: restorePackages,
	}
	if p.extractor == nil {
		p.extractor = scriptfiles.NewExtractor(framework)
	}

	logger := ctxlog.FromContext(ctx)
	logger.Debug("Resolving dependency graph.",
		"libraries", len(graph.Libraries),
		"roots", p.roots,
		"sources", graph.Sources,
		"rid", r.env.RuntimeIdentifier,
		"framework", framework,
		"restorePackages", restorePackages,
		"workers", r.workers,
	)

	records := make([]RuntimeDependency, len(graph.Libraries))
	errs := make([]error, len(graph.Libraries))

	// firstFailed is the lowest index that failed so far. Libraries after it
	// are skipped; libraries before it still run, so the reported error does
	// not depend on scheduling.
	var firstFailed atomic.Int64
	firstFailed.Store(int64(len(graph.Libraries)))

	var g errgroup.Group
	g.SetLimit(r.workers)
	for i, lib := range graph.Libraries {
		g.Go(func() error {
			if int64(i) > firstFailed.Load() {
				return nil
			}
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			rec, err := r.resolveLibrary(ctx, lib, p)
			if err != nil {
				errs[i] = err
				lowerFirstFailed(&firstFailed, int64(i))
				return nil
			}
			records[i] = rec
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	logger.Debug("Resolved dependency graph.", "libraries", len(records))
	return records, nil
}

func lowerFirstFailed(v *atomic.Int64, i int64) {
	for {
		cur := v.Load()
		if i >= cur || v.CompareAndSwap(cur, i) {
			return
		}
	}
}

func (r *Resolver) resolveLibrary(ctx context.Context, lib *depgraph.Library, p pass) (RuntimeDependency, error) {
	if lib == nil {
		return RuntimeDependency{}, errors.New("resolver: nil library in dependency graph")
	}
	ctx = ctxlog.WithLogger(ctx, ctxlog.FromContext(ctx).With("library", lib.Name, "version", lib.Version))

	assemblies, err := r.selectAssemblies(ctx, lib, p.roots)
	if err != nil {
		return RuntimeDependency{}, fmt.Errorf("library %s: %w", lib.ID(), err)
	}
	native, err := r.selectNative(ctx, lib, p.roots)
	if err != nil {
		return RuntimeDependency{}, fmt.Errorf("library %s: %w", lib.ID(), err)
	}
	scripts, err := r.scripts(ctx, lib, p)
	if err != nil {
		return RuntimeDependency{}, fmt.Errorf("library %s: %w", lib.ID(), err)
	}

	r.metrics.LibraryResolved()
	return RuntimeDependency{
		Name:         lib.Name,
		Version:      lib.Version,
		Assemblies:   assemblies,
		NativeAssets: native,
		Scripts:      scripts,
	}, nil
}
