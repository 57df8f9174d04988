package main

import (
	"context"
	"fmt"

	"github.com/aretw0/escrowrail"
	"github.com/aretw0/escrowrail/internal/config"
	"github.com/aretw0/escrowrail/pkg/adapters/file"
	loamAdapter "github.com/aretw0/escrowrail/pkg/adapters/loam"
	"github.com/aretw0/escrowrail/pkg/adapters/memory"
	redisAdapter "github.com/aretw0/escrowrail/pkg/adapters/redis"
	"github.com/aretw0/escrowrail/pkg/domain"
	"github.com/aretw0/escrowrail/pkg/persistence/middleware"
	"github.com/aretw0/escrowrail/pkg/ports"
	"github.com/aretw0/escrowrail/pkg/registry"
	"github.com/aretw0/escrowrail/pkg/schema"
	"github.com/aretw0/escrowrail/pkg/signoff"
	"github.com/spf13/cobra"
)

// newEngine builds the planning engine from the configuration.
func newEngine(c *config.Config, hooks domain.LifecycleHooks) (*escrowrail.Engine, error) {
	opts := []escrowrail.Option{
		escrowrail.WithLogger(logger),
		escrowrail.WithWeights(c.Weights),
		escrowrail.WithLifecycleHooks(hooks),
	}
	if c.RegistryFile != "" {
		data, err := registry.LoadFile(c.RegistryFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, escrowrail.WithRegistry(data))
	}
	return escrowrail.New(opts...), nil
}

// newManager opens the configured plan store. The returned close function releases it.
func newManager(c *config.Config, hooks domain.LifecycleHooks) (*signoff.Manager, func() error) {
	opts := []signoff.Option{
		signoff.WithLogger(logger),
		signoff.WithHooks(hooks),
	}
	store, closeStore := openStore(c, &opts)
	if c.Store.MaskAccounts {
		store = middleware.Chain(store, middleware.NewAccountMasking(middleware.DefaultVisibleDigits))
	}
	return signoff.NewManager(store, opts...), closeStore
}

func openStore(c *config.Config, opts *[]signoff.Option) (ports.PlanStore, func() error) {
	switch c.Store.Driver {
	case config.DriverMemory:
		return memory.NewStore(), func() error { return nil }
	case config.DriverRedis:
		var storeOpts []redisAdapter.Option
		prefix := redisAdapter.DefaultPrefix
		if c.Store.Prefix != "" {
			prefix = c.Store.Prefix
			storeOpts = append(storeOpts, redisAdapter.WithPrefix(prefix))
		}
		if c.Store.TTL > 0 {
			storeOpts = append(storeOpts, redisAdapter.WithTTL(c.Store.TTL))
		}
		store := redisAdapter.New(c.Store.RedisAddr, c.Store.RedisPassword, c.Store.RedisDB, storeOpts...)
		*opts = append(*opts, signoff.WithLocker(redisAdapter.NewLocker(store.Client(), prefix)))
		return store, store.Close
	default:
		path := c.Store.Path
		if path == "" {
			path = file.DefaultBasePath
		}
		return file.New(path), func() error { return nil }
	}
}

// profileSource picks where entity profiles are read from.
func profileSource(cmd *cobra.Command) (ports.ProfileSource, error) {
	dir, _ := cmd.Flags().GetString("entities")
	if dir == "" {
		dir = cfg.EntitiesDir
	}
	if useLoam, _ := cmd.Flags().GetBool("loam"); useLoam {
		loader, err := loamAdapter.Open(dir)
		if err != nil {
			return nil, err
		}
		return loader, nil
	}
	return file.NewProfileDir(dir), nil
}

// loadProfiles reads explicit entity files when given, otherwise the entity source.
// Records that fail validation are reported on stderr and returned alongside the profiles.
func loadProfiles(ctx context.Context, cmd *cobra.Command, engine *escrowrail.Engine, paths []string) ([]domain.Profile, []schema.LoadResult, error) {
	var profiles []domain.Profile
	var failed []schema.LoadResult

	if len(paths) > 0 {
		results := make([]schema.LoadResult, 0, len(paths))
		for _, p := range paths {
			results = append(results, schema.LoadFile(p))
		}
		profiles, failed = schema.Split(results)
	} else {
		src, err := profileSource(cmd)
		if err != nil {
			return nil, nil, err
		}
		if profiles, failed, err = engine.LoadProfiles(ctx, src); err != nil {
			return nil, nil, err
		}
	}

	for _, f := range failed {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s: %v\n", f.Path, f.Err)
	}
	return profiles, failed, nil
}

// loadEvidence scans the evidence data room named by --evidence or the config.
func loadEvidence(ctx context.Context, cmd *cobra.Command) (domain.EvidenceIndex, error) {
	dir, _ := cmd.Flags().GetString("evidence")
	if dir == "" {
		dir = cfg.EvidenceDir
	}
	return file.ScanEvidence(ctx, dir)
}

func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayP("entity", "e", nil, "Entity YAML path(s); defaults to every file in the entities directory")
	cmd.Flags().String("entities", "", "Entities directory (default from config)")
	cmd.Flags().Bool("loam", false, "Read the entities directory as a loam document repository")
}
