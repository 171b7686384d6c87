package field

import "go.uber.org/zap"

// DepsFunc builds the collaborators for one instance.
type DepsFunc func(Options) (Deps, error)

// Mount creates and starts an instance for every option set. Instances that
// fail to initialise are skipped and logged at debug level; they draw
// nothing.
func Mount(tun Tunables, opts []Options, build DepsFunc, log *zap.Logger) []*Instance {
	if log == nil {
		log = zap.NewNop()
	}

	instances := make([]*Instance, 0, len(opts))
	for _, o := range opts {
		deps, err := build(o)
		if err != nil {
			log.Debug("skipping field", zap.String("instance", o.ID), zap.Error(err))
			continue
		}
		if deps.Logger == nil {
			deps.Logger = log
		}
		inst, err := New(tun, o, deps)
		if err != nil {
			log.Debug("skipping field", zap.String("instance", o.ID), zap.Error(err))
			continue
		}
		inst.Start()
		instances = append(instances, inst)
	}
	return instances
}
