package config

const (
	defaultPlantCount         = 2
	defaultPeelers            = 6
	defaultSqueezers          = 4
	defaultBottlers           = 3
	defaultQueueCapacity      = 10
	defaultOrangesPerBottle   = 3
	defaultRunMillis          = 5000
	defaultPollTimeoutMillis  = 100
	defaultDrainTimeoutMillis = 2000
	defaultTimeScale          = 1.0
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultConfigPath         = "~/.config/juicery/config.toml"
	projectConfigName         = "juicery.toml"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Plant: Plant{
			Count:            defaultPlantCount,
			Peelers:          defaultPeelers,
			Squeezers:        defaultSqueezers,
			Bottlers:         defaultBottlers,
			QueueCapacity:    defaultQueueCapacity,
			OrangesPerBottle: defaultOrangesPerBottle,
		},
		Workflow: Workflow{
			RunMillis:          defaultRunMillis,
			PollTimeoutMillis:  defaultPollTimeoutMillis,
			DrainTimeoutMillis: defaultDrainTimeoutMillis,
			TimeScale:          defaultTimeScale,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
