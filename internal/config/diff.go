package config

// Diff describes what changed between two configs. Only fields that can be
// safely hot-reloaded are tracked; everything else requires a restart.
type ConfigDiff struct {
	LogLevelChanged bool
	NewLogLevel     LogLevel

	// EngineChanged is true when keyword_match or crisis_first changed.
	EngineChanged bool
	NewEngine     EngineConfig

	// RestartRequired is true when a change cannot be applied live
	// (listen address, TLS, history store, sentiment provider, Discord).
	RestartRequired bool
}

// Diff compares old and new configs and returns what changed.
func Diff(old, new *Config) ConfigDiff {
	d := ConfigDiff{}

	if old.Server.LogLevel != new.Server.LogLevel {
		d.LogLevelChanged = true
		d.NewLogLevel = new.Server.LogLevel
	}

	if old.Engine != new.Engine {
		d.EngineChanged = true
		d.NewEngine = new.Engine
	}

	if old.Server.ListenAddr != new.Server.ListenAddr ||
		!tlsEqual(old.Server.TLS, new.Server.TLS) ||
		old.History != new.History ||
		old.Sentiment != new.Sentiment ||
		old.Discord != new.Discord {
		d.RestartRequired = true
	}

	return d
}

func tlsEqual(a, b *TLSConfig) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
