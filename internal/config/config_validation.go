package config

// validate checks that the final merged [StructuredConfig] satisfies the
// invariants the server and client can agree on before either runtime view
// is derived. Per-runtime requirements (server DSN, client adapter address)
// are enforced by the respective view constructors instead, because a field
// that is mandatory for one binary is irrelevant for the other.
func (cfg *StructuredConfig) validate() error {
	if cfg.Server.RateLimit.AuthLimit < 0 || cfg.Server.RateLimit.APILimit < 0 {
		return ErrInvalidServerConfigs
	}

	return nil
}

// validate checks the client-specific configuration view.
func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" {
		return ErrInvalidAdapterConfigs
	}
	if cfg.Workers.SyncInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
