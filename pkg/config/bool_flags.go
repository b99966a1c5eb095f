package config

// setCPDEnabled records an explicit enabled value originating from a configuration source.
func (c *Config) setCPDEnabled(value bool) {
	if c == nil {
		return
	}
	c.CPD.Enabled = value
	c.setFlags.cpdEnabled = true
}

func (c *Config) cpdEnabledSet() bool {
	if c == nil {
		return false
	}
	return c.setFlags.cpdEnabled
}

// setLoggingVerbose records an explicit verbose flag value from configuration.
func (c *Config) setLoggingVerbose(value bool) {
	if c == nil {
		return
	}
	c.Logging.Verbose = value
	c.setFlags.loggingVerbose = true
}

func (c *Config) loggingVerboseSet() bool {
	if c == nil {
		return false
	}
	return c.setFlags.loggingVerbose
}

// setLoggingQuiet records an explicit quiet flag value from configuration.
func (c *Config) setLoggingQuiet(value bool) {
	if c == nil {
		return
	}
	c.Logging.Quiet = value
	c.setFlags.loggingQuiet = true
}

func (c *Config) loggingQuietSet() bool {
	if c == nil {
		return false
	}
	return c.setFlags.loggingQuiet
}

func (c *Config) setLoggingCompress(value bool) {
	if c == nil {
		return
	}
	c.Logging.Compress = value
	c.setFlags.loggingCompress = true
}

func (c *Config) loggingCompressSet() bool {
	if c == nil {
		return false
	}
	return c.setFlags.loggingCompress
}

// ExplicitlySetCPDEnabled returns true if a source explicitly enabled or disabled CPD.
func (c *Config) ExplicitlySetCPDEnabled() bool {
	return c.cpdEnabledSet()
}
