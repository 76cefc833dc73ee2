package config

// DefaultCacheDir is the model cache location relative to the working
// directory when no override is given.
const DefaultCacheDir = "qwen3_local_cache"

// DefaultConfig returns configuration with sensible defaults.
// These defaults are used when no config file exists or when the
// config file is missing specific fields.
func DefaultConfig() *Config {
	return &Config{
		Model: ModelConfig{
			ID:           "Qwen/Qwen3-Embedding-0.6B",
			OnnxFilename: "model.onnx",
		},
		Cache: CacheConfig{
			Dir: DefaultCacheDir,
		},
		Prefix: PrefixConfig{
			Query:   "query: ",
			Passage: "passage: ",
		},
	}
}

// Merge merges loaded config with defaults.
// Values from loaded config take precedence over defaults.
func Merge(loaded, defaults *Config) *Config {
	result := &Config{}

	result.Model = mergeModelConfig(loaded.Model, defaults.Model)
	result.Cache = mergeCacheConfig(loaded.Cache, defaults.Cache)
	result.Prefix = mergePrefixConfig(loaded.Prefix, defaults.Prefix)

	return result
}

func mergeModelConfig(loaded, defaults ModelConfig) ModelConfig {
	result := ModelConfig{}

	if loaded.ID != "" {
		result.ID = loaded.ID
	} else {
		result.ID = defaults.ID
	}

	if loaded.OnnxFilename != "" {
		result.OnnxFilename = loaded.OnnxFilename
	} else {
		result.OnnxFilename = defaults.OnnxFilename
	}

	return result
}

func mergeCacheConfig(loaded, defaults CacheConfig) CacheConfig {
	result := CacheConfig{}

	if loaded.Dir != "" {
		result.Dir = loaded.Dir
	} else {
		result.Dir = defaults.Dir
	}

	// Booleans: YAML unmarshals missing as false, which matches the default.
	result.SkipVectorCache = loaded.SkipVectorCache

	return result
}

func mergePrefixConfig(loaded, defaults PrefixConfig) PrefixConfig {
	result := PrefixConfig{}

	if loaded.Query != "" {
		result.Query = loaded.Query
	} else {
		result.Query = defaults.Query
	}

	if loaded.Passage != "" {
		result.Passage = loaded.Passage
	} else {
		result.Passage = defaults.Passage
	}

	return result
}
