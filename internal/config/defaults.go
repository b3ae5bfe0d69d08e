package config

const (
	defaultDataDir      = "~/.local/share/popcorn"
	defaultCatalogPath  = "~/.local/share/popcorn/imdb_top_1000.csv"
	defaultAPIBind      = "127.0.0.1:8501"
	defaultLogFormat    = "console"
	defaultLogLevel     = "info"
	defaultCount        = 5
	defaultSimilarCount = 10
	defaultSeedCount    = 3
	defaultPerSeedCount = 3
)

// MaxRecommendationCount caps every configured or requested result size.
const MaxRecommendationCount = 100

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			APIBind: defaultAPIBind,
		},
		Catalog: Catalog{
			Path: defaultCatalogPath,
		},
		Recommend: Recommend{
			DefaultCount: defaultCount,
			SimilarCount: defaultSimilarCount,
			SeedCount:    defaultSeedCount,
			PerSeedCount: defaultPerSeedCount,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
