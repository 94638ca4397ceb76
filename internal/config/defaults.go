package config

const (
	defaultOutputDir              = "~/.local/share/notofetch/noto"
	defaultLogDir                 = "~/.local/share/notofetch/logs"
	defaultDataURL                = "https://googlefonts.github.io/noto-emoji-animation/data/api.json"
	defaultAssetBaseURL           = "https://fonts.gstatic.com/s/e/notoemoji/latest"
	defaultAssetName              = "lottie.json"
	defaultCatalogTimeoutSeconds  = 30
	defaultDownloadWorkers        = 10
	defaultDownloadTimeoutSeconds = 20
	defaultHistoryKeep            = 200
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
		},
		Catalog: Catalog{
			DataURL:        defaultDataURL,
			AssetBaseURL:   defaultAssetBaseURL,
			AssetName:      defaultAssetName,
			TimeoutSeconds: defaultCatalogTimeoutSeconds,
		},
		Download: Download{
			Workers:        defaultDownloadWorkers,
			TimeoutSeconds: defaultDownloadTimeoutSeconds,
		},
		History: History{
			Enabled: true,
			Keep:    defaultHistoryKeep,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
