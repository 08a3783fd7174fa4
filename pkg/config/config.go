package config

// this holds the resolved configuration values from CLI
//
//nolint:lll // readablity
var (
	DB                string // connection string for the database
	WaitForServices   string // duration to wait for other services to be ready
	LogLevel          string // sets the log level (zap log level values)
	SQLLogLevel       string // sets the log level for sql subsystem
	LogFormat         string // text vs json
	LogFilter         string // zapfilter rules, e.g. "debug+:calibration info+:*"
	EnableTelemetry   bool   // enable telemetry
	TelemetryEndpoint string // endpoint for telemetry, "stdout" prints spans
	TrackDir          string // directory for downloaded track files
	TrackBaseURL      string // base url of the track npy files
	Workers           int    // number of concurrent calibration workers (0: number of CPUs)
)
