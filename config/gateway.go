package config

// Gateway 远端存储访问策略
type Gateway struct {
	// 普通读写超时（秒），默认 10
	TimeoutSeconds int `json:"timeout_seconds" yaml:"timeout_seconds"`
	// 排行榜全表扫描超时（秒），默认 60
	ScanTimeoutSeconds int `json:"scan_timeout_seconds" yaml:"scan_timeout_seconds"`
	// 失败后的额外重试次数，默认 1
	Retries int `json:"retries" yaml:"retries"`
	// 首次退避（毫秒），之后逐次翻倍，默认 1000
	BackoffMillis int `json:"backoff_millis" yaml:"backoff_millis"`
}
