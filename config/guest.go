package config

// Guest 游客模式本地存储
type Guest struct {
	// 游客数据落盘目录，每个 guest key 一个 json 文件
	DataDir string `json:"data_dir" yaml:"data_dir"`
}
