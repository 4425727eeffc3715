package config

// ServerConfig 服务模式配置
type ServerConfig struct {
	Listen      string   `yaml:"listen" validate:"omitempty,hostname_port"`
	Pprof       string   `yaml:"pprof" validate:"omitempty,hostname_port"`
	CORSOrigins []string `yaml:"cors_origins" validate:"dive,required"`
	// 响应缓存条数上限，0表示不缓存
	CacheSize int `yaml:"cache_size" validate:"gte=0"`
}

// SourceConfig base_requests来源
type SourceConfig struct {
	MongoURI string `yaml:"mongo_uri" validate:"omitempty,uri"`
	// 文件路径或{db}.{col}
	Base string `yaml:"base"`
}

// AppConfig 配置文件根结构，未填写的字段不覆盖flag
type AppConfig struct {
	LogLevel string       `yaml:"log_level" validate:"omitempty,oneof=debug info warn error fatal panic"`
	Format   string       `yaml:"format" validate:"omitempty,oneof=json text"`
	Server   ServerConfig `yaml:"server"`
	Source   SourceConfig `yaml:"source"`
}
