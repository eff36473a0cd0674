package config

type RocketMQConfig struct {
	NameServer []string `yaml:"nameserver"`

	Producer Producer `yaml:"producer"`
}

type Producer struct {
	Group string `yaml:"group"`
	Retry int    `yaml:"retry"`
	Topic string `yaml:"topic"` // 积分事件主题
}

func ProvideRocketMQConfig(cfg *Config) *RocketMQConfig {
	return cfg.RocketMQ
}
