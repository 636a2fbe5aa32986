package config

// Config 配置主体
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	DB        DBConfig        `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Mongo     MongoConfig     `mapstructure:"mongo"`
	Elastic   ElasticConfig   `mapstructure:"elastic"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	Logstash  LogstashConfig  `mapstructure:"logstash"`
	TaskQueue TaskQueueConfig `mapstructure:"task_queue"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// MongoConfig 聊天消息存储配置
type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

// ElasticConfig Elastic配置
type ElasticConfig struct {
	Address  string         `mapstructure:"address"`
	Username string         `mapstructure:"username"`
	Password string         `mapstructure:"password"`
	Indices  ElasticIndices `mapstructure:"indices"`
}

// ElasticIndices Elastic索引
type ElasticIndices struct {
	PostIndex string `mapstructure:"post_index"`
}

type KafkaConfig struct {
	Brokers     []string   `mapstructure:"brokers"`
	Sasl        SaslConfig `mapstructure:"sasl"`
	EventsTopic string     `mapstructure:"events_topic"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

// TaskQueueConfig 延迟任务队列配置
type TaskQueueConfig struct {
	PollInterval int    `mapstructure:"poll_interval"` // 秒
	Workers      int    `mapstructure:"workers"`
	MaxRetries   int    `mapstructure:"max_retries"`
	SweepCron    string `mapstructure:"sweep_cron"`
}
