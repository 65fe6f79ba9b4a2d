package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	FetchTimeout     time.Duration `env:"FETCH_TIMEOUT"      envDefault:"20s"`
	FetchMaxBytes    int64         `env:"FETCH_MAX_BYTES"    envDefault:"10485760"`
	ArticleCacheSize int           `env:"ARTICLE_CACHE_SIZE" envDefault:"128"`
	ArticleCacheTTL  time.Duration `env:"ARTICLE_CACHE_TTL"  envDefault:"0s"`
	SummaryCacheSize int           `env:"SUMMARY_CACHE_SIZE" envDefault:"128"`

	DefaultSentences int `env:"DEFAULT_SENTENCES" envDefault:"3"`
	MaxSentences     int `env:"MAX_SENTENCES"     envDefault:"20"`
	FeedItemLimit    int `env:"FEED_ITEM_LIMIT"   envDefault:"5"`

	TelegramToken   string        `env:"TELEGRAM_TOKEN"`
	AllowedUsers    []int64       `env:"ALLOWED_USERS"`
	PrivateChatRate time.Duration `env:"PRIVATE_CHAT_RATE" envDefault:"1s"`
	GroupChatRate   time.Duration `env:"GROUP_CHAT_RATE"   envDefault:"3s"`

	WarmFeeds []string `env:"WARM_FEEDS"`
	WarmSpec  string   `env:"WARM_SPEC"  envDefault:"0 * * * *"`
}

func Load() (Config, error) {
	return env.ParseAs[Config]()
}
