package inits

import (
	"corner-shop/app/server/config"
	"corner-shop/app/server/constants"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

func Config() (*config.Config, error) {
	cfg := &config.Config{}

	// 手动配置映射，如果这里有什么自动映射工具就好了， viper 好像处理这种基于环境变量的配置也不是很方便
	{
		mode, exist := os.LookupEnv("MODE")
		cfg.System.IsProd = exist && strings.HasPrefix(strings.ToLower(mode), "p")
	}

	if listen, exist := os.LookupEnv("LISTEN"); !exist {
		cfg.System.Listen = ":1323" // 默认监听地址
	} else {
		cfg.System.Listen = listen
	}

	if dbconn, exist := os.LookupEnv("DB_CONN"); !exist {
		return nil, fmt.Errorf("DB_CONN environment variable not set")
	} else {
		cfg.System.DBConnectionString = dbconn
	}

	if redisconn, exist := os.LookupEnv("REDIS_CONN"); !exist {
		return nil, fmt.Errorf("REDIS_CONN environment variable not set")
	} else {
		cfg.System.RedisConnectionString = redisconn
	}

	if ttlStr, exist := os.LookupEnv("SESSION_TTL"); !exist {
		cfg.Auth.SessionTTL = constants.SessionDefaultTTL // 默认会话有效期
	} else if ttlSeconds, err := strconv.ParseInt(ttlStr, 10, 64); err != nil || ttlSeconds <= 0 {
		return nil, fmt.Errorf("SESSION_TTL is not a valid positive seconds value: %s", ttlStr)
	} else {
		cfg.Auth.SessionTTL = time.Duration(ttlSeconds) * time.Second
	}

	if imageDir, exist := os.LookupEnv("IMAGE_DIR"); !exist {
		cfg.Storage.ImageDir = constants.ImagePathPrefix // 默认图片目录
	} else {
		cfg.Storage.ImageDir = imageDir
	}

	return cfg, nil
}
