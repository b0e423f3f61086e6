package config

import "time"

type Config struct {
	System struct {
		IsProd                bool   // 是否为生产环境
		Listen                string // 监听地址
		DBConnectionString    string // Postgres 数据库的连接字符串
		RedisConnectionString string // Redis 数据库的连接字符串
	}
	Auth struct {
		SessionTTL time.Duration // 会话有效期，到期后需要重新登录
	}
	Storage struct {
		ImageDir string // 商品图片的保存目录
	}
}
