package config

import (
	"context"

	"github.com/spf13/viper"
	"github.com/zeromicro/go-zero/core/logc"
)

type App struct {
	Server    Server    `yaml:"server"`
	DB        DB        `yaml:"db"`
	Discovery Discovery `yaml:"discovery"`
}

type Server struct {
	Port string `yaml:"port"`
	Mode string `yaml:"mode"`
}

// DB 数据库配置
// Driver 为 sqlite 时仅使用 Path（单文件存储）；为 mysql 时使用其余字段
type DB struct {
	Driver  string `yaml:"driver"`
	Path    string `yaml:"path"`
	Host    string `yaml:"host"`
	Port    string `yaml:"port"`
	User    string `yaml:"user"`
	Pass    string `yaml:"pass"`
	DBName  string `yaml:"dbName"`
	Timeout string `yaml:"timeout"`
}

// Discovery 自动发现配置
type Discovery struct {
	// 单个目标的探测超时，秒
	TimeoutSeconds int `yaml:"timeoutSeconds"`
	// 批量发现的并发上限
	Concurrency int `yaml:"concurrency"`
	// 远程发现默认SSH端口
	SSHPort int `yaml:"sshPort"`
	// 定时重新发现使用的SSH账号，留空则定时任务跳过远程主机
	SSHUser string `yaml:"sshUser"`
	SSHPass string `yaml:"sshPass"`
	// 定时重新发现已纳管主机的 Cron 表达式，留空则关闭
	RediscoverCron string `yaml:"rediscoverCron"`
}

// InitConfig 加载配置文件，缺省值保证零配置可启动
func InitConfig() App {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.path", "data/cmdb.db")
	v.SetDefault("db.timeout", "10s")
	v.SetDefault("discovery.timeoutSeconds", 10)
	v.SetDefault("discovery.concurrency", 5)
	v.SetDefault("discovery.sshPort", 22)

	if err := v.ReadInConfig(); err != nil {
		// 配置文件缺失时使用默认值，兼容容器环境
		logc.Infof(context.Background(), "未读取到配置文件, 使用默认配置, %s", err.Error())
	}

	// 兼容环境变量指定监听端口
	v.AutomaticEnv()
	if port := v.GetString("PORT"); port != "" {
		v.Set("server.port", port)
	}

	var app App
	if err := v.Unmarshal(&app); err != nil {
		logc.Errorf(context.Background(), "解析配置失败: %s", err.Error())
	}
	return app
}
