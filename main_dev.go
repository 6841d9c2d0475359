//go:build dev

/*
 * @Description: 开发模式入口
 * @Author: 安知鱼
 * @Date: 2025-01-23
 */
package main

import (
	"flag"
	"log"
	"os"

	"github.com/anzhiyu-c/anheyu-cms/cmd/server"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "data/conf.dev.ini", "配置文件路径")
	flag.Parse()

	// 开发模式强制打开 gin 的调试输出
	os.Setenv("ANHEYU_SYSTEM_DEBUG", "true")
	log.Println("🔧 开发模式启动，模板修改后需要重新编译")

	if err := server.Serve(configPath, false); err != nil {
		log.Fatalf("应用运行失败: %v", err)
	}
}
