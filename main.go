//go:build !dev

/*
 * @Description: 程序入口
 * @Author: 安知鱼
 * @Date: 2025-06-28 00:21:55
 * @LastEditTime: 2026-10-19 17:30:12
 * @LastEditors: 安知鱼
 */
package main

import (
	"flag"
	"log"

	"github.com/anzhiyu-c/anheyu-cms/cmd/server"
	"github.com/anzhiyu-c/anheyu-cms/pkg/config"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", config.DefaultFilePath, "配置文件路径")
	flag.Parse()

	if err := server.Serve(configPath, true); err != nil {
		log.Fatalf("应用运行失败: %v", err)
	}
}
