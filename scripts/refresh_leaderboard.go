// 手动触发排行榜物化视图重算脚本
//
// 正常情况下视图在会话完成事务内自动刷新，此脚本用于
// 数据订正或批量导入历史会话后的手动重算。
//
// 用法: go run scripts/refresh_leaderboard.go

package main

import (
	"log"
	"os"
	"treasure_hunt_backend/internal/config"
	"treasure_hunt_backend/internal/repository"
	"treasure_hunt_backend/pkg/database"

	"gopkg.in/yaml.v3"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	repo := repository.NewLeaderboardRepository(db)
	if err := repo.Refresh(); err != nil {
		log.Fatalf("排行榜重算失败: %v", err)
	}

	log.Println("排行榜重算完成")
}
