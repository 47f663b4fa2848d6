package database

import (
	"fmt"
	"log"

	"treasure_hunt_backend/internal/config"
	"treasure_hunt_backend/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
		cfg.Host,
		cfg.User,
		cfg.Password,
		cfg.DBName,
		cfg.Port,
		cfg.SSLMode,
		cfg.TimeZone,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Hunt{},
		&model.Clue{},
		&model.GameSession{},
		&model.ClueAttempt{},
		&model.HintUsage{},
	)

	if err != nil {
		return nil, err
	}

	// 同一 (user, hunt) 至多一个 active 会话，部分唯一索引兜底
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_game_sessions_one_active
		ON game_sessions (user_id, hunt_id) WHERE status = 'active'`).Error; err != nil {
		return nil, err
	}

	// 排行榜物化视图：按完成会话排名，得分降序、耗时升序
	if err := db.Exec(`CREATE MATERIALIZED VIEW IF NOT EXISTS leaderboard AS
		SELECT
			gs.id AS session_id,
			gs.hunt_id,
			gs.user_id,
			u.username,
			gs.total_score,
			gs.hints_used,
			EXTRACT(EPOCH FROM (gs.end_time - gs.start_time))::INTEGER AS total_time,
			gs.end_time AS completion_date,
			ROW_NUMBER() OVER (
				PARTITION BY gs.hunt_id
				ORDER BY gs.total_score DESC, EXTRACT(EPOCH FROM (gs.end_time - gs.start_time)) ASC
			) AS hunt_rank
		FROM game_sessions gs
		JOIN users u ON u.id = gs.user_id
		WHERE gs.status = 'completed' AND gs.end_time IS NOT NULL`).Error; err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}
