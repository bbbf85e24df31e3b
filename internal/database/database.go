package database

import (
	"fmt"

	"github.com/aaryandewangan/japlearn-sub001/internal/config"
	logging "github.com/aaryandewangan/japlearn-sub001/internal/logging"
	"github.com/aaryandewangan/japlearn-sub001/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(log *zap.Logger) {
	var err error
	dbConf := config.Conf.Database
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		dbConf.Host, dbConf.User, dbConf.Password, dbConf.DBName, dbConf.Port)

	gormLogger := logging.NewGormZapLogger(log)

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})

	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	log.Info("Database connection established successfully.")
	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}
	log.Info("Database migrations completed successfully.")
}

// Migrate creates tables and indexes. GORM's AutoMigrate will create
// tables, columns, and the tag-declared indexes; the partition index with
// its DESC ordering is created separately because AutoMigrate cannot
// express it.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.UserProgress{},
		&models.LessonProgress{},
		&models.QuizAttempt{},
		&models.UserAchievement{},
		&models.CertificateClaim{},
	)
	if err != nil {
		return err
	}

	// Retention pruning, history reads, and best-per-difficulty scans all
	// walk a (user, category) partition newest-first.
	partitionIndex := `CREATE INDEX IF NOT EXISTS idx_attempts_partition ON quiz_attempts (user_id, category, created_at DESC);`
	return db.Exec(partitionIndex).Error
}
