package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/pulsefeed/pulse-server/cmd/api"
	"github.com/pulsefeed/pulse-server/cmd/models"
	"github.com/pulsefeed/pulse-server/cmd/utils"
	"github.com/pulsefeed/pulse-server/db"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	godotenv.Load()
	utils.InitLogger(os.Getenv("LOG_LEVEL"))
	defer utils.Logger.Sync()

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "migrate":
			runMigrations()
			return
		case "seed":
			runSeed()
			return
		default:
			utils.Logger.Fatal("unknown command", zap.String("command", os.Args[1]))
		}
	}

	startServer()
}

func startServer() {
	DB, err := db.NewPSQLStorage()
	if err != nil {
		utils.Logger.Fatal("database initialization error", zap.Error(err))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	server := api.NewApiServer(":"+port, DB)
	if err := server.Run(); err != nil {
		utils.Logger.Fatal("server error", zap.Error(err))
	}
}

func runMigrations() {
	DB, err := db.NewPSQLStorage()
	if err != nil {
		utils.Logger.Fatal("database initialization error", zap.Error(err))
	}
	defer func() {
		sqlDB, _ := DB.DB()
		sqlDB.Close()
	}()

	if err := performMigrations(DB); err != nil {
		utils.Logger.Fatal("migration error", zap.Error(err))
	}
	utils.Logger.Info("migrations completed")
}

func performMigrations(DB *gorm.DB) error {
	migrations := []struct {
		model interface{}
		name  string
	}{
		{&models.User{}, "User"},
		{&models.Post{}, "Post"},
		{&models.Comment{}, "Comment"},
		{&models.Like{}, "Like"},
		{&models.Share{}, "Share"},
		{&models.Follow{}, "Follow"},
	}

	for _, m := range migrations {
		utils.Logger.Info("migrating table", zap.String("model", m.name))
		if err := DB.AutoMigrate(m.model); err != nil {
			return fmt.Errorf("error migrating %s table: %w", m.name, err)
		}
	}

	// Expression index for full-text search over the derived search text.
	if DB.Dialector.Name() == "postgres" {
		if err := DB.Exec(
			"CREATE INDEX IF NOT EXISTS idx_posts_search ON posts USING gin (to_tsvector('simple', search_index))",
		).Error; err != nil {
			return fmt.Errorf("error creating search index: %w", err)
		}
	}

	return nil
}

// runSeed loads a small demo graph: a few users, posts, follows and
// engagement rows. Useful against a fresh local database.
func runSeed() {
	DB, err := db.NewPSQLStorage()
	if err != nil {
		utils.Logger.Fatal("database initialization error", zap.Error(err))
	}
	defer func() {
		sqlDB, _ := DB.DB()
		sqlDB.Close()
	}()

	usernames := []string{"alice", "bob", "carol"}
	users := make([]*models.User, 0, len(usernames))
	for _, name := range usernames {
		user := &models.User{Username: name, Email: name + "@example.com"}
		if err := DB.Where(models.User{Username: name}).FirstOrCreate(user).Error; err != nil {
			utils.Logger.Fatal("seeding user", zap.String("username", name), zap.Error(err))
		}
		users = append(users, user)
	}

	for i, user := range users {
		content := fmt.Sprintf("hello from %s", user.Username)
		post := &models.Post{
			AuthorID:    user.ID,
			Content:     content,
			SearchIndex: models.SearchText(content),
			Visibility:  models.VisibilityPublic,
		}
		if err := DB.Create(post).Error; err != nil {
			utils.Logger.Fatal("seeding post", zap.Error(err))
		}

		follower := users[(i+1)%len(users)]
		follow := &models.Follow{FollowerID: follower.ID, FollowedID: user.ID}
		if err := DB.Where(models.Follow{FollowerID: follower.ID, FollowedID: user.ID}).
			FirstOrCreate(follow).Error; err != nil {
			utils.Logger.Fatal("seeding follow", zap.Error(err))
		}

		like := &models.Like{UserID: follower.ID, PostID: post.ID, Reaction: "like"}
		if err := DB.Create(like).Error; err != nil {
			utils.Logger.Fatal("seeding like", zap.Error(err))
		}
	}

	utils.Logger.Info("seed data loaded", zap.Int("users", len(users)))
}
