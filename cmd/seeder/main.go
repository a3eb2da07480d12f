// cmd/seeder/main.go

package main

import (
	"fmt"
	"log"
	"math/rand"

	"vidtube/internal/config"
	"vidtube/internal/model"

	"github.com/go-faker/faker/v4"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func main() {
	fmt.Println("🚀 开始填充测试数据...")

	_ = godotenv.Load()
	cfg := config.Load()

	// --- 1. 连接数据库 ---
	db, err := gorm.Open(mysql.Open(cfg.MySQLDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ 无法连接到数据库: %v", err)
	}
	fmt.Println("✅ 数据库连接成功!")

	// --- 2. 清理旧数据 ---
	// 注意：这将删除所有数据！
	fmt.Println("🧹 正在清理旧数据...")
	db.Migrator().DropTable(
		&model.PlaylistVideo{}, &model.Playlist{}, &model.Like{},
		&model.Comment{}, &model.Subscription{}, &model.Tweet{},
		&model.Video{}, &model.User{},
	)
	db.AutoMigrate(
		&model.User{}, &model.Video{}, &model.Comment{}, &model.Like{},
		&model.Subscription{}, &model.Tweet{}, &model.Playlist{}, &model.PlaylistVideo{},
	)
	fmt.Println("✅ 数据库迁移成功!")

	// --- 3. 创建用户 ---
	fmt.Println("👥 正在创建用户...")
	userCount := 100
	// 所有测试用户统一密码 "password"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("❌ 密码加密失败: %v", err)
	}
	for i := 0; i < userCount; i++ {
		user := model.User{
			Username:  faker.Username(),
			Email:     faker.Email(),
			FullName:  faker.Name(),
			Password:  string(hashedPassword),
			AvatarURL: "https://test.com/avatar.jpg",
		}
		db.Create(&user)
	}
	fmt.Printf("✅ 成功创建 %d 个用户!\n", userCount)

	// --- 4. 创建视频 ---
	fmt.Println("🎬 正在创建视频...")
	videoCount := 500
	for i := 0; i < videoCount; i++ {
		video := model.Video{
			OwnerID:      uint64(rand.Intn(userCount) + 1),
			Title:        faker.Sentence(),
			Description:  faker.Paragraph(),
			Duration:     float64(rand.Intn(3600)) + rand.Float64(),
			Views:        uint64(rand.Intn(100000)),
			IsPublished:  rand.Intn(10) > 1, // 大约八成是已发布
			VideoURL:     "https://test.com/video.mp4",
			ThumbnailURL: "https://test.com/thumbnail.jpg",
		}
		db.Create(&video)
	}
	fmt.Printf("✅ 成功创建 %d 个视频!\n", videoCount)

	// --- 5. 创建评论 ---
	fmt.Println("💬 正在创建评论...")
	commentCount := 1000
	for i := 0; i < commentCount; i++ {
		comment := model.Comment{
			VideoID: uint64(rand.Intn(videoCount) + 1),
			OwnerID: uint64(rand.Intn(userCount) + 1),
			Content: faker.Sentence(),
		}
		db.Create(&comment)
	}
	fmt.Printf("✅ 成功创建 %d 条评论!\n", commentCount)

	// --- 6. 创建随机点赞 ---
	// OnConflict避免随机碰撞出的重复点赞报错
	fmt.Println("👍 正在创建随机点赞...")
	likeCount := 1000
	for i := 0; i < likeCount; i++ {
		videoID := uint64(rand.Intn(videoCount) + 1)
		like := model.Like{
			OwnerID: uint64(rand.Intn(userCount) + 1),
			VideoID: &videoID,
		}
		db.Clauses(clause.OnConflict{DoNothing: true}).Create(&like)
	}
	fmt.Printf("✅ 成功创建(或尝试创建) %d 个随机点赞!\n", likeCount)

	// --- 7. 创建随机订阅 ---
	fmt.Println("🔔 正在创建随机订阅...")
	subCount := 500
	for i := 0; i < subCount; i++ {
		subscriberID := uint64(rand.Intn(userCount) + 1)
		channelID := uint64(rand.Intn(userCount) + 1)
		if subscriberID == channelID {
			continue
		}
		sub := model.Subscription{
			SubscriberID: subscriberID,
			ChannelID:    channelID,
		}
		db.Clauses(clause.OnConflict{DoNothing: true}).Create(&sub)
	}
	fmt.Printf("✅ 成功创建(或尝试创建) %d 个随机订阅!\n", subCount)

	// --- 8. 创建动态 ---
	fmt.Println("📝 正在创建动态...")
	tweetCount := 200
	for i := 0; i < tweetCount; i++ {
		tweet := model.Tweet{
			OwnerID: uint64(rand.Intn(userCount) + 1),
			Content: faker.Sentence(),
		}
		db.Create(&tweet)
	}
	fmt.Printf("✅ 成功创建 %d 条动态!\n", tweetCount)

	// --- 9. 创建收藏夹 ---
	fmt.Println("📁 正在创建收藏夹...")
	playlistCount := 100
	for i := 0; i < playlistCount; i++ {
		playlist := model.Playlist{
			OwnerID:     uint64(rand.Intn(userCount) + 1),
			Name:        faker.Word(),
			Description: faker.Sentence(),
		}
		db.Create(&playlist)

		// 每个收藏夹塞几个随机视频
		entries := rand.Intn(5) + 1
		for j := 0; j < entries; j++ {
			entry := model.PlaylistVideo{
				PlaylistID: playlist.ID,
				VideoID:    uint64(rand.Intn(videoCount) + 1),
				Position:   j + 1,
			}
			db.Clauses(clause.OnConflict{DoNothing: true}).Create(&entry)
		}
	}
	fmt.Printf("✅ 成功创建 %d 个收藏夹!\n", playlistCount)

	fmt.Println("🎉🎉🎉 所有测试数据填充完毕! 🎉🎉🎉")
}
