package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/hayuasamad2-code/student-fee-system/config"
	"github.com/hayuasamad2-code/student-fee-system/database"
	"github.com/hayuasamad2-code/student-fee-system/routes"
	"github.com/hayuasamad2-code/student-fee-system/storage"
	"github.com/hayuasamad2-code/student-fee-system/store"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	// เชื่อมต่อฐานข้อมูล (ถ้า DB ยังไม่ขึ้น โปรแกรมจะ error ทันที — เหมาะสำหรับ early fail)
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	st := store.NewGormStore(db)

	// สลิปโอนเงิน: MinIO เมื่อมี endpoint, ไม่งั้นเก็บลงดิสก์
	var proofs storage.ProofStore
	if cfg.MinioEndpoint != "" {
		proofs, err = storage.NewMinioStore(context.Background(),
			cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		if err != nil {
			log.Fatalf("minio: %v", err)
		}
		log.Printf("using MinIO for proof uploads")
	} else {
		proofs, err = storage.NewLocalStore(cfg.UploadDir)
		if err != nil {
			log.Fatalf("upload dir: %v", err)
		}
		log.Printf("using local storage for proof uploads")
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORS())

	e.Static("/uploads", cfg.UploadDir)

	routes.Register(e, cfg, st, proofs)

	addr := ":" + cfg.AppPort
	log.Printf("server listening at %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
