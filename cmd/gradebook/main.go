package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/strhzy/classroom-course/internal/config"
	"github.com/strhzy/classroom-course/internal/db"
	"github.com/strhzy/classroom-course/internal/export"
)

// Выгрузка ведомости курса в xlsx из командной строки.
func main() {
	courseID := flag.Int64("course", 0, "id курса")
	out := flag.String("out", "", "путь к файлу (по умолчанию /tmp)")
	flag.Parse()
	if *courseID == 0 {
		log.Fatal("укажите -course")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Не удалось загрузить .env файл, используем переменные окружения")
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка конфигурации: %v", err)
	}

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Ошибка подключения к БД: %v", err)
	}
	defer database.Close()

	ctx := context.Background()
	wb, err := export.BuildCourseGradebook(ctx, database, *courseID)
	if err != nil {
		log.Fatalf("Ошибка выгрузки: %v", err)
	}

	path := *out
	if path == "" {
		course, err := db.GetCourseByID(ctx, database, *courseID)
		if err != nil || course == nil {
			log.Fatalf("курс %d не найден", *courseID)
		}
		path, err = wb.SaveTemp(course.Code)
		if err != nil {
			log.Fatalf("Ошибка сохранения: %v", err)
		}
	} else if err := wb.File.SaveAs(path); err != nil {
		log.Fatalf("Ошибка сохранения: %v", err)
	}
	fmt.Println(path)
}
