package main

import (
	"fmt"

	"github.com/denmor86/dessert-shop/internal/app"
	"github.com/denmor86/dessert-shop/internal/config"
	"github.com/denmor86/dessert-shop/internal/logger"
	"github.com/denmor86/dessert-shop/internal/storage"
)

func main() {
	// загрузка конфига
	config := config.NewConfig()
	// инициализация логгера
	if err := logger.Initialize(config.Server.LogLevel); err != nil {
		panic(fmt.Sprintf("can't initialize logger: %s ", err.Error()))
	}
	defer logger.Sync()
	// создание и миграция хранилища
	database, err := storage.NewDatabase(config.Server.DatabaseDSN)
	if err != nil {
		panic(fmt.Sprintf("can't create database: %s ", err.Error()))
	}
	defer database.Close()
	if err := database.Initialize(); err != nil {
		panic(fmt.Sprintf("can't initialize database: %s ", err.Error()))
	}
	// запуск сервиса
	app.Run(config, storage.NewStorage(database))
}
