package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/denmor86/dessert-shop/internal/client"
	"github.com/denmor86/dessert-shop/internal/config"
	"github.com/denmor86/dessert-shop/internal/logger"
	"github.com/denmor86/dessert-shop/internal/metrics"
	"github.com/denmor86/dessert-shop/internal/network/router"
	"github.com/denmor86/dessert-shop/internal/services"
	"github.com/denmor86/dessert-shop/internal/storage"
	"github.com/denmor86/dessert-shop/internal/worker"
	"github.com/prometheus/client_golang/prometheus"
)

func Run(config config.Config, storage storage.IStorage) {

	telegram := client.NewTelegramClient(config.Telegram.APIAddr, config.Telegram.Token, &http.Client{})
	email := client.NewSMTPSender(config.SMTP.Addr, config.SMTP.Username, config.SMTP.Password, config.SMTP.From)
	m := metrics.New(prometheus.DefaultRegisterer)

	identity := services.NewIdentity(config, storage)
	lifecycle := services.NewLifecycle(storage)
	subscribers := services.NewSubscribers(storage)
	dispatcher := services.NewDispatcher(subscribers, telegram, m, config.Notify)
	notifier := services.NewNotifier(dispatcher, email, m, config.Notify)
	orders := services.NewOrders(storage, lifecycle, notifier)
	payments := services.NewPayments(storage, lifecycle, notifier, m)

	router := router.NewRouter(config, identity, orders, payments, subscribers, dispatcher)

	server := &http.Server{
		Addr:    config.Server.ListenAddr,
		Handler: router.HandleRouter(),
	}

	// Создание и запуск воркеров
	bot := worker.NewBotWorker(subscribers, telegram, config.Telegram)
	dispatch := worker.NewDispatchWorker(notifier)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	dispatch.Start(ctx)
	if config.Telegram.Token != "" {
		bot.Start(ctx)
	} else {
		logger.Warn("Telegram token is not set, bot polling disabled")
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info(
			"Starting server config:", config,
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("error listen server", err.Error())
		}
	}()

	<-stop
	logger.Info("Shutdown server")
	if config.Telegram.Token != "" {
		bot.Stop()
	}
	dispatch.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("error shutdown server", err.Error())
	}
	logger.Info("Server stopped")
}
