package worker

import (
	"context"
	"sync"

	"github.com/denmor86/dessert-shop/internal/logger"
	"github.com/denmor86/dessert-shop/internal/services"
)

// DispatchWorker - воркер доставки уведомлений: вычитывает очередь и
// выполняет отправку вне обработчиков запросов
type DispatchWorker struct {
	Notifier  *services.Notifier
	WaitGroup sync.WaitGroup
	QuitChan  chan struct{}
}

// NewDispatchWorker - конструктор воркера доставки уведомлений
func NewDispatchWorker(notifier *services.Notifier) *DispatchWorker {
	return &DispatchWorker{
		Notifier: notifier,
		QuitChan: make(chan struct{}),
	}
}

// Start - запускает воркер в фоне
func (w *DispatchWorker) Start(ctx context.Context) {
	w.WaitGroup.Add(1)
	go w.Run(ctx)
}

// Stop - корректно останавливает воркер
func (w *DispatchWorker) Stop() {
	close(w.QuitChan)
	w.WaitGroup.Wait()
}

// Run - основная рабочая логика
func (w *DispatchWorker) Run(ctx context.Context) {
	defer w.WaitGroup.Done()

	for {
		select {
		case <-w.QuitChan:
			logger.Info("DispatchWorker signal stop")
			return
		case notification := <-w.Notifier.Queue():
			w.Notifier.Process(ctx, notification)
		}
	}
}
