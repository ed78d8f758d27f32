package recurrence

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/barbersmart/BS-AvailabilityService/internal/domain"
	"github.com/barbersmart/BS-AvailabilityService/pkg/types"
)

// ProbeBatchSize количество одновременно выполняемых проверок доступности
const ProbeBatchSize = 5

// DefaultCheckTimeout таймаут одной проверки доступности.
// Зависшая проверка не должна останавливать всю серию.
const DefaultCheckTimeout = 10 * time.Second

// CheckResult результат проверки доступности одной даты
type CheckResult struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// CheckFunc внешняя проверка доступности даты и времени
type CheckFunc func(ctx context.Context, date time.Time, t types.TimeString) (CheckResult, error)

// ProgressFunc вызывается после завершения каждой партии с копией
// накопленных результатов, чтобы вызывающая сторона могла показывать
// промежуточный прогресс
type ProgressFunc func(partial map[string]CheckResult)

// Prober проверяет доступность серии дат партиями ограниченного размера
type Prober struct {
	batchSize    int
	checkTimeout time.Duration
}

// NewProber создает prober с дефолтными параметрами
func NewProber() *Prober {
	return &Prober{
		batchSize:    ProbeBatchSize,
		checkTimeout: DefaultCheckTimeout,
	}
}

// NewProberWith создает prober с явными параметрами (для тестов)
func NewProberWith(batchSize int, checkTimeout time.Duration) *Prober {
	if batchSize <= 0 {
		batchSize = ProbeBatchSize
	}
	if checkTimeout <= 0 {
		checkTimeout = DefaultCheckTimeout
	}
	return &Prober{batchSize: batchSize, checkTimeout: checkTimeout}
}

// ProbeAll проверяет доступность всех дат серии.
//
// Даты обрабатываются партиями: внутри партии проверки запускаются
// одновременно, следующая партия не начинается, пока не завершатся все
// проверки текущей. Упавшая или не уложившаяся в таймаут проверка дает
// {available:false, reason:"check failed"} и не прерывает остальные.
//
// onProgress (опционально) вызывается после каждой партии с копией
// накопленной карты результатов. Отмена ctx прекращает запуск новых партий;
// уже запущенные проверки довыполняются.
func (p *Prober) ProbeAll(
	ctx context.Context,
	dates []domain.GeneratedDate,
	t types.TimeString,
	check CheckFunc,
	onProgress ProgressFunc,
) map[string]CheckResult {
	results := make(map[string]CheckResult, len(dates))
	var mu sync.Mutex

	for start := 0; start < len(dates); start += p.batchSize {
		if ctx.Err() != nil {
			break
		}

		end := start + p.batchSize
		if end > len(dates) {
			end = len(dates)
		}

		var g errgroup.Group
		for _, gd := range dates[start:end] {
			gd := gd
			g.Go(func() error {
				result := p.runCheck(ctx, gd.Date, t, check)

				mu.Lock()
				results[gd.Key] = result
				mu.Unlock()
				return nil
			})
		}
		// Партия N+1 не стартует, пока не завершится партия N
		_ = g.Wait()

		if onProgress != nil {
			onProgress(snapshot(results, &mu))
		}
	}

	return results
}

// runCheck выполняет одну проверку с таймаутом, приводя любую ошибку
// к консервативному "недоступно"
func (p *Prober) runCheck(ctx context.Context, date time.Time, t types.TimeString, check CheckFunc) CheckResult {
	checkCtx, cancel := context.WithTimeout(ctx, p.checkTimeout)
	defer cancel()

	result, err := check(checkCtx, date, t)
	if err != nil {
		return CheckResult{Available: false, Reason: domain.ReasonCheckFailed}
	}
	return result
}

func snapshot(results map[string]CheckResult, mu *sync.Mutex) map[string]CheckResult {
	mu.Lock()
	defer mu.Unlock()

	copied := make(map[string]CheckResult, len(results))
	for k, v := range results {
		copied[k] = v
	}
	return copied
}
