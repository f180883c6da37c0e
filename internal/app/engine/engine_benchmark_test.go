package engine

import (
	"testing"
	"time"

	orderbookv1 "tickermatch/internal/domain/orderbook/v1"
	"tickermatch/pkg/logger"
)

// Benchmark test cases structure
type benchmarkTestCase struct {
	name      string
	parallel  bool
	setupData func(*Engine, *testing.B)
	operation func(*Engine, int)
}

var benchmarkTickers = []string{"AAPL", "MSFT", "AMZN", "GOOGL", "META", "TSLA", "NVDA", "AMD"}

func setupBenchmarkEngine(b *testing.B) *Engine {
	log, err := logger.NewLogger(logger.WithLoggingLevel(logger.ErrorLevel))
	if err != nil {
		b.Fatal(err)
	}

	options := DefaultEngineOptions()
	options.SweepInterval = time.Hour // matching driven explicitly by the benchmark
	return NewEngineWithOptions(nil, nil, log, options)
}

func benchmarkSide(i int) orderbookv1.Side {
	if i%2 == 0 {
		return orderbookv1.SideBuy
	}
	return orderbookv1.SideSell
}

func BenchmarkEngine_Submit(b *testing.B) {
	testCases := []benchmarkTestCase{
		{
			name:      "single_threaded_single_ticker",
			setupData: func(e *Engine, b *testing.B) {},
			operation: func(e *Engine, i int) {
				_, _ = e.Submit(benchmarkSide(i), "AAPL", 10.0, 50_000.0+float64(i%100))
			},
		},
		{
			name:      "single_threaded_many_tickers",
			setupData: func(e *Engine, b *testing.B) {},
			operation: func(e *Engine, i int) {
				ticker := benchmarkTickers[i%len(benchmarkTickers)]
				_, _ = e.Submit(benchmarkSide(i), ticker, 10.0, 50_000.0+float64(i%100))
			},
		},
		{
			name:      "parallel_many_tickers",
			parallel:  true,
			setupData: func(e *Engine, b *testing.B) {},
			operation: func(e *Engine, i int) {
				ticker := benchmarkTickers[i%len(benchmarkTickers)]
				_, _ = e.Submit(benchmarkSide(i), ticker, 10.0, 50_000.0+float64(i%100))
			},
		},
	}

	for _, tc := range testCases {
		b.Run(tc.name, func(b *testing.B) {
			engine := setupBenchmarkEngine(b)
			tc.setupData(engine, b)

			b.ResetTimer()

			if tc.parallel {
				b.RunParallel(func(pb *testing.PB) {
					i := 0
					for pb.Next() {
						tc.operation(engine, i)
						i++
					}
				})
			} else {
				for i := 0; i < b.N; i++ {
					tc.operation(engine, i)
				}
			}
		})
	}
}

func BenchmarkEngine_MatchAll(b *testing.B) {
	testCases := []benchmarkTestCase{
		{
			name: "sweep_with_resting_crosses",
			setupData: func(e *Engine, b *testing.B) {
				for i := 0; i < 1_000; i++ {
					ticker := benchmarkTickers[i%len(benchmarkTickers)]
					_, _ = e.Submit(orderbookv1.SideBuy, ticker, 10.0, 100.0)
					_, _ = e.Submit(orderbookv1.SideSell, ticker, 10.0, 100.0)
				}
			},
			operation: func(e *Engine, i int) {
				e.matchAll()
			},
		},
		{
			name: "sweep_with_no_crosses",
			setupData: func(e *Engine, b *testing.B) {
				for i := 0; i < 1_000; i++ {
					ticker := benchmarkTickers[i%len(benchmarkTickers)]
					_, _ = e.Submit(orderbookv1.SideBuy, ticker, 10.0, 10.0)
					_, _ = e.Submit(orderbookv1.SideSell, ticker, 10.0, 1_000.0)
				}
			},
			operation: func(e *Engine, i int) {
				e.matchAll()
			},
		},
	}

	for _, tc := range testCases {
		b.Run(tc.name, func(b *testing.B) {
			engine := setupBenchmarkEngine(b)
			tc.setupData(engine, b)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				tc.operation(engine, i)
			}
		})
	}
}

func BenchmarkEngine_SubmitWhileSweeping(b *testing.B) {
	engine := setupBenchmarkEngine(b)

	stop := make(chan struct{})
	go func() {
		for {
			select {
			case <-stop:
				return
			default:
				engine.matchAll()
			}
		}
	}()
	defer close(stop)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			ticker := benchmarkTickers[i%len(benchmarkTickers)]
			_, _ = engine.Submit(benchmarkSide(i), ticker, 10.0, 100.0)
			i++
		}
	})
}

func BenchmarkDirectory_Resolve(b *testing.B) {
	engine := setupBenchmarkEngine(b)

	// Pre-assign so Resolve takes the lookup path.
	for _, ticker := range benchmarkTickers {
		_, _ = engine.Submit(orderbookv1.SideBuy, ticker, 1.0, 1.0)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ticker := benchmarkTickers[i%len(benchmarkTickers)]
		_, _ = engine.Submit(orderbookv1.SideBuy, ticker, 1.0, 1.0)
	}
}
