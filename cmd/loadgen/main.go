package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"

	orderreaderv1 "tickermatch/internal/domain/order-reader/v1"
)

var tickers = []string{"AAPL", "MSFT", "AMZN", "GOOGL", "META", "TSLA", "NVDA", "AMD", "INTC", "IBM"}

// generateOrder creates one random order submission.
func generateOrder(minPrice, maxPrice float64) orderreaderv1.SubmitRequest {
	side := "buy"
	if rand.Float64() < 0.5 {
		side = "sell"
	}

	// Quantity in units of 10, price snapped to half-point increments.
	quantity := float64(rand.Intn(100)+1) * 10
	price := math.Round((minPrice+rand.Float64()*(maxPrice-minPrice))*2) / 2

	return orderreaderv1.SubmitRequest{
		Side:     side,
		Ticker:   tickers[rand.Intn(len(tickers))],
		Quantity: quantity,
		Price:    price,
	}
}

func main() {
	var (
		brokers  = flag.String("brokers", "localhost:9092", "Kafka broker addresses (comma-separated)")
		topic    = flag.String("topic", "orders", "Kafka topic name")
		delay    = flag.Duration("delay", 100*time.Millisecond, "Delay between sending orders")
		count    = flag.Int("count", 1000, "Number of orders to generate, 0 for unlimited")
		minPrice = flag.Float64("min-price", 10.0, "Lower bound of the random price range")
		maxPrice = flag.Float64("max-price", 500.0, "Upper bound of the random price range")
	)
	flag.Parse()

	// Create Kafka writer
	writer := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(*brokers, ",")...),
		Topic:        *topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}
	defer writer.Close()

	ctx := context.Background()

	log.Printf("Sending orders to Kafka broker: %s, topic: %s", *brokers, *topic)

	buyOrders := 0
	sellOrders := 0

	for i := 0; *count == 0 || i < *count; i++ {
		order := generateOrder(*minPrice, *maxPrice)

		orderJSON, err := json.Marshal(order)
		if err != nil {
			log.Printf("Failed to marshal order %d: %v", i+1, err)
			continue
		}

		msg := kafka.Message{
			Key:   []byte(order.Ticker),
			Value: orderJSON,
			Time:  time.Now(),
		}

		if err := writer.WriteMessages(ctx, msg); err != nil {
			log.Printf("Failed to send order %d: %v", i+1, err)
			continue
		}

		if order.Side == "buy" {
			buyOrders++
		} else {
			sellOrders++
		}

		// Log progress every 100 orders
		if (i+1)%100 == 0 {
			log.Printf("Sent order %d: %s %s | Qty: %.0f @ $%.2f",
				i+1, strings.ToUpper(order.Side), order.Ticker, order.Quantity, order.Price)
		}

		time.Sleep(*delay)
	}

	log.Printf("--- Summary ---")
	log.Printf("Total Orders: %d", buyOrders+sellOrders)
	log.Printf("Buy Orders: %d", buyOrders)
	log.Printf("Sell Orders: %d", sellOrders)
}
