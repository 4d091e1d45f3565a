package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	jsoniter "github.com/json-iterator/go"

	"gold_tracker/internal/domain/entity"
	"gold_tracker/internal/domain/service/calculator"
	"gold_tracker/internal/domain/service/offer"
	"gold_tracker/pkg/logx"
	"gold_tracker/pkg/lox"
	"gold_tracker/pkg/rest"
)

// go run ./cmd/normalize [candidates.json]
//
// Читает JSON-массив сырых предложений (из файла или stdin) и печатает
// нормализованный список в том же виде, что и /api/prices отдаёт в servers.
//
// Например:
//
// go run ./cmd/normalize internal/infrastructure/marketplace/testdata/candidates.json

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log := slog.New(logx.NewHandler(os.Stderr, os.Getenv("LOG_LEVEL"), false))

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		log.Error("normalize failed", logx.Error(err))
		os.Exit(1) //nolint:gocritic
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	input := stdin

	if len(args) > 0 && args[0] != "-" {
		fh, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("os.Open: %w", err)
		}
		defer fh.Close()

		input = fh
	}

	data, err := io.ReadAll(input)
	if err != nil {
		return fmt.Errorf("io.ReadAll: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("ctx: %w", err)
	}

	offers, err := offer.NormalizeJSON(data)
	if err != nil {
		return fmt.Errorf("offer.NormalizeJSON: %w", err)
	}

	servers := lox.Map(offers, func(o entity.Offer) rest.Offer {
		return rest.Offer{
			Server:       o.Server,
			Offers:       o.Offers,
			PriceUSD:     o.PriceUSD,
			ValuePer100k: calculator.ValuePer100k(o),
		}
	})

	encoder := json.NewEncoder(stdout)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(servers); err != nil {
		return fmt.Errorf("json.Encode: %w", err)
	}

	return nil
}
