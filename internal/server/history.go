package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"gold_tracker/internal/domain"
	"gold_tracker/internal/domain/entity"
	"gold_tracker/pkg/errcodes"
	"gold_tracker/pkg/httpx/reply"
	"gold_tracker/pkg/lox"
)

const (
	defaultHistoryLimit = 100
	maxHistoryLimit     = 1000
)

type historyRepository interface {
	ListByServer(ctx context.Context, server string, limit int) ([]entity.PricePoint, error)
}

type HistoryServer struct {
	history historyRepository
}

func NewHistoryServer(history historyRepository) *HistoryServer {
	return &HistoryServer{
		history: history,
	}
}

func (s *HistoryServer) getHistory(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		return newFailure(err)
	}

	points, err := s.history.ListByServer(ctx, chi.URLParam(r, "server"), limit)
	if err != nil {
		return fmt.Errorf("history.ListByServer: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, lox.Map(points, newRESTHistoryPoint))

	return nil
}

func parseLimit(raw string) (int, error) {
	if raw == "" {
		return defaultHistoryLimit, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 || limit > maxHistoryLimit {
		return 0, domain.NewError(errcodes.InvalidLimit, fmt.Sprintf("limit must be between 1 and %d", maxHistoryLimit))
	}

	return limit, nil
}
