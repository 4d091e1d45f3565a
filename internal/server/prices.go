package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"git.appkode.ru/pub/go/failure"

	"gold_tracker/internal/domain"
	"gold_tracker/internal/domain/entity"
	"gold_tracker/internal/domain/service/calculator"
	"gold_tracker/pkg/errcodes"
	"gold_tracker/pkg/httpx/reply"
	"gold_tracker/pkg/httpx/req"
	"gold_tracker/pkg/lox"
	"gold_tracker/pkg/rest"
)

const banner = "Lost Ark Gold Tracker backend is running. Use /api/prices\n"

type snapshotReader interface {
	Load() (entity.Snapshot, bool)
}

type refreshTrigger interface {
	Trigger(ctx context.Context) bool
}

type PriceServer struct {
	snapshots snapshotReader
	refresher refreshTrigger
}

func NewPriceServer(snapshots snapshotReader, refresher refreshTrigger) PriceServer {
	return PriceServer{
		snapshots: snapshots,
		refresher: refresher,
	}
}

func (s PriceServer) getRoot(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	if _, err := io.WriteString(w, banner); err != nil {
		return fmt.Errorf("io.WriteString: %w", err)
	}

	return nil
}

func (s PriceServer) getPrices(w http.ResponseWriter, r *http.Request) error {
	snapshot, ok := s.snapshots.Load()

	reply.JSON(r.Context(), w, http.StatusOK, newRESTPrices(snapshot, ok))

	return nil
}

func (s PriceServer) getDefaultPrice(w http.ResponseWriter, r *http.Request) error {
	var response rest.DefaultOffer

	snapshot, _ := s.snapshots.Load()
	if o, ok := calculator.SelectDefault(snapshot.Offers); ok {
		response.Server = new(rest.Offer)
		*response.Server = newRESTOffer(o)
	}

	reply.JSON(r.Context(), w, http.StatusOK, response)

	return nil
}

func (s PriceServer) getConvert(w http.ResponseWriter, r *http.Request) error {
	query := r.URL.Query()

	quantity, err := strconv.ParseInt(strings.TrimSpace(query.Get("quantity")), 10, 64)
	if err != nil {
		return failure.NewInvalidArgumentError(
			fmt.Errorf("strconv.ParseInt: %w", err).Error(),
			failure.WithCode(errcodes.InvalidQuantity),
			failure.WithDescription("quantity must be a non-negative integer"),
		)
	}

	o, err := s.resolveOffer(query.Get("server"))
	if err != nil {
		return newFailure(err)
	}

	conversion, err := calculator.Convert(o, quantity)
	if err != nil {
		return newFailure(fmt.Errorf("calculator.Convert: %w", err))
	}

	reply.JSON(r.Context(), w, http.StatusOK, newRESTConversion(conversion))

	return nil
}

func (s PriceServer) postConvert(w http.ResponseWriter, r *http.Request) error {
	var request rest.ConvertRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	o, err := s.resolveOffer(request.Server)
	if err != nil {
		return newFailure(err)
	}

	quantities := request.Quantities
	if len(quantities) == 0 {
		quantities = calculator.CommonQuantities
	}

	conversions, err := calculator.BatchConvert(o, quantities)
	if err != nil {
		return newFailure(fmt.Errorf("calculator.BatchConvert: %w", err))
	}

	reply.JSON(r.Context(), w, http.StatusOK, rest.ConvertResponse{
		Server:      newRESTOffer(o),
		Conversions: lox.Map(conversions, newRESTConversion),
	})

	return nil
}

func (s PriceServer) postRefresh(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	if !s.refresher.Trigger(context.WithoutCancel(ctx)) {
		reply.JSON(ctx, w, http.StatusOK, rest.Refresh{
			Triggered: false,
			Reason:    "refresh already in progress",
		})

		return nil
	}

	reply.JSON(ctx, w, http.StatusAccepted, rest.Refresh{Triggered: true})

	return nil
}

// resolveOffer ищет предложение сервера, а при пустом server берёт предложение по умолчанию.
func (s PriceServer) resolveOffer(server string) (entity.Offer, error) {
	snapshot, _ := s.snapshots.Load()

	server = strings.Join(strings.Fields(server), " ")
	if server == "" {
		o, ok := calculator.SelectDefault(snapshot.Offers)
		if !ok {
			return entity.Offer{}, domain.NewError(errcodes.UnknownServer, noDataMessage)
		}

		return o, nil
	}

	o, ok := snapshot.Find(server)
	if !ok {
		return entity.Offer{}, domain.NewError(errcodes.UnknownServer, fmt.Sprintf("unknown server: %s", server))
	}

	return o, nil
}
