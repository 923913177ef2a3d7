package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/iliyamo/cinema-afisha/internal/model"
	"github.com/iliyamo/cinema-afisha/internal/queue"
	"github.com/iliyamo/cinema-afisha/internal/repository"
)

// Ticket is one requested seat.  ID is supplied by the client and not used;
// the returned line carries the session id instead.
type Ticket struct {
	ID      string  `json:"id"`
	Film    string  `json:"film" validate:"required"`
	Session string  `json:"session" validate:"required"`
	Daytime string  `json:"daytime" validate:"required"`
	Row     int     `json:"row" validate:"min=1"`
	Seat    int     `json:"seat" validate:"min=1"`
	Price   float64 `json:"price" validate:"gte=0"`
}

type OrderRequest struct {
	Email   string   `json:"email"`
	Phone   string   `json:"phone"`
	Tickets []Ticket `json:"tickets" validate:"required,dive"`
}

type OrderResult struct {
	Total int               `json:"total"`
	Items []model.OrderLine `json:"items"`
}

type OrderService struct {
	films     repository.FilmRepository
	publisher queue.Publisher
	log       *zap.Logger
}

// NewOrderService wires the store and the event publisher.  A nil publisher
// disables events; a nil logger discards logs.
func NewOrderService(films repository.FilmRepository, publisher queue.Publisher, log *zap.Logger) *OrderService {
	if publisher == nil {
		publisher = queue.NopPublisher{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &OrderService{films: films, publisher: publisher, log: log}
}

// CreateOrder reserves every ticket in input order.  All referenced films are
// loaded with one FindByIDs call.  The first failing ticket aborts the order
// and its error is returned; seats reserved before it stay reserved.  A
// successful order is announced as order.created; a publish failure is only
// logged.
func (s *OrderService) CreateOrder(ctx context.Context, req OrderRequest) (OrderResult, error) {
	if len(req.Tickets) == 0 {
		return OrderResult{}, fmt.Errorf("%w: order must contain at least one ticket", ErrValidation)
	}

	ids := distinctFilmIDs(req.Tickets)
	found, err := s.films.FindByIDs(ctx, ids)
	if err != nil {
		return OrderResult{}, err
	}
	byID := make(map[string]*model.Film, len(found))
	for i := range found {
		byID[found[i].ID] = &found[i]
	}

	lines := make([]model.OrderLine, 0, len(req.Tickets))
	for _, t := range req.Tickets {
		film, ok := byID[t.Film]
		if !ok {
			return OrderResult{}, fmt.Errorf("%w: film %s", ErrNotFound, t.Film)
		}
		seatKey := model.SeatKey(t.Row, t.Seat)
		updated, err := Reserve(ctx, s.films, film, t.Session, seatKey, t.Daytime)
		if err != nil {
			s.log.Info("order rejected",
				zap.String("film", t.Film),
				zap.String("session", t.Session),
				zap.String("seat", seatKey),
				zap.Int("reserved_before", len(lines)),
				zap.Error(err),
			)
			return OrderResult{}, err
		}
		byID[t.Film] = updated
		lines = append(lines, model.OrderLine{
			ID:      t.Session,
			Film:    t.Film,
			Session: t.Session,
			Daytime: t.Daytime,
			Row:     t.Row,
			Seat:    t.Seat,
			Price:   t.Price,
		})
	}

	ev := queue.NewOrderCreated(req.Email, req.Phone, lines)
	if err := s.publisher.PublishOrderCreated(ctx, ev); err != nil {
		s.log.Warn("order.created publish failed", zap.String("order_id", ev.OrderID), zap.Error(err))
	}
	s.log.Info("order created", zap.String("order_id", ev.OrderID), zap.Int("tickets", len(lines)))

	return OrderResult{Total: len(lines), Items: lines}, nil
}

func distinctFilmIDs(tickets []Ticket) []string {
	seen := make(map[string]struct{}, len(tickets))
	ids := make([]string, 0, len(tickets))
	for _, t := range tickets {
		if _, ok := seen[t.Film]; ok {
			continue
		}
		seen[t.Film] = struct{}{}
		ids = append(ids, t.Film)
	}
	return ids
}
