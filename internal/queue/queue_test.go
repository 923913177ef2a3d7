package queue

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-afisha/internal/model"
)

func lines() []model.OrderLine {
	return []model.OrderLine{
		{ID: "s1", Film: "f1", Session: "s1", Daytime: "T", Row: 1, Seat: 5, Price: 350},
		{ID: "s1", Film: "f1", Session: "s1", Daytime: "T", Row: 1, Seat: 6, Price: 350},
	}
}

func TestNewOrderCreated(t *testing.T) {
	ev := NewOrderCreated("a@b.c", "+7", lines())

	_, err := uuid.Parse(ev.EventID)
	assert.NoError(t, err)
	_, err = uuid.Parse(ev.OrderID)
	assert.NoError(t, err)
	assert.NotEqual(t, ev.EventID, ev.OrderID)
	assert.Equal(t, 2, ev.Total)
	assert.InDelta(t, 700.0, ev.Amount, 1e-9)
	assert.NotEmpty(t, ev.OccurredAt)
}

func TestFormatOrderLine(t *testing.T) {
	ev := OrderCreatedEvent{
		OrderID: "o1", Email: "a@b.c", Phone: "+7", Tickets: lines(),
		Total: 2, Amount: 700, OccurredAt: "2024-06-28T07:00:00Z",
	}
	assert.Equal(t,
		`[2024-06-28T07:00:00Z] Order created | order_id=o1 | email="a@b.c" | phone="+7" | tickets=2 | amount=700.00 | seats=[f1/s1/1:5,f1/s1/1:6]`+"\n",
		FormatOrderLine(ev))
}

func TestHandleMessage_AppendsLines(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	body, err := json.Marshal(NewOrderCreated("a@b.c", "+7", lines()))
	require.NoError(t, err)

	require.NoError(t, HandleMessage(body, dir))
	require.NoError(t, HandleMessage(body, dir))

	data, err := os.ReadFile(filepath.Join(dir, OrderLogFile))
	require.NoError(t, err)
	assert.Equal(t, 2, countLines(string(data)))

	assert.Error(t, HandleMessage([]byte("{"), dir))
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	assert.NoError(t, p.PublishOrderCreated(context.Background(), OrderCreatedEvent{}))
	assert.NoError(t, p.Close())
}

func countLines(s string) int {
	n := 0
	for _, r := range s {
		if r == '\n' {
			n++
		}
	}
	return n
}
