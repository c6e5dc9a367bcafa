package jetstream_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-orderbook-cache/internal/domain"
	"github.com/feral-file/ff-orderbook-cache/internal/logger"
	"github.com/feral-file/ff-orderbook-cache/internal/messaging"
	mockspkg "github.com/feral-file/ff-orderbook-cache/internal/mocks"
	natsjs "github.com/feral-file/ff-orderbook-cache/internal/providers/jetstream"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

const testOrderID = "0x00000000000000000000000000000000000000000000000000000000000000aa"

type testPublisherMocks struct {
	ctrl      *gomock.Controller
	natsJS    *mockspkg.MockNatsJetStream
	natsConn  *mockspkg.MockNatsConn
	jetStream *mockspkg.MockJetStream
	json      *mockspkg.MockJSON
}

func setupTestPublisher(t *testing.T) *testPublisherMocks {
	ctrl := gomock.NewController(t)
	return &testPublisherMocks{
		ctrl:      ctrl,
		natsJS:    mockspkg.NewMockNatsJetStream(ctrl),
		natsConn:  mockspkg.NewMockNatsConn(ctrl),
		jetStream: mockspkg.NewMockJetStream(ctrl),
		json:      mockspkg.NewMockJSON(ctrl),
	}
}

func testPublisherConfig() natsjs.Config {
	return natsjs.Config{
		URL:            "nats://localhost:4222",
		StreamName:     "ORDER_UPDATES",
		MaxReconnects:  10,
		ReconnectWait:  2 * time.Second,
		ConnectionName: "test-publisher",
	}
}

func newConnectedPublisher(t *testing.T, mocks *testPublisherMocks) messaging.Publisher {
	cfg := testPublisherConfig()
	mocks.natsJS.EXPECT().
		Connect(cfg.URL, gomock.Any()).
		Return(mocks.natsConn, mocks.jetStream, nil)
	mocks.jetStream.EXPECT().
		CreateOrUpdateStream(gomock.Any(), messaging.OrderUpdatesStreamConfig(cfg.StreamName)).
		Return(nil)

	p, err := natsjs.NewPublisher(context.Background(), cfg, mocks.natsJS, mocks.json)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p
}

func TestPublisher_NewPublisher_ConnectError(t *testing.T) {
	mocks := setupTestPublisher(t)
	defer mocks.ctrl.Finish()

	mocks.natsJS.EXPECT().
		Connect(gomock.Any(), gomock.Any()).
		Return(nil, nil, assert.AnError)

	p, err := natsjs.NewPublisher(context.Background(), testPublisherConfig(), mocks.natsJS, mocks.json)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Nil(t, p)
}

func TestPublisher_NewPublisher_StreamError(t *testing.T) {
	mocks := setupTestPublisher(t)
	defer mocks.ctrl.Finish()

	mocks.natsJS.EXPECT().
		Connect(gomock.Any(), gomock.Any()).
		Return(mocks.natsConn, mocks.jetStream, nil)
	mocks.jetStream.EXPECT().
		CreateOrUpdateStream(gomock.Any(), gomock.Any()).
		Return(assert.AnError)
	mocks.natsConn.EXPECT().Close()

	p, err := natsjs.NewPublisher(context.Background(), testPublisherConfig(), mocks.natsJS, mocks.json)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Nil(t, p)
}

func TestPublisher_PublishOrderUpdates(t *testing.T) {
	mocks := setupTestPublisher(t)
	defer mocks.ctrl.Finish()

	p := newConnectedPublisher(t, mocks)

	info := domain.OrderInfo{
		Context: "sale-0xabc-1",
		ID:      testOrderID,
		Trigger: &domain.Trigger{Kind: domain.TriggerKindSale, TxHash: "0xabc", LogIndex: 1},
	}
	data := []byte(`{"context":"sale-0xabc-1"}`)

	mocks.json.EXPECT().Marshal(info).Return(data, nil)
	mocks.jetStream.EXPECT().
		Publish(gomock.Any(), "orders.updates.sale", data, gomock.Any()).
		Return(&jetstream.PubAck{Stream: "ORDER_UPDATES", Sequence: 1}, nil)

	err := p.PublishOrderUpdates(context.Background(), []domain.OrderInfo{
		info,
		{Context: "sale-0xabc-1", ID: domain.ZERO_ORDER_ID},
		{Context: "", ID: testOrderID},
	})
	assert.NoError(t, err)
}

func TestPublisher_PublishOrderUpdates_ContinuesAfterErrors(t *testing.T) {
	mocks := setupTestPublisher(t)
	defer mocks.ctrl.Finish()

	p := newConnectedPublisher(t, mocks)

	first := domain.OrderInfo{Context: "a", ID: testOrderID}
	second := domain.OrderInfo{Context: "b", ID: testOrderID}
	third := domain.OrderInfo{Context: "c", ID: testOrderID}

	marshalErr := errors.New("unsupported value")
	publishErr := errors.New("nats: timeout")

	mocks.json.EXPECT().Marshal(first).Return(nil, marshalErr)
	mocks.json.EXPECT().Marshal(second).Return([]byte("second"), nil)
	mocks.json.EXPECT().Marshal(third).Return([]byte("third"), nil)
	mocks.jetStream.EXPECT().
		Publish(gomock.Any(), "orders.updates.unknown", []byte("second"), gomock.Any()).
		Return(nil, publishErr)
	mocks.jetStream.EXPECT().
		Publish(gomock.Any(), "orders.updates.unknown", []byte("third"), gomock.Any()).
		Return(&jetstream.PubAck{Stream: "ORDER_UPDATES", Sequence: 2}, nil)

	err := p.PublishOrderUpdates(context.Background(), []domain.OrderInfo{first, second, third})
	require.Error(t, err)
	assert.ErrorIs(t, err, marshalErr)
	assert.ErrorIs(t, err, publishErr)
}

func TestPublisher_Close(t *testing.T) {
	mocks := setupTestPublisher(t)
	defer mocks.ctrl.Finish()

	p := newConnectedPublisher(t, mocks)
	mocks.natsConn.EXPECT().Close()

	p.Close()
}

func TestConnectOptions(t *testing.T) {
	opts := natsjs.ConnectOptions("test", 5, time.Second)
	assert.Len(t, opts, 6)
}
