package writerpool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avalon-project/avalon/internal/batch"
	"github.com/avalon-project/avalon/internal/component/medium"
)

type fakeMedium struct {
	fail   bool
	writes int32
	closed int32
}

func (f *fakeMedium) Write(ctx context.Context, b batch.Batch) error {
	atomic.AddInt32(&f.writes, 1)
	if f.fail {
		return &medium.WriteFailed{Cause: errors.New("boom"), Retriable: false}
	}
	return nil
}

func (f *fakeMedium) Close(ctx context.Context) error {
	atomic.AddInt32(&f.closed, 1)
	return nil
}

func TestPoolSubmitSuccess(t *testing.T) {
	m := &fakeMedium{}
	p := New(2, func() (medium.Type, error) { return m, nil }, nil)
	require.NoError(t, p.Start(context.Background()))

	res, err := p.Submit(context.Background(), batch.Batch{Payload: []byte("x"), Count: 3})
	require.NoError(t, err)
	require.NoError(t, res.Err)
	require.Equal(t, 3, res.Count)

	p.Close()
}

func TestPoolSubmitFailure(t *testing.T) {
	m := &fakeMedium{fail: true}
	p := New(1, func() (medium.Type, error) { return m, nil }, nil)
	require.NoError(t, p.Start(context.Background()))

	res, err := p.Submit(context.Background(), batch.Batch{Payload: []byte("x"), Count: 3})
	require.NoError(t, err)
	require.Error(t, res.Err)
	require.Equal(t, 0, res.Count)

	p.Close()
}

func TestPoolEmptyBatchIsNoop(t *testing.T) {
	m := &fakeMedium{}
	p := New(1, func() (medium.Type, error) { return m, nil }, nil)
	require.NoError(t, p.Start(context.Background()))

	res, err := p.Submit(context.Background(), batch.Batch{})
	require.NoError(t, err)
	require.NoError(t, res.Err)
	require.Equal(t, int32(0), atomic.LoadInt32(&m.writes))

	p.Close()
}
