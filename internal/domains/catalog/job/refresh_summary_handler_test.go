package job

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"library-catalog/internal/domains/catalog/model"
	"library-catalog/internal/shared"
)

type stubService struct {
	refreshed int
	err       error
}

func (s *stubService) Summary(ctx context.Context) (*model.Summary, error) { return s.Refresh(ctx) }

func (s *stubService) Refresh(context.Context) (*model.Summary, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.refreshed++
	return &model.Summary{Books: 1}, nil
}

func (s *stubService) ExportBooks(context.Context) (*excelize.File, error) { return excelize.NewFile(), nil }

func TestRefreshSummaryHandler_ProcessTask(t *testing.T) {
	tests := []struct {
		name      string
		payload   []byte
		err       error
		wantErr   bool
		skipRetry bool
		refreshed int
	}{
		{name: "scheduled task without payload", payload: nil, refreshed: 1},
		{name: "change notification", payload: []byte(`{"reason":"book created"}`), refreshed: 1},
		{name: "malformed payload", payload: []byte(`{`), wantErr: true, skipRetry: true},
		{name: "store failure is retried", err: errors.New("connection refused"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{err: tt.err}
			h := NewRefreshSummaryHandler(svc)

			err := h.ProcessTask(context.Background(), asynq.NewTask(shared.TypeRefreshCatalogSummary, tt.payload))

			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, tt.refreshed, svc.refreshed)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.skipRetry, errors.Is(err, asynq.SkipRetry))
		})
	}
}
