package recurring_test

import (
	"context"
	"testing"
	"time"

	"github.com/caretiv/scheduling-service/internal/recurring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreview_MondaysInSeptember2025(t *testing.T) {
	svc := recurring.NewService(nil, nil, nil)

	result, err := svc.Preview(context.Background(), 1,
		time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC),
		nil, true)
	require.NoError(t, err)
	assert.Equal(t, 5, result.GeneratedCount)
	assert.Equal(t, 0, result.SkippedCount)
	assert.Empty(t, result.SkippedDates)
}

func TestPreview_FromAfterUntil_EmptyNoError(t *testing.T) {
	svc := recurring.NewService(nil, nil, nil)

	result, err := svc.Preview(context.Background(), 1,
		time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		nil, true)
	require.NoError(t, err)
	assert.Equal(t, 0, result.GeneratedCount)
	assert.Equal(t, 0, result.SkippedCount)
}
