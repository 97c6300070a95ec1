package core

import (
	"context"
	"errors"
	"testing"

	"github.com/failsight/failsight/internal/contract"
	"github.com/failsight/failsight/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	ctx := context.Background()

	directory := &contract.MockStoreDirectory{}
	directory.On("LoadStoreMapping", ctx).Return(map[string]string{"12": "Quad Cafe"}, nil)

	source := &contract.SliceRowSource{
		SourceName: "export-1",
		Rows: []schema.Row{
			{"Date": "2025-06-18T21:20:48.1Z", "Service": "order-service", "Message": `Order created {\"orderId\": \"ORD-1\", \"pickupLocation\": 12, \"value\": 30}`},
			{"Date": "2025-06-18T21:20:48.9Z", "Service": "order-service", "Message": "503 Service Unavailable"},
		},
	}

	data, err := Run(ctx, testConfig(), directory, []contract.RowSource{source})
	require.NoError(t, err)

	assert.Equal(t, 2, data.TotalProcessedRows)
	assert.Equal(t, 1, data.Total503Errors)
	assert.Equal(t, 1, data.OrderErrorCounts["ORD-1"])
	assert.Equal(t, "Quad Cafe", data.StoreName("12"))
	directory.AssertExpectations(t)
}

func TestRunDirectoryFailureIsNonFatal(t *testing.T) {
	ctx := context.Background()

	directory := &contract.MockStoreDirectory{}
	directory.On("LoadStoreMapping", ctx).Return(nil, errors.New("no such file"))

	source := &contract.SliceRowSource{
		Rows: []schema.Row{
			{"Date": "2025-06-18T21:20:48Z", "Service": "svc", "Message": "healthy"},
		},
	}

	data, err := Run(ctx, testConfig(), directory, []contract.RowSource{source})
	require.NoError(t, err)
	assert.Equal(t, 1, data.TotalProcessedRows)
	assert.Empty(t, data.StoreIDToNameMap)
}

func TestRunNilDirectory(t *testing.T) {
	data, err := Run(context.Background(), testConfig(), nil, []contract.RowSource{
		&contract.SliceRowSource{},
	})
	require.NoError(t, err)
	assert.Zero(t, data.TotalProcessedRows)
}

func TestRunSourceFailureAborts(t *testing.T) {
	source := &contract.SliceRowSource{
		SourceName: "broken-export",
		Rows: []schema.Row{
			{"Date": "2025-06-18T21:20:48Z", "Service": "svc", "Message": "row before the failure"},
		},
		Err: errors.New("truncated file"),
	}

	data, err := Run(context.Background(), testConfig(), nil, []contract.RowSource{source})
	require.Error(t, err)
	assert.Nil(t, data)
	assert.Contains(t, err.Error(), "broken-export")
	assert.Contains(t, err.Error(), "truncated file")
}

func TestRunDrainsSourcesInOrder(t *testing.T) {
	first := &contract.SliceRowSource{Rows: []schema.Row{
		{"Date": "2025-06-18T21:20:48Z", "Service": "svc", "Message": `{\"orderId\": \"ORD-A\", \"memberId\": 1, \"firstName\": \"First\"}`},
	}}
	second := &contract.SliceRowSource{Rows: []schema.Row{
		{"Date": "2025-06-18T21:20:49Z", "Service": "svc", "Message": `{\"orderId\": \"ORD-A\", \"memberId\": 1, \"firstName\": \"Second\"}`},
	}}

	data, err := Run(context.Background(), testConfig(), nil, []contract.RowSource{first, second})
	require.NoError(t, err)

	// First-write-wins identity proves the first source was drained first.
	assert.Equal(t, "First", data.UserProfiles["1"].Name)
}
