// Package storage contains snapshot store adapters. Each adapter persists
// exactly one serialized board snapshot under the fixed snapshot key and
// reports an absent snapshot without error; seeding happens one layer up.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
	"github.com/bytedance/sonic"

	"threadwell-api/domain"
)

// snapshotKey is the single key the board snapshot lives under, in every
// backend.
const snapshotKey = "forge_board_state"

const boardPartition = "board"

// TableStore persists the snapshot as one Azure Table Storage entity whose
// Data column holds the serialized document.
type TableStore struct {
	table *aztables.Client
}

// NewTableStore creates a TableStore from the given connection string.
func NewTableStore(connStr, tableName string) (*TableStore, error) {
	clientOptions := aztables.ClientOptions{
		ClientOptions: azcore.ClientOptions{
			Retry: policy.RetryOptions{
				MaxRetries:    3,
				TryTimeout:    time.Minute * 3,
				RetryDelay:    time.Second * 1,
				MaxRetryDelay: time.Second * 15,
				StatusCodes:   []int{408, 429, 500, 502, 503, 504},
			},
		},
	}
	svc, err := aztables.NewServiceClientFromConnectionString(connStr, &clientOptions)
	if err != nil {
		return nil, err
	}
	return &TableStore{table: svc.NewClient(tableName)}, nil
}

// EnsureTable creates the backing table when it does not exist yet.
func (s *TableStore) EnsureTable(ctx context.Context) error {
	if _, err := s.table.CreateTable(ctx, nil); err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) && respErr.ErrorCode == string(aztables.TableAlreadyExists) {
			return nil
		}
		return err
	}
	return nil
}

type snapshotEntity struct {
	aztables.Entity
	Data string `json:"Data"`
}

// Get returns the persisted snapshot, or ok=false when none has been
// written yet.
func (s *TableStore) Get(ctx context.Context) (*domain.BoardState, bool, error) {
	resp, err := s.table.GetEntity(ctx, boardPartition, snapshotKey, nil)
	if err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound {
			return nil, false, nil
		}
		return nil, false, err
	}
	var ent snapshotEntity
	if err := json.Unmarshal(resp.Value, &ent); err != nil {
		return nil, false, err
	}
	var state domain.BoardState
	if err := sonic.UnmarshalString(ent.Data, &state); err != nil {
		return nil, false, err
	}
	return &state, true, nil
}

// Set upserts the snapshot entity, replacing the prior snapshot in one
// write.
func (s *TableStore) Set(ctx context.Context, state *domain.BoardState) error {
	data, err := sonic.MarshalString(state)
	if err != nil {
		return err
	}
	ent := snapshotEntity{
		Entity: aztables.Entity{PartitionKey: boardPartition, RowKey: snapshotKey},
		Data:   data,
	}
	payload, err := json.Marshal(ent)
	if err != nil {
		return err
	}
	_, err = s.table.UpsertEntity(ctx, payload, nil)
	return err
}

// Close is a no-op; the table client holds no local resources.
func (s *TableStore) Close() error {
	return nil
}
