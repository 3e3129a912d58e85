package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aryarajalves/zapflow/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunFunnelStoreContract runs a suite of tests to verify that a FunnelStore
// implementation adheres to the defined interface contract.
func RunFunnelStoreContract(t *testing.T, store FunnelStore) {
	ctx := context.Background()
	id := domain.FunnelID("contract-funnel-" + time.Now().Format("20060102150405"))

	t.Run("Save and Load", func(t *testing.T) {
		funnel := &domain.FunnelDefinition{
			ID:             id,
			Name:           "Black Friday",
			TriggerPhrases: "QUERO, PROMO",
			Graph: domain.FlowGraph{
				Nodes: []domain.Node{
					{ID: "n1", Kind: domain.NodeKindMessage, IsStart: true, Config: domain.MessageConfig{Text: "olá"}},
				},
			},
		}

		err := store.SaveFunnel(ctx, funnel)
		require.NoError(t, err, "SaveFunnel should not return error")

		loaded, err := store.LoadFunnel(ctx, id)
		require.NoError(t, err, "LoadFunnel should not return error")
		assert.Equal(t, funnel.Name, loaded.Name)
		assert.Equal(t, funnel.TriggerPhrases, loaded.TriggerPhrases)
		require.Len(t, loaded.Graph.Nodes, 1)
		assert.Equal(t, domain.NodeKindMessage, loaded.Graph.Nodes[0].Kind)
		assert.True(t, loaded.Graph.Nodes[0].IsStart)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.LoadFunnel(ctx, "non-existent-"+id)
		assert.ErrorIs(t, err, domain.ErrFunnelNotFound)
	})

	t.Run("Overwrite Is Last-Write-Wins", func(t *testing.T) {
		first := &domain.FunnelDefinition{ID: id, Name: "v1"}
		second := &domain.FunnelDefinition{ID: id, Name: "v2"}
		require.NoError(t, store.SaveFunnel(ctx, first))
		require.NoError(t, store.SaveFunnel(ctx, second))

		loaded, err := store.LoadFunnel(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "v2", loaded.Name)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.SaveFunnel(ctx, &domain.FunnelDefinition{ID: id, Name: "doomed"}))

		err := store.DeleteFunnel(ctx, id)
		require.NoError(t, err, "DeleteFunnel should not return error")

		_, err = store.LoadFunnel(ctx, id)
		assert.ErrorIs(t, err, domain.ErrFunnelNotFound, "Load after Delete should return ErrFunnelNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := id + "-1"
		id2 := id + "-2"
		_ = store.SaveFunnel(ctx, &domain.FunnelDefinition{ID: id1, Name: "a"})
		_ = store.SaveFunnel(ctx, &domain.FunnelDefinition{ID: id2, Name: "b"})

		defer func() {
			_ = store.DeleteFunnel(ctx, id1)
			_ = store.DeleteFunnel(ctx, id2)
		}()

		ids, err := store.ListFunnels(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}

// RunMappingStoreContract verifies a MappingStore implementation.
func RunMappingStoreContract(t *testing.T, store MappingStore) {
	ctx := context.Background()
	id := "contract-mapping-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		mapping := &domain.WebhookMapping{
			ID:            id,
			PhoneField:    "buyer.phone || customer.phone",
			CountrySpec:   "Brasil",
			DefaultFunnel: "7",
			Routing: &domain.ConditionalRouting{
				FieldPath: "purchase.status",
				Rules:     []domain.RoutingRule{{MatchValue: "approved", TargetFunnel: "42"}},
			},
		}

		require.NoError(t, store.SaveMapping(ctx, mapping))

		loaded, err := store.LoadMapping(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, mapping.PhoneField, loaded.PhoneField)
		require.NotNil(t, loaded.Routing)
		assert.Equal(t, mapping.Routing.Rules, loaded.Routing.Rules)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.LoadMapping(ctx, "non-existent-"+id)
		assert.ErrorIs(t, err, domain.ErrMappingNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.SaveMapping(ctx, &domain.WebhookMapping{ID: id}))
		require.NoError(t, store.DeleteMapping(ctx, id))

		_, err := store.LoadMapping(ctx, id)
		assert.ErrorIs(t, err, domain.ErrMappingNotFound)
	})
}
