package realtime

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/amantiwari2357/devfolio-marketplace-sub000/internal/models"
)

func drain(c *Client) [][]byte {
	var msgs [][]byte
	for {
		select {
		case msg := <-c.send:
			msgs = append(msgs, msg)
		default:
			return msgs
		}
	}
}

func sampleProject() *models.OnboardingProject {
	return &models.OnboardingProject{
		ID:          primitive.NewObjectID(),
		ClientName:  "Asha Mehta",
		ProjectName: "Storefront revamp",
		Stages:      models.NewStageSet(1000),
	}
}

func TestJoinLeaveBookkeeping(t *testing.T) {
	hub := NewHub("*")
	client := newClient(hub, nil)
	hub.register(client)

	room := RoomName("abc123")
	hub.join(room, client)
	assert.Contains(t, hub.rooms, room)
	assert.Contains(t, client.rooms, room)

	hub.leave(room, client)
	assert.NotContains(t, hub.rooms, room, "empty rooms are removed")
	assert.NotContains(t, client.rooms, room)
}

func TestProjectUpdatedRoomAndGlobalFanout(t *testing.T) {
	hub := NewHub("*")
	project := sampleProject()

	member := newClient(hub, nil)
	bystander := newClient(hub, nil)
	hub.register(member)
	hub.register(bystander)
	hub.join(RoomName(project.ID.Hex()), member)

	hub.ProjectUpdated(context.Background(), project)

	// The room send plus the global fallback reach the member twice; the
	// bystander only sees the fallback.
	assert.Len(t, drain(member), 2)

	got := drain(bystander)
	require.Len(t, got, 1)

	var env Envelope
	require.NoError(t, json.Unmarshal(got[0], &env))
	assert.Equal(t, EventProjectUpdated, env.Event)

	var payload models.OnboardingProject
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.Equal(t, project.ID, payload.ID)
	assert.Len(t, payload.Stages, models.StageCount)
}

func TestProjectUpdatedSkipsSlowClients(t *testing.T) {
	hub := NewHub("*")
	slow := newClient(hub, nil)
	hub.register(slow)

	// Fill the buffer; further sends must drop instead of blocking.
	for i := 0; i < sendBuffer; i++ {
		slow.trySend([]byte("x"))
	}

	done := make(chan struct{})
	go func() {
		hub.ProjectUpdated(context.Background(), sampleProject())
		close(done)
	}()
	<-done

	assert.Len(t, drain(slow), sendBuffer)
}

func TestUnregisterRemovesRoomMemberships(t *testing.T) {
	hub := NewHub("*")
	project := sampleProject()
	room := RoomName(project.ID.Hex())

	client := newClient(hub, nil)
	hub.register(client)
	hub.join(room, client)

	hub.unregister(client)
	assert.NotContains(t, hub.clients, client)
	assert.NotContains(t, hub.rooms, room)

	_, open := <-client.send
	assert.False(t, open, "send channel is closed on unregister")

	// A second unregister is a no-op.
	hub.unregister(client)
}

func TestProjectUpdatedAfterUnregisterDeliversNothing(t *testing.T) {
	hub := NewHub("*")
	project := sampleProject()

	client := newClient(hub, nil)
	hub.register(client)
	hub.join(RoomName(project.ID.Hex()), client)
	hub.unregister(client)

	hub.ProjectUpdated(context.Background(), project)
	assert.Empty(t, hub.clients)
	assert.Empty(t, hub.rooms)
}
