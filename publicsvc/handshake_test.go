package publicsvc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"git.tatikoma.dev/corpix/notify/authzclient"
	"git.tatikoma.dev/corpix/notify/domain"
	"git.tatikoma.dev/corpix/notify/registryclient"
	"git.tatikoma.dev/corpix/notify/rpc/auth"
	"git.tatikoma.dev/corpix/notify/wire"
)

func TestCreateEventStreamingGroupRejectsAllResource(t *testing.T) {
	s := New(registryclient.NewMemory(), authzclient.NewMemory(), &fakeEventHandler{})
	ctx := auth.ContextWithAPIToken(context.Background(), "tok")

	_, err := s.CreateEventStreamingGroup(ctx, &wire.CreateEventStreamingGroupRequest{
		Resource:   domain.ResourceKindAll,
		ResourceID: "x",
	})
	require.Error(t, err)
	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.InvalidArgument, st.Code())
}

func TestCreateEventStreamingGroupRequiresToken(t *testing.T) {
	s := New(registryclient.NewMemory(), authzclient.NewMemory(), &fakeEventHandler{})

	_, err := s.CreateEventStreamingGroup(context.Background(), &wire.CreateEventStreamingGroupRequest{
		Resource:   domain.ResourceKindProject,
		ResourceID: "p1",
	})
	require.Error(t, err)
	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.Unauthenticated, st.Code())
}

func TestCreateEventStreamingGroupDeniedByAuthorization(t *testing.T) {
	authz := authzclient.NewMemory()
	authz.Deny("p1")
	s := New(registryclient.NewMemory(), authz, &fakeEventHandler{})
	ctx := auth.ContextWithAPIToken(context.Background(), "tok")

	_, err := s.CreateEventStreamingGroup(ctx, &wire.CreateEventStreamingGroupRequest{
		Resource:   domain.ResourceKindProject,
		ResourceID: "p1",
	})
	require.Error(t, err)
	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.PermissionDenied, st.Code())
}

func TestCreateEventStreamingGroupMissingHierarchyIsInternal(t *testing.T) {
	// Collection kind requires a resolved hierarchy; the Memory registry
	// returns none unless seeded.
	s := New(registryclient.NewMemory(), authzclient.NewMemory(), &fakeEventHandler{})
	ctx := auth.ContextWithAPIToken(context.Background(), "tok")

	_, err := s.CreateEventStreamingGroup(ctx, &wire.CreateEventStreamingGroupRequest{
		Resource:   domain.ResourceKindCollection,
		ResourceID: "c1",
	})
	require.Error(t, err)
	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.Internal, st.Code())
}

func TestCreateEventStreamingGroupSucceedsForProject(t *testing.T) {
	s := New(registryclient.NewMemory(), authzclient.NewMemory(), &fakeEventHandler{})
	ctx := auth.ContextWithAPIToken(context.Background(), "tok")

	resp, err := s.CreateEventStreamingGroup(ctx, &wire.CreateEventStreamingGroupRequest{
		Resource:   domain.ResourceKindProject,
		ResourceID: "p1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.StreamGroupID)
}

func TestCreateEventStreamingGroupSucceedsForCollectionWithSeededHierarchy(t *testing.T) {
	registry := registryclient.NewMemory()
	registry.SeedHierarchy("c1", []domain.Hierarchy{{ProjectID: "p1"}})
	s := New(registry, authzclient.NewMemory(), &fakeEventHandler{})
	ctx := auth.ContextWithAPIToken(context.Background(), "tok")

	resp, err := s.CreateEventStreamingGroup(ctx, &wire.CreateEventStreamingGroupRequest{
		Resource:   domain.ResourceKindCollection,
		ResourceID: "c1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.StreamGroupID)
}

func TestDeleteEventStreamingGroupIsUnimplemented(t *testing.T) {
	s := New(registryclient.NewMemory(), authzclient.NewMemory(), &fakeEventHandler{})

	_, err := s.DeleteEventStreamingGroup(context.Background(), &wire.DeleteEventStreamingGroupRequest{StreamGroupID: "g1"})
	require.Error(t, err)
	st, ok := status.FromError(err)
	require.True(t, ok)
	assert.Equal(t, codes.Unimplemented, st.Code())
}
